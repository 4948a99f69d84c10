// Package textstat computes text statistics: Flesch readability scores and
// keyword frequencies.
package textstat

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/fwojciec/pagescope"
	"golang.org/x/text/cases"
)

// Ensure types implement pagescope interfaces at compile time.
var (
	_ pagescope.ReadabilityScorer = (*Scorer)(nil)
	_ pagescope.KeywordAnalyzer   = (*KeywordAnalyzer)(nil)
)

// Scorer computes Flesch Reading Ease and Flesch-Kincaid grade level.
type Scorer struct{}

// NewScorer creates a new Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score returns readability scores for text.
func (s *Scorer) Score(text string) (*pagescope.Readability, error) {
	words := Words(text)
	if len(words) == 0 {
		return nil, pagescope.Errorf(pagescope.EINVALID, "no words to score")
	}

	sentences := CountSentences(text)
	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	wps := float64(len(words)) / float64(sentences)
	spw := float64(syllables) / float64(len(words))

	return &pagescope.Readability{
		FleschReadingEase:  round2(206.835 - 1.015*wps - 84.6*spw),
		FleschKincaidGrade: round2(0.39*wps + 11.8*spw - 15.59),
		Sentences:          sentences,
		Words:              len(words),
		Syllables:          syllables,
	}, nil
}

// KeywordAnalyzer ranks words by frequency, ignoring stop words, short
// words and numbers. Words are case folded before counting.
type KeywordAnalyzer struct {
	stopwords map[string]bool
	minLength int
}

// KeywordOption configures a KeywordAnalyzer.
type KeywordOption func(*KeywordAnalyzer)

// WithStopwords replaces the default English stop word list.
func WithStopwords(words []string) KeywordOption {
	return func(k *KeywordAnalyzer) {
		k.stopwords = make(map[string]bool, len(words))
		for _, w := range words {
			k.stopwords[cases.Fold().String(w)] = true
		}
	}
}

// WithMinLength sets the minimum keyword length in runes. Default is 3.
func WithMinLength(n int) KeywordOption {
	return func(k *KeywordAnalyzer) {
		k.minLength = n
	}
}

// NewKeywordAnalyzer creates a new KeywordAnalyzer.
func NewKeywordAnalyzer(opts ...KeywordOption) *KeywordAnalyzer {
	k := &KeywordAnalyzer{minLength: 3}
	WithStopwords(englishStopwords)(k)
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Keywords returns at most n keywords ordered by count, then word.
// Density is relative to all words in text, stop words included.
func (k *KeywordAnalyzer) Keywords(text string, n int) ([]pagescope.Keyword, error) {
	words := Words(text)
	if len(words) == 0 {
		return nil, pagescope.Errorf(pagescope.EINVALID, "no words to analyze")
	}

	// cases.Caser is stateful; one per call keeps the analyzer concurrency safe.
	fold := cases.Fold()
	counts := make(map[string]int)
	for _, w := range words {
		w = fold.String(strings.Trim(w, "'"))
		if !k.keep(w) {
			continue
		}
		counts[w]++
	}

	keywords := make([]pagescope.Keyword, 0, len(counts))
	for w, c := range counts {
		keywords = append(keywords, pagescope.Keyword{
			Word:    w,
			Count:   c,
			Density: round2(float64(c) / float64(len(words)) * 100),
		})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})

	if n >= 0 && len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords, nil
}

func (k *KeywordAnalyzer) keep(w string) bool {
	if len([]rune(w)) < k.minLength || k.stopwords[w] {
		return false
	}
	return strings.IndexFunc(w, unicode.IsLetter) >= 0
}

// Words splits text into words. Apostrophes inside words are kept.
func Words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
	words := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'’")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// CountSentences counts runs of text terminated by '.', '!' or '?' that
// contain at least one word. Text without terminators is one sentence.
func CountSentences(text string) int {
	n := 0
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if len(Words(s)) > 0 {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

// CountSyllables estimates English syllables by counting vowel groups,
// discounting a silent final 'e'. Every word has at least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	n := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			n++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && n > 1 {
		n--
	}
	if n == 0 {
		return 1
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
