package pagescope

import "context"

// Readability holds readability scores for a body of text.
type Readability struct {
	FleschReadingEase  float64 `json:"fleschReadingEase"`
	FleschKincaidGrade float64 `json:"fleschKincaidGrade"`
	Sentences          int     `json:"sentences"`
	Words              int     `json:"words"`
	Syllables          int     `json:"syllables"`
}

// ReadabilityScorer computes readability scores.
type ReadabilityScorer interface {
	// Score returns EINVALID when the text has no words.
	Score(text string) (*Readability, error)
}

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Sentiment is the overall polarity of a body of text.
type Sentiment struct {
	// Polarity ranges from -1 (negative) to 1 (positive).
	Polarity float64 `json:"polarity"`
	Label    string  `json:"label"`
}

// SentimentAnalyzer estimates sentiment.
type SentimentAnalyzer interface {
	// AnalyzeSentiment returns EINVALID when the text is empty.
	AnalyzeSentiment(ctx context.Context, text string) (*Sentiment, error)
}

// Language is a detected natural language.
type Language struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Script     string  `json:"script,omitempty"`
	Confidence float64 `json:"confidence"`
}

// LanguageDetector identifies the language of text.
type LanguageDetector interface {
	// DetectLanguage returns EINVALID when the text is empty and ENOTFOUND
	// when no language can be determined with enough confidence.
	DetectLanguage(text string) (*Language, error)
}

// Keyword is a word with its frequency in a body of text.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`

	// Density is Count as a percentage of all words.
	Density float64 `json:"density"`
}

// KeywordAnalyzer ranks the most frequent meaningful words in text.
type KeywordAnalyzer interface {
	// Keywords returns at most n keywords ordered by count, then word.
	Keywords(text string, n int) ([]Keyword, error)
}
