package mock

import (
	"context"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.ReadabilityScorer = (*ReadabilityScorer)(nil)

// ReadabilityScorer is a mock implementation of pagescope.ReadabilityScorer.
type ReadabilityScorer struct {
	ScoreFn func(text string) (*pagescope.Readability, error)
}

func (s *ReadabilityScorer) Score(text string) (*pagescope.Readability, error) {
	return s.ScoreFn(text)
}

var _ pagescope.SentimentAnalyzer = (*SentimentAnalyzer)(nil)

// SentimentAnalyzer is a mock implementation of pagescope.SentimentAnalyzer.
type SentimentAnalyzer struct {
	AnalyzeSentimentFn func(ctx context.Context, text string) (*pagescope.Sentiment, error)
}

func (a *SentimentAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*pagescope.Sentiment, error) {
	return a.AnalyzeSentimentFn(ctx, text)
}

var _ pagescope.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of pagescope.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) (*pagescope.Language, error)
}

func (d *LanguageDetector) DetectLanguage(text string) (*pagescope.Language, error) {
	return d.DetectLanguageFn(text)
}

var _ pagescope.KeywordAnalyzer = (*KeywordAnalyzer)(nil)

// KeywordAnalyzer is a mock implementation of pagescope.KeywordAnalyzer.
type KeywordAnalyzer struct {
	KeywordsFn func(text string, n int) ([]pagescope.Keyword, error)
}

func (a *KeywordAnalyzer) Keywords(text string, n int) ([]pagescope.Keyword, error) {
	return a.KeywordsFn(text, n)
}

var _ pagescope.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of pagescope.FieldExtractor.
type FieldExtractor struct {
	ExtractFieldsFn func(ctx context.Context, page *pagescope.Page) (*pagescope.Result, error)
}

func (e *FieldExtractor) ExtractFields(ctx context.Context, page *pagescope.Page) (*pagescope.Result, error) {
	return e.ExtractFieldsFn(ctx, page)
}
