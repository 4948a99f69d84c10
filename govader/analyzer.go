// Package govader scores text polarity with the VADER lexicon and rules.
package govader

import (
	"context"
	"math"
	"strings"

	"github.com/fwojciec/pagescope"
	"github.com/jonreiter/govader"
)

// Ensure Analyzer implements pagescope.SentimentAnalyzer at compile time.
var _ pagescope.SentimentAnalyzer = (*Analyzer)(nil)

// DefaultNeutralBand is the compound score range around zero labeled
// neutral. VADER's authors use 0.05.
const DefaultNeutralBand = 0.05

// Analyzer reports VADER's normalized compound score as polarity.
type Analyzer struct {
	vader       *govader.SentimentIntensityAnalyzer
	neutralBand float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithNeutralBand sets the polarity range around zero labeled neutral.
func WithNeutralBand(band float64) Option {
	return func(a *Analyzer) {
		a.neutralBand = band
	}
}

// NewAnalyzer creates an Analyzer with VADER's built-in English lexicon.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		vader:       govader.NewSentimentIntensityAnalyzer(),
		neutralBand: DefaultNeutralBand,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeSentiment returns the polarity of text in [-1, 1].
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, text string) (*pagescope.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pagescope.Errorf(pagescope.EINVALID, "no words to analyze")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scores := a.vader.PolarityScores(text)
	polarity := math.Max(-1, math.Min(1, math.Round(scores.Compound*1000)/1000))

	return &pagescope.Sentiment{
		Polarity: polarity,
		Label:    a.label(polarity),
	}, nil
}

func (a *Analyzer) label(polarity float64) string {
	switch {
	case polarity >= a.neutralBand:
		return pagescope.SentimentPositive
	case polarity <= -a.neutralBand:
		return pagescope.SentimentNegative
	default:
		return pagescope.SentimentNeutral
	}
}
