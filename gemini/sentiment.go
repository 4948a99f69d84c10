package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/pagescope"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for sentiment analysis.
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxChars caps the text sent to the model.
const DefaultMaxChars = 8000

// Ensure SentimentAnalyzer implements pagescope.SentimentAnalyzer at compile time.
var _ pagescope.SentimentAnalyzer = (*SentimentAnalyzer)(nil)

// SentimentAnalyzer implements pagescope.SentimentAnalyzer using Google Gemini.
type SentimentAnalyzer struct {
	client   *genai.Client
	model    string
	maxChars int
}

// SentimentOption configures a SentimentAnalyzer.
type SentimentOption func(*SentimentAnalyzer)

// WithModel sets the Gemini model.
func WithModel(model string) SentimentOption {
	return func(a *SentimentAnalyzer) {
		a.model = model
	}
}

// WithMaxChars caps the number of characters sent to the model.
func WithMaxChars(n int) SentimentOption {
	return func(a *SentimentAnalyzer) {
		a.maxChars = n
	}
}

// NewSentimentAnalyzer creates a new SentimentAnalyzer.
func NewSentimentAnalyzer(client *genai.Client, opts ...SentimentOption) *SentimentAnalyzer {
	a := &SentimentAnalyzer{
		client:   client,
		model:    DefaultModel,
		maxChars: DefaultMaxChars,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeSentiment asks the model to rate the polarity of text.
func (a *SentimentAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*pagescope.Sentiment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, pagescope.Errorf(pagescope.EINVALID, "text required")
	}
	if a.client == nil {
		return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text, a.maxChars)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini sentiment: %w", err)
	}
	if result == nil {
		return nil, pagescope.Errorf(pagescope.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// BuildConfig returns the GenerateContentConfig for sentiment requests.
// The response is constrained to a JSON object with polarity and label.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You rate the overall sentiment of web page text. Reply with a polarity between -1 (very negative) and 1 (very positive) and a label of positive, negative or neutral.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"polarity": {Type: genai.TypeNumber},
				"label": {
					Type: genai.TypeString,
					Enum: []string{pagescope.SentimentPositive, pagescope.SentimentNegative, pagescope.SentimentNeutral},
				},
			},
			Required: []string{"polarity", "label"},
		},
	}
}

// BuildUserPrompt wraps text for the model, truncated to maxChars runes.
func BuildUserPrompt(text string, maxChars int) string {
	if r := []rune(text); maxChars > 0 && len(r) > maxChars {
		text = string(r[:maxChars])
	}
	return "<text>\n" + text + "\n</text>"
}

// ParseResponse decodes the model's JSON reply into a Sentiment.
func ParseResponse(raw string) (*pagescope.Sentiment, error) {
	var resp struct {
		Polarity float64 `json:"polarity"`
		Label    string  `json:"label"`
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(raw, "```")), "```")
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, pagescope.Errorf(pagescope.EINTERNAL, "malformed sentiment response: %v", err)
	}

	switch resp.Label {
	case pagescope.SentimentPositive, pagescope.SentimentNegative, pagescope.SentimentNeutral:
	default:
		return nil, pagescope.Errorf(pagescope.EINTERNAL, "unknown sentiment label %q", resp.Label)
	}
	if resp.Polarity < -1 || resp.Polarity > 1 {
		return nil, pagescope.Errorf(pagescope.EINTERNAL, "sentiment polarity %v out of range", resp.Polarity)
	}

	return &pagescope.Sentiment{Polarity: resp.Polarity, Label: resp.Label}, nil
}
