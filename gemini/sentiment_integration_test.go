//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSentimentAnalyzer_Integration_RatesText(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	a := gemini.NewSentimentAnalyzer(client)

	s, err := a.AnalyzeSentiment(ctx, "This is the best coffee shop in town. The staff are wonderful and I love coming here.")

	require.NoError(t, err)
	assert.Equal(t, pagescope.SentimentPositive, s.Label)
	assert.Positive(t, s.Polarity)
}
