// Package gemini implements token counting and sentiment analysis with
// Google Gemini models.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/pagescope"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ pagescope.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens using the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// DefaultTokenizerModel is the model whose tokenizer counts page text.
const DefaultTokenizerModel = "gemini-2.0-flash"

// NewTokenCounter creates a new TokenCounter for the given model.
// The tokenizer model is downloaded on first use and cached locally.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
