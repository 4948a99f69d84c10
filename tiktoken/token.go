// Package tiktoken counts tokens with OpenAI's BPE encodings via
// pkoukk/tiktoken-go.
package tiktoken

import (
	"context"
	"strings"

	"github.com/fwojciec/pagescope"
	"github.com/pkoukk/tiktoken-go"
)

var _ pagescope.TokenCounter = (*TokenCounter)(nil)

// DefaultEncoding is the encoding used by the GPT-4 model family.
const DefaultEncoding = "cl100k_base"

// TokenCounter counts tokens with a tiktoken encoding.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter loads the named encoding, or the encoding of the named
// model when name is a model such as "gpt-4o". The BPE ranks are downloaded
// on first use and cached in TIKTOKEN_CACHE_DIR when it is set.
func NewTokenCounter(name string) (*TokenCounter, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		var modelErr error
		enc, modelErr = tiktoken.EncodingForModel(name)
		if modelErr != nil {
			return nil, pagescope.Errorf(pagescope.EINVALID, "unknown tiktoken encoding or model %q: %v", name, err)
		}
	}
	return &TokenCounter{enc: enc}, nil
}

// CountTokens counts the tokens in text. Special tokens are counted as
// plain text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(tc.enc.Encode(text, nil, nil)), nil
}
