//go:build integration

package tiktoken_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagescope/tiktoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := tiktoken.NewTokenCounter(tiktoken.DefaultEncoding)
	require.NoError(t, err)

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Hello, world!")

		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("special tokens are plain text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "<|endoftext|>")

		require.NoError(t, err)
		assert.Greater(t, count, 1)
	})

	t.Run("whitespace returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "  \n")

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("model name selects its encoding", func(t *testing.T) {
		t.Parallel()

		byModel, err := tiktoken.NewTokenCounter("gpt-4")
		require.NoError(t, err)

		count, err := byModel.CountTokens(context.Background(), "Hello, world!")
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})
}
