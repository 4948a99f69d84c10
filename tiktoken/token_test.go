package tiktoken_test

import (
	"testing"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/tiktoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenCounter_UnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := tiktoken.NewTokenCounter("no-such-encoding")

	require.Error(t, err)
	assert.Equal(t, pagescope.EINVALID, pagescope.ErrorCode(err))
}
