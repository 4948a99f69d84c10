//go:build integration

package rod_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/goquery"
	"github.com/fwojciec/pagescope/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Integration_ExtractsRenderedPage(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher := rod.NewFetcher()
	defer fetcher.Close()

	page, err := fetcher.Fetch(ctx, "https://htmx.org/docs/")
	require.NoError(t, err)
	assert.Equal(t, 200, page.StatusCode)
	assert.Contains(t, page.HTML, "</body>")

	result, err := goquery.NewExtractor().ExtractFields(ctx, page)
	require.NoError(t, err)

	title, _ := pagescope.FieldValue[string](result, pagescope.FieldTitle)
	assert.Contains(t, title, "htmx")
	links, ok := pagescope.FieldValue[pagescope.LinkSet](result, pagescope.FieldLinks)
	require.True(t, ok)
	assert.NotEmpty(t, links.Internal)

	t.Logf("Fetched %d bytes from htmx.org/docs/", len(page.HTML))
}
