package mock

import (
	"context"
	"io"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.Inspector = (*Inspector)(nil)

// Inspector is a mock implementation of pagescope.Inspector.
type Inspector struct {
	InspectFn func(ctx context.Context, rawURL string) (*pagescope.Result, error)
}

func (i *Inspector) Inspect(ctx context.Context, rawURL string) (*pagescope.Result, error) {
	return i.InspectFn(ctx, rawURL)
}

var _ pagescope.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of pagescope.ResultWriter.
type ResultWriter struct {
	WriteResultFn func(w io.Writer, r *pagescope.Result) error
}

func (rw *ResultWriter) WriteResult(w io.Writer, r *pagescope.Result) error {
	return rw.WriteResultFn(w, r)
}
