// Package csv exports extraction results as single-row CSV.
package csv

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/pagescope"
)

// Ensure Writer implements pagescope.ResultWriter at compile time.
var _ pagescope.ResultWriter = (*Writer)(nil)

// Writer encodes a result as a header row of field names followed by one
// row of values. Strings are written as is; every other value is JSON
// encoded. Fields without a value are empty cells.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteResult writes r to w.
func (cw *Writer) WriteResult(w io.Writer, r *pagescope.Result) error {
	if r == nil {
		return pagescope.Errorf(pagescope.EINVALID, "result required")
	}

	header := make([]string, len(r.Fields))
	row := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		header[i] = f.Name
		cell, err := formatCell(f.Value)
		if err != nil {
			return fmt.Errorf("encode field %s: %w", f.Name, err)
		}
		row[i] = cell
	}

	out := csv.NewWriter(w)
	if err := out.Write(header); err != nil {
		return err
	}
	if err := out.Write(row); err != nil {
		return err
	}
	out.Flush()
	return out.Error()
}

func formatCell(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case pagescope.Sentinel:
		return string(v), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
