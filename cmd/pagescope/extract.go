package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/pagescope"
	pagescopecsv "github.com/fwojciec/pagescope/csv"
	"github.com/fwojciec/pagescope/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	rawURL := strings.TrimSpace(c.URL)
	if rawURL == "" {
		var err error
		rawURL, err = readURL(deps.Stdin)
		if err != nil {
			return err
		}
	}

	if deps.Spinner != nil {
		deps.Spinner.Suffix = " Inspecting " + rawURL
		deps.Spinner.Start()
	}
	result, err := deps.Inspector.Inspect(deps.Ctx, rawURL)
	if deps.Spinner != nil {
		deps.Spinner.Stop()
	}
	if err != nil {
		return err
	}

	for name, msg := range result.Errors() {
		deps.Logger.Debug("field failed", "field", name, "error", msg)
	}

	if c.Output == "" && c.OutputDir == "" {
		return writeResult(deps.Stdout, c.Format, result)
	}

	name := c.Output
	w := fs.NewWriter(c.OutputDir)
	if name == "" {
		name, err = fs.ReportPath(result.URL, formatExt[c.Format])
		if err != nil {
			return err
		}
	}
	path, err := w.WriteReport(deps.Ctx, name, func(out io.Writer) error {
		return writeResult(out, c.Format, result)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s report for %s to %s\n", c.Format, result.URL, path)
	return nil
}

var formatExt = map[string]string{
	"":         "txt",
	"text":     "txt",
	"json":     "json",
	"csv":      "csv",
	"markdown": "md",
}

// readURL returns the first non-blank line of r.
func readURL(r io.Reader) (string, error) {
	if r == nil {
		return "", pagescope.Errorf(pagescope.EINVALID, "URL required")
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read URL from stdin: %w", err)
	}
	return "", pagescope.Errorf(pagescope.EINVALID, "URL required: pass it as an argument or on stdin")
}

// writeResult encodes r in the named format.
func writeResult(w io.Writer, format string, r *pagescope.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "csv":
		return pagescopecsv.NewWriter().WriteResult(w, r)
	case "markdown":
		_, err := fmt.Fprintln(w, pagescope.FormatResult(r))
		return err
	case "text", "":
		_, err := io.WriteString(w, pagescope.FormatText(r))
		return err
	}
	return pagescope.Errorf(pagescope.EINVALID, "unknown format %q", format)
}
