// Package fs writes extraction reports to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagescope"
)

// ReportPath converts a page URL to a relative report path with the given
// extension, grouped by host.
// Example: https://example.com/docs/api/users, "json" → example.com/docs/api/users.json
func ReportPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagescope.Errorf(pagescope.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return "", pagescope.Errorf(pagescope.EINVALID, "URL %q has no host", rawURL)
	}

	suffix := "." + strings.TrimPrefix(ext, ".")
	host := strings.ReplaceAll(u.Host, ":", "_")
	path := strings.TrimPrefix(u.Path, "/")

	// Root or trailing slash → index in that directory
	if path == "" || strings.HasSuffix(path, "/") {
		return filepath.Join(host, filepath.FromSlash(path), "index"+suffix), nil
	}
	return filepath.Join(host, filepath.FromSlash(path)+suffix), nil
}

// Writer writes reports below a base directory. Each report is written to a
// temporary file and renamed into place, so readers never see a partial file.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir. An empty baseDir resolves
// paths against the working directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteReport creates name (relative to the base directory, parents
// included) with the bytes produced by write. It returns the written path.
func (w *Writer) WriteReport(ctx context.Context, name string, write func(io.Writer) error) (string, error) {
	if name == "" {
		return "", pagescope.Errorf(pagescope.EINVALID, "report path required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := name
	if w.baseDir != "" && !filepath.IsAbs(name) {
		fullPath = filepath.Join(w.baseDir, name)
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	abort := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}

	if err := write(tmp); err != nil {
		return abort(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return abort(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("move report into place: %w", err)
	}
	return fullPath, nil
}
