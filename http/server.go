package http

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultRequestTimeout bounds a single inspection request.
const DefaultRequestTimeout = 2 * time.Minute

// Server serves the web UI and JSON/CSV API.
type Server struct {
	router    chi.Router
	inspector pagescope.Inspector
	renderer  pagescope.Renderer
	csv       pagescope.ResultWriter
	log       *slog.Logger
}

// NewServer creates a Server. renderer turns the Markdown report into HTML
// and csv encodes the single-row export.
func NewServer(inspector pagescope.Inspector, renderer pagescope.Renderer, csv pagescope.ResultWriter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		inspector: inspector,
		renderer:  renderer,
		csv:       csv,
		log:       log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/extract", s.handleExtractHTML)
	r.Get("/api/extract", s.handleExtractJSON)
	r.Get("/api/extract.csv", s.handleExtractCSV)

	s.router = r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{})
}

func (s *Server) handleExtractHTML(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	result, err := s.inspector.Inspect(r.Context(), rawURL)
	if err != nil {
		s.renderPage(w, errorStatus(err), pageData{URL: rawURL, Error: pagescope.ErrorMessage(err)})
		return
	}

	report, err := s.renderer.Render(pagescope.FormatResult(result))
	if err != nil {
		s.renderPage(w, http.StatusInternalServerError, pageData{URL: rawURL, Error: "failed to render report"})
		return
	}

	// The renderer escapes raw HTML from the page.
	s.renderPage(w, http.StatusOK, pageData{URL: rawURL, Report: template.HTML(report)})
}

func (s *Server) handleExtractJSON(w http.ResponseWriter, r *http.Request) {
	result, err := s.inspector.Inspect(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		jsonError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Server) handleExtractCSV(w http.ResponseWriter, r *http.Request) {
	result, err := s.inspector.Inspect(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		jsonError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pagescope.csv"`)
	if err := s.csv.WriteResult(w, result); err != nil {
		s.log.Error("write csv", "url", result.URL, "error", err)
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.Error("render page", "error", err)
	}
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(err error) int {
	switch pagescope.ErrorCode(err) {
	case pagescope.EINVALID:
		return http.StatusBadRequest
	case pagescope.ENOTFOUND:
		return http.StatusNotFound
	case pagescope.EFORBIDDEN:
		return http.StatusForbidden
	case pagescope.EUNAVAILABLE:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func jsonError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  pagescope.ErrorCode(err),
		"error": pagescope.ErrorMessage(err),
	})
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

type pageData struct {
	URL    string
	Error  string
	Report template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>pagescope</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
form { display: flex; gap: .5rem; }
input[type=text] { flex: 1; padding: .4rem; }
pre { background: #f5f5f5; padding: .75rem; overflow-x: auto; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>pagescope</h1>
<form action="/extract" method="get">
<input type="text" name="url" value="{{.URL}}" placeholder="https://example.com" autofocus>
<button type="submit">Inspect</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Report}}<p><a href="/api/extract?url={{.URL}}">JSON</a> | <a href="/api/extract.csv?url={{.URL}}">CSV</a></p>
{{.Report}}{{end}}
</body>
</html>
`))
