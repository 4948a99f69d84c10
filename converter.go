package pagescope

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an ArticleExtractor).
	// Relative links and images are made absolute against pageURL.
	Convert(html string, pageURL string) (string, error)
}

// Renderer renders Markdown as HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}
