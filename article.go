package pagescope

// Article is the main content of a page with boilerplate removed.
type Article struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	SiteName string `json:"siteName,omitempty"`
	Date     string `json:"date,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Text     string `json:"text"`

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string `json:"-"`
}

// ArticleExtractor extracts main content from HTML pages, removing boilerplate.
type ArticleExtractor interface {
	// Extract processes raw HTML and returns the main content.
	// pageURL is used to resolve relative references in the content.
	Extract(html string, pageURL string) (*Article, error)
}

// OpenGraph holds the Open Graph properties a page declares.
type OpenGraph struct {
	Title       string   `json:"title,omitempty"`
	Type        string   `json:"type,omitempty"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	SiteName    string   `json:"siteName,omitempty"`
	Locale      string   `json:"locale,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// IsZero reports whether no Open Graph property was found.
func (og *OpenGraph) IsZero() bool {
	return og == nil || (og.Title == "" && og.Type == "" && og.URL == "" &&
		og.Description == "" && og.SiteName == "" && og.Locale == "" && len(og.Images) == 0)
}

// OpenGraphParser reads og:* properties from HTML.
type OpenGraphParser interface {
	ParseOpenGraph(html string) (*OpenGraph, error)
}
