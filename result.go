package pagescope

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"
)

// Field names in the order the extraction catalog evaluates them.
const (
	FieldTitle          = "title"
	FieldMetaTags       = "meta_tags"
	FieldCanonicalURL   = "canonical_url"
	FieldOpenGraph      = "open_graph"
	FieldLinks          = "links"
	FieldSocialLinks    = "social_links"
	FieldBrokenLinks    = "broken_links"
	FieldStructuredData = "structured_data"
	FieldGenerator      = "generator"
	FieldMedia          = "media"
	FieldForms          = "forms"
	FieldHeadings       = "headings"
	FieldTables         = "tables"
	FieldParagraphs     = "paragraphs"
	FieldContactInfo    = "contact_info"
	FieldWordCount      = "word_count"
	FieldReadability    = "readability"
	FieldSentiment      = "sentiment"
	FieldLanguage       = "language"
	FieldKeywordDensity = "keyword_density"
	FieldArticle        = "article"
	FieldMarkdown       = "markdown"
	FieldTokenCount     = "token_count"
	FieldContentHash    = "content_hash"
	FieldSitemap        = "sitemap"
	FieldFeeds          = "feeds"
)

// Sentinel is a descriptive placeholder stored in place of a value that
// could not be computed.
type Sentinel string

// Sentinel values.
const (
	NoTitleFound       Sentinel = "No title found"
	NoAltText          Sentinel = "No alt text"
	NotEnoughText      Sentinel = "Not enough text to analyze"
	LanguageUndetected Sentinel = "Could not detect language"
	SentimentFailed    Sentinel = "Sentiment analysis failed"
	ReadabilityFailed  Sentinel = "Readability analysis failed"
)

// Field is one named unit of extracted information.
type Field struct {
	Name  string `json:"name"`
	Value any    `json:"value"`

	// Error describes why Value holds a default instead of an extracted value.
	Error string `json:"error,omitempty"`
}

// Result holds every field extracted from one page.
type Result struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	ExtractedAt time.Time `json:"extractedAt"`

	// Fields are kept in catalog order. Names are unique.
	Fields []Field `json:"fields"`
}

// Set stores a field, replacing any existing field with the same name.
func (r *Result) Set(f Field) {
	for i := range r.Fields {
		if r.Fields[i].Name == f.Name {
			r.Fields[i] = f
			return
		}
	}
	r.Fields = append(r.Fields, f)
}

// Get returns the field with the given name.
func (r *Result) Get(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns field names in order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Errors returns the error notes of fields that failed, keyed by field name.
func (r *Result) Errors() map[string]string {
	errs := make(map[string]string)
	for _, f := range r.Fields {
		if f.Error != "" {
			errs[f.Name] = f.Error
		}
	}
	return errs
}

// MarshalJSON encodes fields as an object in catalog order, with field
// errors collected under "errors".
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	header := struct {
		ID          string    `json:"id"`
		URL         string    `json:"url"`
		ExtractedAt time.Time `json:"extractedAt"`
	}{r.ID, r.URL, r.ExtractedAt}
	b, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	buf.Write(b[1 : len(b)-1])

	buf.WriteString(`,"fields":{`)
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	if errs := r.Errors(); len(errs) > 0 {
		b, err := json.Marshal(errs)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"errors":`)
		buf.Write(b)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FieldValue returns the value of the named field as T.
// The second result is false when the field is missing or holds another type,
// such as a Sentinel.
func FieldValue[T any](r *Result, name string) (T, bool) {
	var zero T
	f, ok := r.Get(name)
	if !ok {
		return zero, false
	}
	v, ok := f.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// FieldExtractor computes the field catalog for a fetched page.
type FieldExtractor interface {
	// ExtractFields evaluates every rule once against the page.
	// Per-field failures are recorded on the field and never returned.
	// Returns an error only when the page cannot be parsed at all.
	ExtractFields(ctx context.Context, page *Page) (*Result, error)
}

// MetaTags maps a meta element's name (or property) to its content.
type MetaTags map[string]string

// LinkSet partitions resolved hyperlinks into internal and external.
type LinkSet struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
}

// All returns internal links followed by external links.
func (ls LinkSet) All() []string {
	all := make([]string, 0, len(ls.Internal)+len(ls.External))
	all = append(all, ls.Internal...)
	return append(all, ls.External...)
}

// Image is an img element's source and alt text.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Media groups the embedded media sources of a page.
type Media struct {
	Images []Image  `json:"images"`
	Videos []string `json:"videos"`
	Audios []string `json:"audios"`
}

// FormInput is one input element of a form.
type FormInput struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Form is a form element with its inputs.
type Form struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Inputs []FormInput `json:"inputs"`
}

// Headings maps heading level (1-6) to heading texts in document order.
type Headings map[int][]string

// Table is a table's rows of cell texts.
type Table struct {
	Rows [][]string `json:"rows"`
}

// ContactInfo holds contact details found on a page.
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
	Forms  []Form   `json:"forms"`
}

// Generator identifies the software that built a page.
type Generator struct {
	// Name is a lowercase product token such as "wordpress" or "docusaurus".
	Name string `json:"name"`

	// Meta is the raw content of <meta name="generator">, when present.
	Meta string `json:"meta,omitempty"`
}

// Inspector fetches a page and extracts its fields.
type Inspector interface {
	// Inspect validates rawURL, checks crawl policy, fetches the page and
	// extracts the catalog. Returns EINVALID, EFORBIDDEN or EUNAVAILABLE
	// when the page cannot be inspected at all.
	Inspect(ctx context.Context, rawURL string) (*Result, error)
}

// ResultWriter encodes a result in one export format.
type ResultWriter interface {
	WriteResult(w io.Writer, r *Result) error
}
