package goquery

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagescope"
	"github.com/google/uuid"
)

var _ pagescope.FieldExtractor = (*Extractor)(nil)

// DefaultParagraphCount is the number of paragraphs kept in the preview field.
const DefaultParagraphCount = 3

// DefaultKeywordCount is the number of keywords reported by keyword_density.
const DefaultKeywordCount = 10

// Rule computes one named field.
type Rule struct {
	Name string

	// Extract returns the field value. When it returns an error, a non-nil
	// value is still stored (e.g. a Sentinel); a nil value is replaced by
	// Default.
	Extract func(ctx context.Context, in *Input) (any, error)

	// Default is stored when Extract fails or panics.
	Default any
}

// Input is the read-only view of a page handed to every rule.
type Input struct {
	Doc  *goquery.Document
	Page *pagescope.Page
	Base *url.URL

	// Result holds the fields computed so far, in catalog order.
	Result *pagescope.Result

	paragraphs []string
}

// Paragraphs returns the non-empty text of every p element.
func (in *Input) Paragraphs() []string {
	if in.paragraphs == nil {
		in.paragraphs = []string{}
		in.Doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			if text := textContent(s); text != "" {
				in.paragraphs = append(in.paragraphs, text)
			}
		})
	}
	return in.paragraphs
}

// ParagraphText returns all paragraph text joined by spaces.
func (in *Input) ParagraphText() string {
	return strings.Join(in.Paragraphs(), " ")
}

// Extractor evaluates the field catalog against fetched pages.
type Extractor struct {
	rules []Rule

	openGraph   pagescope.OpenGraphParser
	linkChecker pagescope.LinkChecker
	readability pagescope.ReadabilityScorer
	sentiment   pagescope.SentimentAnalyzer
	language    pagescope.LanguageDetector
	keywords    pagescope.KeywordAnalyzer
	article     pagescope.ArticleExtractor
	converter   pagescope.Converter
	tokens      pagescope.TokenCounter
	sitemaps    pagescope.SitemapService
	feeds       pagescope.FeedReader

	strictOrigin   bool
	paragraphCount int
	keywordCount   int
	socialDomains  []string

	now   func() time.Time
	newID func() string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces the catalog with the given rules.
func WithRules(rules ...Rule) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// WithOpenGraphParser enables the open_graph field.
func WithOpenGraphParser(p pagescope.OpenGraphParser) Option {
	return func(e *Extractor) {
		e.openGraph = p
	}
}

// WithLinkChecker enables the broken_links field.
func WithLinkChecker(c pagescope.LinkChecker) Option {
	return func(e *Extractor) {
		e.linkChecker = c
	}
}

// WithReadabilityScorer enables the readability field.
func WithReadabilityScorer(s pagescope.ReadabilityScorer) Option {
	return func(e *Extractor) {
		e.readability = s
	}
}

// WithSentimentAnalyzer enables the sentiment field.
func WithSentimentAnalyzer(a pagescope.SentimentAnalyzer) Option {
	return func(e *Extractor) {
		e.sentiment = a
	}
}

// WithLanguageDetector enables the language field.
func WithLanguageDetector(d pagescope.LanguageDetector) Option {
	return func(e *Extractor) {
		e.language = d
	}
}

// WithKeywordAnalyzer enables the keyword_density field.
func WithKeywordAnalyzer(a pagescope.KeywordAnalyzer) Option {
	return func(e *Extractor) {
		e.keywords = a
	}
}

// WithArticleExtractor enables the article field.
func WithArticleExtractor(a pagescope.ArticleExtractor) Option {
	return func(e *Extractor) {
		e.article = a
	}
}

// WithConverter enables the markdown field.
func WithConverter(c pagescope.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// WithTokenCounter enables the token_count field.
func WithTokenCounter(c pagescope.TokenCounter) Option {
	return func(e *Extractor) {
		e.tokens = c
	}
}

// WithSitemapService enables the sitemap field.
func WithSitemapService(s pagescope.SitemapService) Option {
	return func(e *Extractor) {
		e.sitemaps = s
	}
}

// WithFeedReader fetches the feeds listed in the feeds field.
func WithFeedReader(r pagescope.FeedReader) Option {
	return func(e *Extractor) {
		e.feeds = r
	}
}

// WithStrictOrigin classifies links as internal only when their host
// equals the page's host. By default a link is internal when it contains
// the page's origin string.
func WithStrictOrigin(strict bool) Option {
	return func(e *Extractor) {
		e.strictOrigin = strict
	}
}

// WithParagraphCount sets how many paragraphs the paragraphs field keeps.
func WithParagraphCount(n int) Option {
	return func(e *Extractor) {
		e.paragraphCount = n
	}
}

// WithKeywordCount sets how many keywords keyword_density reports.
func WithKeywordCount(n int) Option {
	return func(e *Extractor) {
		e.keywordCount = n
	}
}

// WithSocialDomains replaces the hosts recognized as social networks.
func WithSocialDomains(domains []string) Option {
	return func(e *Extractor) {
		e.socialDomains = domains
	}
}

// WithClock sets the function used to timestamp results.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// WithIDGenerator sets the function used to generate result IDs.
func WithIDGenerator(newID func() string) Option {
	return func(e *Extractor) {
		e.newID = newID
	}
}

// NewExtractor creates an Extractor. Fields backed by a collaborator are
// only part of the catalog when that collaborator is configured.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		paragraphCount: DefaultParagraphCount,
		keywordCount:   DefaultKeywordCount,
		socialDomains:  DefaultSocialDomains,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules == nil {
		e.rules = e.catalog()
	}
	return e
}

// Rules returns the catalog in evaluation order.
func (e *Extractor) Rules() []Rule {
	return e.rules
}

// ExtractFields evaluates every rule once against the page.
func (e *Extractor) ExtractFields(ctx context.Context, page *pagescope.Page) (*pagescope.Result, error) {
	base, err := url.Parse(page.BaseURL())
	if err != nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &pagescope.Result{
		ID:          e.newID(),
		URL:         page.URL,
		ExtractedAt: e.now(),
		Fields:      make([]pagescope.Field, 0, len(e.rules)),
	}
	in := &Input{Doc: doc, Page: page, Base: base, Result: result}

	for _, rule := range e.rules {
		result.Set(runRule(ctx, rule, in))
	}

	return result, nil
}

// runRule evaluates a rule, turning errors and panics into a defaulted field.
func runRule(ctx context.Context, rule Rule, in *Input) (f pagescope.Field) {
	f.Name = rule.Name
	defer func() {
		if r := recover(); r != nil {
			f.Value = rule.Default
			f.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	v, err := rule.Extract(ctx, in)
	if err != nil {
		if v == nil {
			v = rule.Default
		}
		f.Value = v
		f.Error = errorNote(err)
		return f
	}
	f.Value = v
	return f
}

func errorNote(err error) string {
	if pagescope.ErrorCode(err) == pagescope.EINTERNAL {
		return err.Error()
	}
	return pagescope.ErrorMessage(err)
}

// textContent returns the text of a selection with whitespace collapsed.
func textContent(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
