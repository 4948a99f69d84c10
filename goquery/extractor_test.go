package goquery_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/goquery"
	"github.com/fwojciec/pagescope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://example.com/dir/page"

func extract(t *testing.T, html string, opts ...goquery.Option) *pagescope.Result {
	t.Helper()

	e := goquery.NewExtractor(opts...)
	r, err := e.ExtractFields(context.Background(), &pagescope.Page{URL: pageURL, HTML: html})
	require.NoError(t, err)
	return r
}

func field(t *testing.T, r *pagescope.Result, name string) pagescope.Field {
	t.Helper()

	f, ok := r.Get(name)
	require.True(t, ok, "field %q missing", name)
	return f
}

func TestExtractor_EndToEnd(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Test</title>
<script type="application/ld+json">{"@type": "Organization",</script>
</head><body>
<a href="/about">About</a>
<a href="https://other.com/page">Other</a>
</body></html>`

	r := extract(t, html)

	title, ok := pagescope.FieldValue[string](r, pagescope.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "Test", title)

	links, ok := pagescope.FieldValue[pagescope.LinkSet](r, pagescope.FieldLinks)
	require.True(t, ok)
	assert.Equal(t, []string{"https://example.com/about"}, links.Internal)
	assert.Equal(t, []string{"https://other.com/page"}, links.External)

	data, ok := pagescope.FieldValue[[]any](r, pagescope.FieldStructuredData)
	require.True(t, ok)
	assert.Empty(t, data)
	assert.Empty(t, r.Errors())
}

func TestExtractor_Title(t *testing.T) {
	t.Parallel()

	t.Run("returns sentinel when title is missing", func(t *testing.T) {
		t.Parallel()

		r := extract(t, `<html><body><p>No title here.</p></body></html>`)

		assert.Equal(t, pagescope.NoTitleFound, field(t, r, pagescope.FieldTitle).Value)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()

		r := extract(t, `<html><head><title>
  Spaced Title
</title></head></html>`)

		assert.Equal(t, "Spaced Title", field(t, r, pagescope.FieldTitle).Value)
	})

	t.Run("returns sentinel when title is blank", func(t *testing.T) {
		t.Parallel()

		r := extract(t, `<html><head><title>  </title></head></html>`)

		assert.Equal(t, pagescope.NoTitleFound, field(t, r, pagescope.FieldTitle).Value)
	})
}

func TestExtractor_MetaTags(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<meta charset="utf-8">
<meta name="description" content="A page">
<meta property="og:title" content="OG Title">
<meta name="author" property="article:author" content="Jane">
<meta content="orphan">
</head></html>`

	r := extract(t, html)

	tags, ok := pagescope.FieldValue[pagescope.MetaTags](r, pagescope.FieldMetaTags)
	require.True(t, ok)
	assert.Equal(t, pagescope.MetaTags{
		"description": "A page",
		"og:title":    "OG Title",
		"author":      "Jane",
	}, tags)
}

func TestExtractor_CanonicalURL(t *testing.T) {
	t.Parallel()

	r := extract(t, `<html><head><link rel="canonical" href="/dir/page-canonical"></head></html>`)

	assert.Equal(t, "https://example.com/dir/page-canonical", field(t, r, pagescope.FieldCanonicalURL).Value)
}

func TestExtractor_StructuredData(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<script type="application/ld+json">{"@type": "Article", "headline": "One"}</script>
<script type="application/ld+json">not json</script>
<script type="application/ld+json">[{"@type": "Person"}]</script>
<script type="application/ld+json">{"broken": </script>
<script type="text/javascript">var x = 1;</script>
</head></html>`

	r := extract(t, html)

	data, ok := pagescope.FieldValue[[]any](r, pagescope.FieldStructuredData)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, map[string]any{"@type": "Article", "headline": "One"}, data[0])
	assert.Equal(t, []any{map[string]any{"@type": "Person"}}, data[1])
	assert.Empty(t, field(t, r, pagescope.FieldStructuredData).Error)
}

func TestExtractor_Links(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<a href="sibling">S</a><a href="../up">U</a><a href="/root#frag">R</a>`

		r := extract(t, html)

		links, ok := pagescope.FieldValue[pagescope.LinkSet](r, pagescope.FieldLinks)
		require.True(t, ok)
		assert.Equal(t, []string{
			"https://example.com/dir/sibling",
			"https://example.com/up",
			"https://example.com/root",
		}, links.Internal)
		assert.Empty(t, links.External)
	})

	t.Run("skips non-HTTP and fragment-only links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="mailto:a@example.com">M</a><a href="javascript:void(0)">J</a><a href="#top">T</a><a href="tel:123">P</a>`

		r := extract(t, html)

		links, ok := pagescope.FieldValue[pagescope.LinkSet](r, pagescope.FieldLinks)
		require.True(t, ok)
		assert.Empty(t, links.Internal)
		assert.Empty(t, links.External)
	})

	t.Run("deduplicates links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/a">1</a><a href="https://example.com/a">2</a><a href="/a#x">3</a>`

		r := extract(t, html)

		links, ok := pagescope.FieldValue[pagescope.LinkSet](r, pagescope.FieldLinks)
		require.True(t, ok)
		assert.Equal(t, []string{"https://example.com/a"}, links.Internal)
	})

	t.Run("containment counts origin appearing in external URL as internal", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://other.com/?ref=https://example.com">R</a>`

		r := extract(t, html)

		links, ok := pagescope.FieldValue[pagescope.LinkSet](r, pagescope.FieldLinks)
		require.True(t, ok)
		assert.Equal(t, []string{"https://other.com/?ref=https://example.com"}, links.Internal)
	})

	t.Run("strict origin compares hosts", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://other.com/?ref=https://example.com">R</a><a href="/local">L</a><a href="https://sub.example.com/">S</a>`

		r := extract(t, html, goquery.WithStrictOrigin(true))

		links, ok := pagescope.FieldValue[pagescope.LinkSet](r, pagescope.FieldLinks)
		require.True(t, ok)
		assert.Equal(t, []string{"https://example.com/local"}, links.Internal)
		assert.Equal(t, []string{"https://other.com/?ref=https://example.com", "https://sub.example.com/"}, links.External)
	})
}

func TestExtractor_SocialLinks(t *testing.T) {
	t.Parallel()

	html := `<a href="https://www.facebook.com/acme">F</a>
<a href="https://twitter.com/acme">T</a>
<a href="https://notfacebook.com/x">N</a>
<a href="/about">A</a>`

	t.Run("uses default social domains", func(t *testing.T) {
		t.Parallel()

		r := extract(t, html)

		social, ok := pagescope.FieldValue[[]string](r, pagescope.FieldSocialLinks)
		require.True(t, ok)
		assert.Equal(t, []string{"https://www.facebook.com/acme", "https://twitter.com/acme"}, social)
	})

	t.Run("uses configured social domains", func(t *testing.T) {
		t.Parallel()

		r := extract(t, html, goquery.WithSocialDomains([]string{"twitter.com"}))

		social, ok := pagescope.FieldValue[[]string](r, pagescope.FieldSocialLinks)
		require.True(t, ok)
		assert.Equal(t, []string{"https://twitter.com/acme"}, social)
	})
}

func TestExtractor_BrokenLinks(t *testing.T) {
	t.Parallel()

	t.Run("keeps only broken links from the links field", func(t *testing.T) {
		t.Parallel()

		var checked []string
		checker := &mock.LinkChecker{
			CheckLinksFn: func(_ context.Context, urls []string) ([]pagescope.LinkStatus, error) {
				checked = urls
				return []pagescope.LinkStatus{
					{URL: urls[0], StatusCode: 200},
					{URL: urls[1], StatusCode: 404, Broken: true},
				}, nil
			},
		}

		r := extract(t, `<a href="/ok">1</a><a href="https://other.com/gone">2</a>`, goquery.WithLinkChecker(checker))

		assert.Equal(t, []string{"https://example.com/ok", "https://other.com/gone"}, checked)
		broken, ok := pagescope.FieldValue[[]pagescope.LinkStatus](r, pagescope.FieldBrokenLinks)
		require.True(t, ok)
		assert.Equal(t, []pagescope.LinkStatus{{URL: "https://other.com/gone", StatusCode: 404, Broken: true}}, broken)
	})

	t.Run("records checker failure on the field only", func(t *testing.T) {
		t.Parallel()

		checker := &mock.LinkChecker{
			CheckLinksFn: func(context.Context, []string) ([]pagescope.LinkStatus, error) {
				return nil, errors.New("network down")
			},
		}

		r := extract(t, `<title>Still here</title><a href="/x">x</a>`, goquery.WithLinkChecker(checker))

		f := field(t, r, pagescope.FieldBrokenLinks)
		assert.Equal(t, []pagescope.LinkStatus{}, f.Value)
		assert.Equal(t, "network down", f.Error)
		assert.Equal(t, "Still here", field(t, r, pagescope.FieldTitle).Value)
	})

	t.Run("omitted without a link checker", func(t *testing.T) {
		t.Parallel()

		r := extract(t, `<a href="/x">x</a>`)

		_, ok := r.Get(pagescope.FieldBrokenLinks)
		assert.False(t, ok)
	})
}

func TestExtractor_Media(t *testing.T) {
	t.Parallel()

	html := `<img src="/a.png" alt="A"><img src="b.png"><img alt="no src">
<video src="v.mp4"></video><video><source src="/v2.webm"></video>
<audio><source src="s.mp3"></audio>`

	r := extract(t, html)

	media, ok := pagescope.FieldValue[pagescope.Media](r, pagescope.FieldMedia)
	require.True(t, ok)
	assert.Equal(t, []pagescope.Image{
		{Src: "https://example.com/a.png", Alt: "A"},
		{Src: "https://example.com/dir/b.png", Alt: "No alt text"},
	}, media.Images)
	assert.Equal(t, []string{"https://example.com/dir/v.mp4", "https://example.com/v2.webm"}, media.Videos)
	assert.Equal(t, []string{"https://example.com/dir/s.mp3"}, media.Audios)
}

func TestExtractor_Forms(t *testing.T) {
	t.Parallel()

	html := `<form action="/search"><input name="q" value="go"></form>
<form action="/contact-us" method="POST"><input type="email" name="email"></form>`

	r := extract(t, html)

	forms, ok := pagescope.FieldValue[[]pagescope.Form](r, pagescope.FieldForms)
	require.True(t, ok)
	require.Len(t, forms, 2)
	assert.Equal(t, pagescope.Form{
		Action: "/search",
		Method: "get",
		Inputs: []pagescope.FormInput{{Type: "text", Name: "q", Value: "go"}},
	}, forms[0])
	assert.Equal(t, "post", forms[1].Method)
	assert.Equal(t, []pagescope.FormInput{{Type: "email", Name: "email"}}, forms[1].Inputs)
}

func TestExtractor_Headings(t *testing.T) {
	t.Parallel()

	r := extract(t, `<h1>Main</h1><h2>First</h2><p>x</p><h2>  Second
 part </h2><h4>Deep</h4>`)

	headings, ok := pagescope.FieldValue[pagescope.Headings](r, pagescope.FieldHeadings)
	require.True(t, ok)
	assert.Equal(t, pagescope.Headings{
		1: {"Main"},
		2: {"First", "Second part"},
		4: {"Deep"},
	}, headings)
}

func TestExtractor_Tables(t *testing.T) {
	t.Parallel()

	html := `<table>
<tr><th>Name</th><th>Age</th></tr>
<tr><td>Ann</td><td>30</td></tr>
</table>
<table><tr><td>solo</td></tr></table>`

	r := extract(t, html)

	tables, ok := pagescope.FieldValue[[]pagescope.Table](r, pagescope.FieldTables)
	require.True(t, ok)
	require.Len(t, tables, 2)
	assert.Equal(t, [][]string{{"Name", "Age"}, {"Ann", "30"}}, tables[0].Rows)
	assert.Equal(t, [][]string{{"solo"}}, tables[1].Rows)
}

func TestExtractor_Paragraphs(t *testing.T) {
	t.Parallel()

	html := `<p>One two.</p><p> </p><p>Three.</p><p>Four five six.</p><p>Seven.</p>`

	t.Run("keeps the first three non-empty paragraphs", func(t *testing.T) {
		t.Parallel()

		r := extract(t, html)

		assert.Equal(t, []string{"One two.", "Three.", "Four five six."}, field(t, r, pagescope.FieldParagraphs).Value)
		assert.Equal(t, 7, field(t, r, pagescope.FieldWordCount).Value)
	})

	t.Run("respects configured count", func(t *testing.T) {
		t.Parallel()

		r := extract(t, html, goquery.WithParagraphCount(1))

		assert.Equal(t, []string{"One two."}, field(t, r, pagescope.FieldParagraphs).Value)
	})
}

func TestExtractor_ContactInfo(t *testing.T) {
	t.Parallel()

	html := `<p>Write to info@example.com or sales@example.com.</p>
<p>Again: info@example.com. Call +1 555-123-4567.</p>
<form action="/Contact"><input name="msg"></form>
<form action="/search"></form>`

	r := extract(t, html)

	info, ok := pagescope.FieldValue[pagescope.ContactInfo](r, pagescope.FieldContactInfo)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"info@example.com", "sales@example.com"}, info.Emails)
	assert.Equal(t, []string{"+1 555-123-4567"}, info.Phones)
	require.Len(t, info.Forms, 1)
	assert.Equal(t, "/Contact", info.Forms[0].Action)
}

func TestExtractor_ContactInfoAdjacentElements(t *testing.T) {
	t.Parallel()

	html := `<ul><li>info@example.com</li><li>Phone</li></ul><p>a@b.org</p><p>c@d.net</p>`

	r := extract(t, html)

	info, ok := pagescope.FieldValue[pagescope.ContactInfo](r, pagescope.FieldContactInfo)
	require.True(t, ok)
	assert.Equal(t, []string{"a@b.org", "c@d.net", "info@example.com"}, info.Emails)
}

func TestExtractor_ContentHash(t *testing.T) {
	t.Parallel()

	html := `<html><body>hash me</body></html>`

	r := extract(t, html)

	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64String(html)), field(t, r, pagescope.FieldContentHash).Value)
}

func TestExtractor_TextAnalysis(t *testing.T) {
	t.Parallel()

	analyzers := func(calls *int) []goquery.Option {
		return []goquery.Option{
			goquery.WithLanguageDetector(&mock.LanguageDetector{
				DetectLanguageFn: func(string) (*pagescope.Language, error) {
					*calls++
					return &pagescope.Language{Code: "en", Name: "English", Confidence: 1}, nil
				},
			}),
			goquery.WithSentimentAnalyzer(&mock.SentimentAnalyzer{
				AnalyzeSentimentFn: func(context.Context, string) (*pagescope.Sentiment, error) {
					*calls++
					return &pagescope.Sentiment{Polarity: 0.5, Label: pagescope.SentimentPositive}, nil
				},
			}),
			goquery.WithReadabilityScorer(&mock.ReadabilityScorer{
				ScoreFn: func(string) (*pagescope.Readability, error) {
					*calls++
					return &pagescope.Readability{Words: 2}, nil
				},
			}),
			goquery.WithKeywordAnalyzer(&mock.KeywordAnalyzer{
				KeywordsFn: func(_ string, n int) ([]pagescope.Keyword, error) {
					*calls++
					return []pagescope.Keyword{{Word: "hello", Count: 1, Density: 50}}, nil
				},
			}),
		}
	}

	t.Run("returns insufficient text sentinel without paragraphs", func(t *testing.T) {
		t.Parallel()

		var calls int
		r := extract(t, `<html><body><div>No paragraphs</div></body></html>`, analyzers(&calls)...)

		for _, name := range []string{
			pagescope.FieldLanguage,
			pagescope.FieldSentiment,
			pagescope.FieldReadability,
			pagescope.FieldKeywordDensity,
		} {
			f := field(t, r, name)
			assert.Equal(t, pagescope.NotEnoughText, f.Value, name)
			assert.NotEmpty(t, f.Error, name)
		}
		assert.Zero(t, calls)
	})

	t.Run("delegates paragraph text to analyzers", func(t *testing.T) {
		t.Parallel()

		var calls int
		r := extract(t, `<p>Hello world</p>`, analyzers(&calls)...)

		lang, ok := pagescope.FieldValue[*pagescope.Language](r, pagescope.FieldLanguage)
		require.True(t, ok)
		assert.Equal(t, "en", lang.Code)
		sentiment, ok := pagescope.FieldValue[*pagescope.Sentiment](r, pagescope.FieldSentiment)
		require.True(t, ok)
		assert.Equal(t, pagescope.SentimentPositive, sentiment.Label)
		assert.Equal(t, 4, calls)
	})

	t.Run("uses field default when analyzer fails", func(t *testing.T) {
		t.Parallel()

		detector := &mock.LanguageDetector{
			DetectLanguageFn: func(string) (*pagescope.Language, error) {
				return nil, pagescope.Errorf(pagescope.ENOTFOUND, "language confidence too low")
			},
		}

		r := extract(t, `<p>Hmm</p>`, goquery.WithLanguageDetector(detector))

		f := field(t, r, pagescope.FieldLanguage)
		assert.Equal(t, pagescope.LanguageUndetected, f.Value)
		assert.Equal(t, "language confidence too low", f.Error)
	})
}

func TestExtractor_ArticleAndMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("converts article content", func(t *testing.T) {
		t.Parallel()

		var converted string
		r := extract(t, `<body><nav>menu</nav><article><p>Body</p></article></body>`,
			goquery.WithArticleExtractor(&mock.ArticleExtractor{
				ExtractFn: func(_ string, u string) (*pagescope.Article, error) {
					assert.Equal(t, pageURL, u)
					return &pagescope.Article{Title: "T", Text: "Body", ContentHTML: "<p>Body</p>"}, nil
				},
			}),
			goquery.WithConverter(&mock.Converter{
				ConvertFn: func(html string, _ string) (string, error) {
					converted = html
					return "Body", nil
				},
			}),
		)

		assert.Equal(t, "<p>Body</p>", converted)
		assert.Equal(t, "Body", field(t, r, pagescope.FieldMarkdown).Value)
		article, ok := pagescope.FieldValue[*pagescope.Article](r, pagescope.FieldArticle)
		require.True(t, ok)
		assert.Equal(t, "T", article.Title)
	})

	t.Run("falls back to body when article extraction fails", func(t *testing.T) {
		t.Parallel()

		var converted string
		r := extract(t, `<html><body><p>Whole body</p></body></html>`,
			goquery.WithArticleExtractor(&mock.ArticleExtractor{
				ExtractFn: func(string, string) (*pagescope.Article, error) {
					return nil, errors.New("no content")
				},
			}),
			goquery.WithConverter(&mock.Converter{
				ConvertFn: func(html string, _ string) (string, error) {
					converted = html
					return "Whole body", nil
				},
			}),
		)

		assert.Equal(t, "<p>Whole body</p>", converted)
		f := field(t, r, pagescope.FieldArticle)
		assert.Nil(t, f.Value)
		assert.Equal(t, "no content", f.Error)
	})
}

func TestExtractor_OptionalCollaborators(t *testing.T) {
	t.Parallel()

	var sitemapBase string
	r := extract(t, `<p>Some words here</p><meta property="og:title" content="OG">`,
		goquery.WithTokenCounter(&mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				return len(text), nil
			},
		}),
		goquery.WithSitemapService(&mock.SitemapService{
			DiscoverSitemapFn: func(_ context.Context, baseURL string) (*pagescope.Sitemap, error) {
				sitemapBase = baseURL
				return &pagescope.Sitemap{Sitemaps: []string{"https://example.com/sitemap.xml"}, URLCount: 2}, nil
			},
		}),
		goquery.WithOpenGraphParser(&mock.OpenGraphParser{
			ParseOpenGraphFn: func(string) (*pagescope.OpenGraph, error) {
				return &pagescope.OpenGraph{Title: "OG"}, nil
			},
		}),
	)

	assert.Equal(t, len("Some words here"), field(t, r, pagescope.FieldTokenCount).Value)
	assert.Equal(t, "https://example.com", sitemapBase)
	sitemap, ok := pagescope.FieldValue[*pagescope.Sitemap](r, pagescope.FieldSitemap)
	require.True(t, ok)
	assert.Equal(t, 2, sitemap.URLCount)
	og, ok := pagescope.FieldValue[*pagescope.OpenGraph](r, pagescope.FieldOpenGraph)
	require.True(t, ok)
	assert.Equal(t, "OG", og.Title)
}

func TestExtractor_CatalogOrder(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor(
		goquery.WithOpenGraphParser(&mock.OpenGraphParser{}),
		goquery.WithLinkChecker(&mock.LinkChecker{}),
		goquery.WithReadabilityScorer(&mock.ReadabilityScorer{}),
		goquery.WithSentimentAnalyzer(&mock.SentimentAnalyzer{}),
		goquery.WithLanguageDetector(&mock.LanguageDetector{}),
		goquery.WithKeywordAnalyzer(&mock.KeywordAnalyzer{}),
		goquery.WithArticleExtractor(&mock.ArticleExtractor{}),
		goquery.WithConverter(&mock.Converter{}),
		goquery.WithTokenCounter(&mock.TokenCounter{}),
		goquery.WithSitemapService(&mock.SitemapService{}),
	)

	var names []string
	for _, rule := range e.Rules() {
		names = append(names, rule.Name)
	}

	assert.Equal(t, []string{
		"title", "meta_tags", "canonical_url", "open_graph", "links", "social_links",
		"broken_links", "structured_data", "generator", "media", "forms", "headings", "tables",
		"paragraphs", "contact_info", "word_count", "readability", "sentiment",
		"language", "keyword_density", "article", "markdown", "token_count",
		"content_hash", "sitemap", "feeds",
	}, names)
}

func TestExtractor_RuleFailures(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor(
		goquery.WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
		goquery.WithIDGenerator(func() string { return "id-1" }),
		goquery.WithRules(
			goquery.Rule{Name: "panics", Default: "fallback", Extract: func(context.Context, *goquery.Input) (any, error) {
				panic("boom")
			}},
			goquery.Rule{Name: "fails", Default: []string{}, Extract: func(context.Context, *goquery.Input) (any, error) {
				return nil, errors.New("bad")
			}},
			goquery.Rule{Name: "works", Extract: func(_ context.Context, in *goquery.Input) (any, error) {
				return len(in.Result.Fields), nil
			}},
		),
	)

	r, err := e.ExtractFields(context.Background(), &pagescope.Page{URL: pageURL, HTML: "<p>x</p>"})

	require.NoError(t, err)
	assert.Equal(t, "id-1", r.ID)
	assert.Equal(t, pageURL, r.URL)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), r.ExtractedAt)
	assert.Equal(t, []pagescope.Field{
		{Name: "panics", Value: "fallback", Error: "panic: boom"},
		{Name: "fails", Value: []string{}, Error: "bad"},
		{Name: "works", Value: 2},
	}, r.Fields)
}

func TestExtractor_UsesFinalURLAsBase(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	r, err := e.ExtractFields(context.Background(), &pagescope.Page{
		URL:      "https://example.com/old",
		FinalURL: "https://www.example.com/new/",
		HTML:     `<a href="child">c</a>`,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/old", r.URL)
	links, ok := pagescope.FieldValue[pagescope.LinkSet](r, pagescope.FieldLinks)
	require.True(t, ok)
	assert.Equal(t, []string{"https://www.example.com/new/child"}, links.Internal)
}
