package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagescope"
)

// generatorMarkers maps a product to selectors only its output contains.
// Order matters: VitePress is checked before VuePress, which shares markup.
var generatorMarkers = []struct {
	name      string
	selectors []string
}{
	{"docusaurus", []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", "#__docusaurus"}},
	{"mkdocs", []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"}},
	{"sphinx", []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"}},
	{"vitepress", []string{"#VPContent", ".VPDoc", ".VPDocAsideOutline"}},
	{"vuepress", []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"}},
	{"gitbook", []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"}},
	{"nextra", []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"}},
	{"nextjs", []string{"script#__NEXT_DATA__", "#__next"}},
	{"gatsby", []string{"#___gatsby"}},
	{"nuxt", []string{"#__nuxt", "script#__NUXT_DATA__"}},
	{"wordpress", []string{"link[href*='/wp-content/']", "script[src*='/wp-content/']", "link[href*='/wp-includes/']"}},
	{"drupal", []string{"[data-drupal-selector]", "script[src*='/sites/default/files/']"}},
	{"shopify", []string{"link[href*='cdn.shopify.com']", "script[src*='cdn.shopify.com']"}},
	{"squarespace", []string{"script[src*='static1.squarespace.com']"}},
	{"wix", []string{"meta[name='generator'][content*='Wix']", "script[src*='static.parastorage.com']"}},
}

// generatorNames are product tokens recognized in <meta name="generator">.
var generatorNames = []string{
	"docusaurus", "mkdocs", "sphinx", "vitepress", "vuepress", "gitbook",
	"nextra", "hugo", "jekyll", "gatsby", "wordpress", "drupal", "joomla",
	"ghost", "hexo", "eleventy", "astro", "wix", "squarespace", "shopify",
}

// extractGenerator identifies the site generator from the meta generator
// tag, falling back to markup only the generator produces. Unknown
// generators yield nil.
func extractGenerator(_ context.Context, in *Input) (any, error) {
	meta := strings.TrimSpace(in.Doc.Find("meta[name='generator']").First().AttrOr("content", ""))
	if meta != "" {
		lower := strings.ToLower(meta)
		for _, name := range generatorNames {
			if strings.Contains(lower, name) {
				return &pagescope.Generator{Name: name, Meta: meta}, nil
			}
		}
	}

	if name := detectFromMarkup(in.Doc); name != "" {
		return &pagescope.Generator{Name: name, Meta: meta}, nil
	}
	if hasGitBookClasses(in.Doc) {
		return &pagescope.Generator{Name: "gitbook", Meta: meta}, nil
	}
	if meta != "" {
		return &pagescope.Generator{Name: strings.ToLower(strings.Fields(meta)[0]), Meta: meta}, nil
	}
	return nil, nil
}

func detectFromMarkup(doc *goquery.Document) string {
	for _, m := range generatorMarkers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.name
			}
		}
	}
	return ""
}

// hasGitBookClasses reports whether the html element carries at least two
// of GitBook's theme classes.
func hasGitBookClasses(doc *goquery.Document) bool {
	class := doc.Find("html").AttrOr("class", "")
	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}
