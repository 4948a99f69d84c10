package goquery

import "github.com/fwojciec/pagescope"

// catalog builds the rule list in evaluation order. links must precede
// social_links and broken_links, which read its value from the result.
func (e *Extractor) catalog() []Rule {
	rules := []Rule{
		{Name: pagescope.FieldTitle, Extract: extractTitle, Default: pagescope.NoTitleFound},
		{Name: pagescope.FieldMetaTags, Extract: extractMetaTags, Default: pagescope.MetaTags{}},
		{Name: pagescope.FieldCanonicalURL, Extract: extractCanonicalURL, Default: ""},
	}
	if e.openGraph != nil {
		rules = append(rules, Rule{Name: pagescope.FieldOpenGraph, Extract: e.extractOpenGraph})
	}
	rules = append(rules,
		Rule{Name: pagescope.FieldLinks, Extract: e.extractLinks, Default: pagescope.LinkSet{}},
		Rule{Name: pagescope.FieldSocialLinks, Extract: e.extractSocialLinks, Default: []string{}},
	)
	if e.linkChecker != nil {
		rules = append(rules, Rule{Name: pagescope.FieldBrokenLinks, Extract: e.extractBrokenLinks, Default: []pagescope.LinkStatus{}})
	}
	rules = append(rules,
		Rule{Name: pagescope.FieldStructuredData, Extract: extractStructuredData, Default: []any{}},
		Rule{Name: pagescope.FieldGenerator, Extract: extractGenerator},
		Rule{Name: pagescope.FieldMedia, Extract: extractMedia, Default: pagescope.Media{}},
		Rule{Name: pagescope.FieldForms, Extract: extractForms, Default: []pagescope.Form{}},
		Rule{Name: pagescope.FieldHeadings, Extract: extractHeadings, Default: pagescope.Headings{}},
		Rule{Name: pagescope.FieldTables, Extract: extractTables, Default: []pagescope.Table{}},
		Rule{Name: pagescope.FieldParagraphs, Extract: e.extractParagraphs, Default: []string{}},
		Rule{Name: pagescope.FieldContactInfo, Extract: extractContactInfo, Default: pagescope.ContactInfo{}},
		Rule{Name: pagescope.FieldWordCount, Extract: extractWordCount, Default: 0},
	)
	if e.readability != nil {
		rules = append(rules, Rule{Name: pagescope.FieldReadability, Extract: e.extractReadability, Default: pagescope.ReadabilityFailed})
	}
	if e.sentiment != nil {
		rules = append(rules, Rule{Name: pagescope.FieldSentiment, Extract: e.extractSentiment, Default: pagescope.SentimentFailed})
	}
	if e.language != nil {
		rules = append(rules, Rule{Name: pagescope.FieldLanguage, Extract: e.extractLanguage, Default: pagescope.LanguageUndetected})
	}
	if e.keywords != nil {
		rules = append(rules, Rule{Name: pagescope.FieldKeywordDensity, Extract: e.extractKeywordDensity, Default: []pagescope.Keyword{}})
	}
	if e.article != nil {
		rules = append(rules, Rule{Name: pagescope.FieldArticle, Extract: e.extractArticle})
	}
	if e.converter != nil {
		rules = append(rules, Rule{Name: pagescope.FieldMarkdown, Extract: e.extractMarkdown, Default: ""})
	}
	if e.tokens != nil {
		rules = append(rules, Rule{Name: pagescope.FieldTokenCount, Extract: e.extractTokenCount, Default: 0})
	}
	rules = append(rules, Rule{Name: pagescope.FieldContentHash, Extract: extractContentHash, Default: ""})
	if e.sitemaps != nil {
		rules = append(rules, Rule{Name: pagescope.FieldSitemap, Extract: e.extractSitemap})
	}
	rules = append(rules, Rule{Name: pagescope.FieldFeeds, Extract: e.extractFeeds, Default: []pagescope.Feed{}})
	return rules
}
