package goquery

import (
	"context"
	"encoding/json"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagescope"
	"golang.org/x/net/html"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
)

func extractTitle(_ context.Context, in *Input) (any, error) {
	sel := in.Doc.Find("title").First()
	if sel.Length() == 0 {
		return pagescope.NoTitleFound, nil
	}
	title := strings.TrimSpace(sel.Text())
	if title == "" {
		return pagescope.NoTitleFound, nil
	}
	return title, nil
}

// extractMetaTags keys each meta element by name, falling back to property.
func extractMetaTags(_ context.Context, in *Input) (any, error) {
	tags := pagescope.MetaTags{}
	in.Doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("name", "")
		if key == "" {
			key = s.AttrOr("property", "")
		}
		if key == "" {
			return
		}
		tags[key] = s.AttrOr("content", "")
	})
	return tags, nil
}

func extractCanonicalURL(_ context.Context, in *Input) (any, error) {
	href, ok := in.Doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !ok {
		return "", nil
	}
	return resolveAny(in.Base, href), nil
}

// extractStructuredData parses every JSON-LD block; malformed blocks are skipped.
func extractStructuredData(_ context.Context, in *Input) (any, error) {
	data := []any{}
	in.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return
		}
		data = append(data, v)
	})
	return data, nil
}

func extractMedia(_ context.Context, in *Input) (any, error) {
	media := pagescope.Media{
		Images: []pagescope.Image{},
		Videos: []string{},
		Audios: []string{},
	}

	in.Doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		alt := strings.TrimSpace(s.AttrOr("alt", ""))
		if alt == "" {
			alt = string(pagescope.NoAltText)
		}
		media.Images = append(media.Images, pagescope.Image{
			Src: resolveAny(in.Base, s.AttrOr("src", "")),
			Alt: alt,
		})
	})
	in.Doc.Find("video[src], video source[src]").Each(func(_ int, s *goquery.Selection) {
		media.Videos = append(media.Videos, resolveAny(in.Base, s.AttrOr("src", "")))
	})
	in.Doc.Find("audio[src], audio source[src]").Each(func(_ int, s *goquery.Selection) {
		media.Audios = append(media.Audios, resolveAny(in.Base, s.AttrOr("src", "")))
	})

	return media, nil
}

func extractForms(_ context.Context, in *Input) (any, error) {
	return collectForms(in.Doc.Find("form")), nil
}

func collectForms(sel *goquery.Selection) []pagescope.Form {
	forms := []pagescope.Form{}
	sel.Each(func(_ int, s *goquery.Selection) {
		form := pagescope.Form{
			Action: s.AttrOr("action", ""),
			Method: strings.ToLower(s.AttrOr("method", "get")),
			Inputs: []pagescope.FormInput{},
		}
		s.Find("input").Each(func(_ int, input *goquery.Selection) {
			form.Inputs = append(form.Inputs, pagescope.FormInput{
				Type:  input.AttrOr("type", "text"),
				Name:  input.AttrOr("name", ""),
				Value: input.AttrOr("value", ""),
			})
		})
		forms = append(forms, form)
	})
	return forms
}

func extractHeadings(_ context.Context, in *Input) (any, error) {
	headings := pagescope.Headings{}
	in.Doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		if err != nil {
			return
		}
		headings[level] = append(headings[level], textContent(s))
	})
	return headings, nil
}

func extractTables(_ context.Context, in *Input) (any, error) {
	tables := []pagescope.Table{}
	in.Doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		t := pagescope.Table{Rows: [][]string{}}
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, textContent(cell))
			})
			if len(row) > 0 {
				t.Rows = append(t.Rows, row)
			}
		})
		tables = append(tables, t)
	})
	return tables, nil
}

func (e *Extractor) extractParagraphs(_ context.Context, in *Input) (any, error) {
	paragraphs := in.Paragraphs()
	if len(paragraphs) > e.paragraphCount {
		paragraphs = paragraphs[:e.paragraphCount]
	}
	return slices.Clone(paragraphs), nil
}

// extractContactInfo scans the document text for emails and phone numbers
// and collects forms whose action mentions "contact".
func extractContactInfo(_ context.Context, in *Input) (any, error) {
	text := spacedText(in.Doc.Selection)

	info := pagescope.ContactInfo{
		Emails: unique(emailPattern.FindAllString(text, -1)),
		Phones: unique(phonePattern.FindAllString(text, -1)),
		Forms: collectForms(in.Doc.Find("form").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(strings.ToLower(s.AttrOr("action", "")), "contact")
		})),
	}
	return info, nil
}

func extractWordCount(_ context.Context, in *Input) (any, error) {
	return len(strings.Fields(in.ParagraphText())), nil
}

// spacedText joins the document's text nodes with spaces so patterns
// cannot match across element boundaries.
func spacedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// unique returns the distinct values sorted.
func unique(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
