package goquery

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagescope"
)

// notEnoughText is returned by text-analysis rules when the page has no
// paragraph text.
func notEnoughText() (any, error) {
	return pagescope.NotEnoughText, pagescope.Errorf(pagescope.EINVALID, "page has no paragraph text")
}

// analysisFailure keeps NotEnoughText for empty-input errors from analyzers.
func analysisFailure(err error) (any, error) {
	if pagescope.ErrorCode(err) == pagescope.EINVALID {
		return pagescope.NotEnoughText, err
	}
	return nil, err
}

func (e *Extractor) extractReadability(_ context.Context, in *Input) (any, error) {
	text := in.ParagraphText()
	if text == "" {
		return notEnoughText()
	}
	score, err := e.readability.Score(text)
	if err != nil {
		return analysisFailure(err)
	}
	return score, nil
}

func (e *Extractor) extractSentiment(ctx context.Context, in *Input) (any, error) {
	text := in.ParagraphText()
	if text == "" {
		return notEnoughText()
	}
	sentiment, err := e.sentiment.AnalyzeSentiment(ctx, text)
	if err != nil {
		return analysisFailure(err)
	}
	return sentiment, nil
}

func (e *Extractor) extractLanguage(_ context.Context, in *Input) (any, error) {
	text := in.ParagraphText()
	if text == "" {
		return notEnoughText()
	}
	lang, err := e.language.DetectLanguage(text)
	if err != nil {
		return analysisFailure(err)
	}
	return lang, nil
}

func (e *Extractor) extractKeywordDensity(_ context.Context, in *Input) (any, error) {
	text := in.ParagraphText()
	if text == "" {
		return notEnoughText()
	}
	keywords, err := e.keywords.Keywords(text, e.keywordCount)
	if err != nil {
		return analysisFailure(err)
	}
	return keywords, nil
}

func (e *Extractor) extractOpenGraph(_ context.Context, in *Input) (any, error) {
	og, err := e.openGraph.ParseOpenGraph(in.Page.HTML)
	if err != nil {
		return nil, err
	}
	if og.IsZero() {
		return nil, nil
	}
	return og, nil
}

func (e *Extractor) extractArticle(_ context.Context, in *Input) (any, error) {
	article, err := e.article.Extract(in.Page.HTML, in.Base.String())
	if err != nil {
		return nil, err
	}
	return article, nil
}

// extractMarkdown converts the article content when the article field
// succeeded, or the whole body otherwise.
func (e *Extractor) extractMarkdown(_ context.Context, in *Input) (any, error) {
	var html string
	if article, ok := pagescope.FieldValue[*pagescope.Article](in.Result, pagescope.FieldArticle); ok && article != nil && article.ContentHTML != "" {
		html = article.ContentHTML
	} else {
		body, err := in.Doc.Find("body").Html()
		if err != nil {
			return nil, err
		}
		html = body
	}
	return e.converter.Convert(html, in.Base.String())
}

func (e *Extractor) extractTokenCount(ctx context.Context, in *Input) (any, error) {
	return e.tokens.CountTokens(ctx, in.ParagraphText())
}

func extractContentHash(_ context.Context, in *Input) (any, error) {
	return fmt.Sprintf("%016x", xxhash.Sum64String(in.Page.HTML)), nil
}

func (e *Extractor) extractSitemap(ctx context.Context, in *Input) (any, error) {
	sitemap, err := e.sitemaps.DiscoverSitemap(ctx, pagescope.Origin(in.Base.String()))
	if err != nil {
		return nil, err
	}
	return sitemap, nil
}
