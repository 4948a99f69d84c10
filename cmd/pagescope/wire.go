package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/gemini"
	"github.com/fwojciec/pagescope/gofeed"
	"github.com/fwojciec/pagescope/goquery"
	"github.com/fwojciec/pagescope/govader"
	"github.com/fwojciec/pagescope/htmltomarkdown"
	pagescopehttp "github.com/fwojciec/pagescope/http"
	"github.com/fwojciec/pagescope/inspect"
	"github.com/fwojciec/pagescope/opengraph"
	"github.com/fwojciec/pagescope/readability"
	"github.com/fwojciec/pagescope/rod"
	pageslog "github.com/fwojciec/pagescope/slog"
	"github.com/fwojciec/pagescope/textstat"
	"github.com/fwojciec/pagescope/tiktoken"
	"github.com/fwojciec/pagescope/trafilatura"
	"github.com/fwojciec/pagescope/whatlang"
	"google.golang.org/genai"
)

// Wire builds an Inspector from configuration and feature flags. The
// returned close function releases the fetcher (and browser, when
// rendering).
func Wire(ctx context.Context, cfg Config, f Features, logger *slog.Logger) (*inspect.Inspector, func() error, error) {
	client := &http.Client{Timeout: cfg.FetchTimeout}

	detector, err := whatlang.NewDetector(whatlang.Options{
		Allow:         cfg.Language.Allow,
		Deny:          cfg.Language.Deny,
		MinConfidence: cfg.Language.MinConfidence,
	})
	if err != nil {
		return nil, nil, err
	}

	opts := []goquery.Option{
		goquery.WithOpenGraphParser(opengraph.NewParser()),
		goquery.WithReadabilityScorer(textstat.NewScorer()),
		goquery.WithKeywordAnalyzer(textstat.NewKeywordAnalyzer()),
		goquery.WithLanguageDetector(detector),
		goquery.WithConverter(htmltomarkdown.NewConverter()),
		goquery.WithStrictOrigin(f.StrictOrigin),
		goquery.WithParagraphCount(cfg.ParagraphCount),
		goquery.WithKeywordCount(cfg.KeywordCount),
		goquery.WithSocialDomains(cfg.SocialDomains),
	}

	switch f.ArticleEngine {
	case "readability":
		opts = append(opts, goquery.WithArticleExtractor(readability.NewExtractor()))
	default:
		opts = append(opts, goquery.WithArticleExtractor(trafilatura.NewExtractor()))
	}

	switch f.Sentiment {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil, pagescope.Errorf(pagescope.EINVALID, "%s not set. Get a key at https://aistudio.google.com/apikey", EnvGeminiKey)
		}
		gc, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		opts = append(opts, goquery.WithSentimentAnalyzer(gemini.NewSentimentAnalyzer(gc)))
	default:
		opts = append(opts, goquery.WithSentimentAnalyzer(govader.NewAnalyzer()))
	}

	if f.CheckLinks {
		checker := pagescopehttp.NewLinkChecker(
			pagescopehttp.WithCheckTimeout(cfg.LinkCheck.Timeout),
			pagescopehttp.WithCheckRate(cfg.LinkCheck.Rate),
			pagescopehttp.WithCheckConcurrency(cfg.LinkCheck.Concurrency),
			pagescopehttp.WithCheckUserAgent(cfg.UserAgent),
		)
		opts = append(opts, goquery.WithLinkChecker(pageslog.NewLoggingLinkChecker(checker, logger)))
	}

	if f.Sitemap {
		sitemaps := pagescopehttp.NewSitemapService(client, cfg.UserAgent)
		opts = append(opts, goquery.WithSitemapService(pageslog.NewLoggingSitemapService(sitemaps, logger)))
	}

	if f.Feeds {
		opts = append(opts, goquery.WithFeedReader(gofeed.NewReader(client, cfg.UserAgent)))
	}

	if f.Tokens {
		counter, err := newTokenCounter(f.Tokenizer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		opts = append(opts, goquery.WithTokenCounter(counter))
	}

	var fetcher pagescope.Fetcher
	if f.Render {
		fetcher = rod.NewFetcher(
			rod.WithFetchTimeout(cfg.FetchTimeout),
			rod.WithUserAgent(cfg.UserAgent),
		)
	} else {
		fetcher = pagescopehttp.NewFetcher(
			pagescopehttp.WithTimeout(cfg.FetchTimeout),
			pagescopehttp.WithUserAgent(cfg.UserAgent),
			pagescopehttp.WithMaxRetries(cfg.Retries),
			pagescopehttp.WithRetryNotify(func(url string, err error, wait time.Duration) {
				logger.Warn("retrying fetch", "url", url, "error", err, "wait", wait)
			}),
		)
	}
	fetcher = pageslog.NewLoggingFetcher(fetcher, logger)

	ins := &inspect.Inspector{
		Fetcher:   fetcher,
		Extractor: pageslog.NewLoggingExtractor(goquery.NewExtractor(opts...), logger),
	}
	if f.Robots {
		policy := pagescopehttp.NewRobotsPolicy(client, cfg.RobotsAgent, cfg.UserAgent)
		ins.Policy = pageslog.NewLoggingCrawlPolicy(policy, logger)
	}

	return ins, fetcher.Close, nil
}

func newTokenCounter(name string) (pagescope.TokenCounter, error) {
	if name == "tiktoken" {
		tc, err := tiktoken.NewTokenCounter(tiktoken.DefaultEncoding)
		if err != nil {
			return nil, err
		}
		return tc, nil
	}
	tc, err := gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
	if err != nil {
		return nil, err
	}
	return tc, nil
}
