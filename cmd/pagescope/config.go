package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/goquery"
	pagescopehttp "github.com/fwojciec/pagescope/http"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig    = "PAGESCOPE_CONFIG"
	EnvUserAgent = "PAGESCOPE_USER_AGENT"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// Config holds settings shared by all commands. Values are layered:
// defaults, then the YAML file, then environment, then command-line flags.
type Config struct {
	UserAgent      string          `yaml:"user_agent"`
	RobotsAgent    string          `yaml:"robots_agent"`
	FetchTimeout   time.Duration   `yaml:"fetch_timeout"`
	Retries        int             `yaml:"retries"`
	LinkCheck      LinkCheckConfig `yaml:"link_check"`
	ParagraphCount int             `yaml:"paragraph_count"`
	KeywordCount   int             `yaml:"keyword_count"`
	Language       LanguageConfig  `yaml:"language"`
	SocialDomains  []string        `yaml:"social_domains"`
	Addr           string          `yaml:"addr"`

	// GeminiAPIKey is only read from the environment.
	GeminiAPIKey string `yaml:"-"`
}

// LinkCheckConfig configures the broken link checker.
type LinkCheckConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	Rate        float64       `yaml:"rate"`
	Concurrency int           `yaml:"concurrency"`
}

// LanguageConfig restricts language detection. Codes are ISO 639-3.
type LanguageConfig struct {
	Allow         []string `yaml:"allow"`
	Deny          []string `yaml:"deny"`
	MinConfidence float64  `yaml:"min_confidence"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		UserAgent:    pagescope.DefaultUserAgent,
		RobotsAgent:  pagescopehttp.DefaultRobotsAgent,
		FetchTimeout: pagescopehttp.DefaultFetchTimeout,
		Retries:      pagescopehttp.DefaultMaxRetries,
		LinkCheck: LinkCheckConfig{
			Timeout:     pagescopehttp.DefaultLinkCheckTimeout,
			Rate:        pagescopehttp.DefaultLinkCheckRate,
			Concurrency: 1,
		},
		ParagraphCount: goquery.DefaultParagraphCount,
		KeywordCount:   goquery.DefaultKeywordCount,
		SocialDomains:  append([]string(nil), goquery.DefaultSocialDomains...),
		Addr:           ":8080",
	}
}

// LoadConfig builds the configuration from path (or $PAGESCOPE_CONFIG when
// path is empty) and the environment. A path that was given explicitly
// must exist.
func LoadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, pagescope.Errorf(pagescope.EINVALID, "config file %q not found", path)
		}
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, pagescope.Errorf(pagescope.EINVALID, "parse config %q: %v", path, err)
		}
	}

	if ua := getenv(EnvUserAgent); ua != "" {
		cfg.UserAgent = ua
	}
	cfg.GeminiAPIKey = getenv(EnvGeminiKey)

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.UserAgent == "":
		return pagescope.Errorf(pagescope.EINVALID, "user_agent must not be empty")
	case c.FetchTimeout <= 0:
		return pagescope.Errorf(pagescope.EINVALID, "fetch_timeout must be positive")
	case c.Retries < 0:
		return pagescope.Errorf(pagescope.EINVALID, "retries must not be negative")
	case c.LinkCheck.Timeout <= 0:
		return pagescope.Errorf(pagescope.EINVALID, "link_check.timeout must be positive")
	case c.LinkCheck.Rate <= 0:
		return pagescope.Errorf(pagescope.EINVALID, "link_check.rate must be positive")
	case c.LinkCheck.Concurrency < 1:
		return pagescope.Errorf(pagescope.EINVALID, "link_check.concurrency must be at least 1")
	case c.ParagraphCount < 0:
		return pagescope.Errorf(pagescope.EINVALID, "paragraph_count must not be negative")
	case c.KeywordCount < 0:
		return pagescope.Errorf(pagescope.EINVALID, "keyword_count must not be negative")
	}
	return nil
}
