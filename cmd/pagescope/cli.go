package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/pagescope"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    Config
	Inspector pagescope.Inspector

	// Spinner is nil when stderr is not a terminal.
	Spinner *spinner.Spinner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string        `short:"c" type:"path" help:"YAML config file (default: $PAGESCOPE_CONFIG)"`
	Verbose   bool          `short:"v" help:"Log debug details to stderr"`
	UserAgent string        `name:"user-agent" help:"User-Agent header sent with requests"`
	Timeout   time.Duration `short:"t" help:"Fetch timeout"`
	Retries   int           `default:"-1" help:"Retries for transient fetch failures (-1: use config)"`

	Extract ExtractCmd `cmd:"" help:"Extract fields from a web page"`
	Serve   ServeCmd   `cmd:"" help:"Serve the web UI and JSON API"`
}

// apply overrides cfg with flags that were set.
func (c *CLI) apply(cfg *Config) {
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	if c.Timeout > 0 {
		cfg.FetchTimeout = c.Timeout
	}
	if c.Retries >= 0 {
		cfg.Retries = c.Retries
	}
}

// Features select optional extraction behavior. Shared by extract and serve.
type Features struct {
	CheckLinks    bool   `name:"check-links" help:"Check every link with a HEAD request (slow)"`
	Render        bool   `help:"Render the page in headless Chrome before extracting"`
	Robots        bool   `help:"Refuse pages disallowed by robots.txt"`
	StrictOrigin  bool   `name:"strict-origin" help:"Count only links on the exact same host as internal"`
	Sitemap       bool   `help:"Discover sitemaps declared in robots.txt"`
	Feeds         bool   `help:"Read the RSS/Atom feeds the page links to"`
	Tokens        bool   `help:"Count paragraph tokens"`
	Tokenizer     string `enum:"gemini,tiktoken" default:"gemini" help:"Tokenizer for --tokens (${enum})"`
	ArticleEngine string `name:"article-engine" enum:"trafilatura,readability" default:"trafilatura" help:"Main content extractor (${enum})"`
	Sentiment     string `enum:"vader,gemini" default:"vader" help:"Sentiment analyzer (${enum})"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL       string `arg:"" optional:"" help:"Page URL (read from stdin when omitted)"`
	Format    string `short:"f" enum:"text,json,csv,markdown" default:"text" help:"Output format (${enum})"`
	Output    string `short:"o" type:"path" xor:"output" help:"Write output to a file instead of stdout"`
	OutputDir string `name:"output-dir" type:"path" xor:"output" help:"Write output to DIR/<host>/<path>.<ext>"`

	Features `embed:""`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (default from config, :8080)"`

	Features `embed:""`
}
