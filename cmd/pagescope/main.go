package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/pagescope"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads the environment. Set before calling Run().
	Getenv func(string) string

	// Stdin supplies the URL when none is given on the command line.
	Stdin io.Reader

	// Inspector replaces the wired inspector for end-to-end testing.
	Inspector pagescope.Inspector
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagescope"),
		kong.Description("Extract titles, links, media, structured data and text analytics from a web page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagescope --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config, m.Getenv)
	if err != nil {
		return err
	}
	cli.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	deps.Config = cfg

	var features Features
	if strings.HasPrefix(kongCtx.Command(), "serve") {
		features = cli.Serve.Features
		deps.Logger = newServerLogger(stderr, cli.Verbose)
	} else {
		features = cli.Extract.Features
		deps.Logger = newCLILogger(stderr, cli.Verbose)
		deps.Spinner = newSpinner(stderr)
	}

	if m.Inspector != nil {
		deps.Inspector = m.Inspector
	} else {
		inspector, closeFn, err := Wire(ctx, cfg, features, deps.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()
		deps.Inspector = inspector
	}

	return kongCtx.Run(deps)
}

// errorText returns the message of application errors and the full text
// of anything else.
func errorText(err error) string {
	if pagescope.ErrorCode(err) == pagescope.EINTERNAL {
		return err.Error()
	}
	return pagescope.ErrorMessage(err)
}

// newCLILogger writes human-friendly logs. Only warnings and errors are
// shown unless verbose is set.
func newCLILogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Prefix:          "pagescope",
	})
	return slog.New(handler)
}

// newServerLogger writes structured JSON logs for the long-running server.
func newServerLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// newSpinner returns a spinner on w, or nil when w is not a terminal.
func newSpinner(w io.Writer) *spinner.Spinner {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil
	}
	return spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
}
