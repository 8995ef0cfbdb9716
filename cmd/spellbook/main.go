package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/fwojciec/spellbook"
	"github.com/fwojciec/spellbook/crawl"
	"github.com/fwojciec/spellbook/fs"
	"github.com/fwojciec/spellbook/goquery"
	spellhttp "github.com/fwojciec/spellbook/http"
	"github.com/fwojciec/spellbook/levenshtein"
	"github.com/fwojciec/spellbook/lipgloss"
	spellslog "github.com/fwojciec/spellbook/slog"
	"github.com/fwojciec/spellbook/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Settings. Read from the environment by Run() when nil.
	Config *Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SpellService spellbook.SpellService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("spellbook"),
		kong.Description("Look up D&D 5e spells from a local copy of the wiki."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no spell specified. Run 'spellbook --help' to see available options")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	runner := cli.Command()
	if runner == nil {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no spell specified. Run 'spellbook --help' to see available options")
	}

	if m.Config == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		m.Config = cfg
	}

	logger := newLogger(stderr, cli.Verbose)

	if err := os.MkdirAll(filepath.Dir(m.Config.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	m.DB = sqlite.NewDB(m.Config.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SPELLBOOK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
	}
	defer m.Close()

	m.SpellService = spellslog.NewLoggingSpellService(sqlite.NewSpellService(m.DB), logger)

	deps := &Dependencies{
		Ctx:       ctx,
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Spells:    m.SpellService,
		Extractor: spellslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
		Resolver:  levenshtein.NewResolver(levenshtein.WithThreshold(m.Config.Threshold)),
		Renderer:  lipgloss.NewRenderer(lipgloss.WithWidth(outputWidth(stdout))),
		Archive:   fs.NewArchive(filepath.Dir(m.Config.ArchiveDir), filepath.Base(m.Config.ArchiveDir)),
	}

	if _, ok := runner.(*UpdateCmd); ok {
		fetcher := spellslog.NewLoggingFetcher(spellhttp.NewFetcher(), logger)
		defer fetcher.Close()

		deps.Scraper = &crawl.Scraper{
			Sitemaps: spellslog.NewLoggingSitemapService(spellhttp.NewSitemapService(nil), logger),
			Fetcher:  fetcher,
			Archive:  deps.Archive,
			Limiter:  crawl.NewThrottle(m.Config.FetchDelay),
			BaseURL:  m.Config.BaseURL,
		}
	}

	return runner.Run(deps)
}

// newLogger returns a logger writing to w. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}

// outputWidth returns the terminal width when w is a terminal.
func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return lipgloss.TerminalWidth(f)
	}
	return lipgloss.DefaultWidth
}
