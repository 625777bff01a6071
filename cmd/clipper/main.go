package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/duckduckgo"
	"github.com/fwojciec/clipper/goquery"
	cliphttp "github.com/fwojciec/clipper/http"
	"github.com/fwojciec/clipper/openai"
	"github.com/fwojciec/clipper/pipeline"
	"github.com/fwojciec/clipper/quality"
	"github.com/fwojciec/clipper/rod"
	clipslog "github.com/fwojciec/clipper/slog"
	"github.com/fwojciec/clipper/sqlite"
	"github.com/fwojciec/clipper/trafilatura"
	"github.com/fwojciec/clipper/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration file path. Set before calling Run().
	ConfigPath string

	// Database path. Overrides the configured path when non-empty.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. SearchService, when set,
	// replaces the live search backend in the pipeline.
	ArticleService       clipper.ArticleService
	QualityConfigService clipper.QualityConfigService
	SearchService        clipper.SearchService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
		DBPath:     os.Getenv("CLIPPER_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("clipper"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'clipper --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Dispatch on the resolved command, not args[0]: top-level flags
	// like --verbose may precede the subcommand.
	command := strings.Fields(kongCtx.Command())[0]

	cfg, err := yaml.Load(m.ConfigPath)
	if err != nil {
		return err
	}
	dbPath := cfg.DBPath
	if m.DBPath != "" {
		dbPath = m.DBPath
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CLIPPER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.ArticleService = sqlite.NewArticleService(m.DB)
	m.QualityConfigService = sqlite.NewQualityConfigService(m.DB)
	deps.DB = m.DB
	deps.Articles = m.ArticleService
	deps.QualityConfig = m.QualityConfigService

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Classifier = clipslog.NewLoggingClassifier(
		quality.NewClassifier(m.QualityConfigService), logger)

	if command == "search" {
		p, cleanup, err := m.buildPipeline(cli, cfg, deps, logger, stderr)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Pipeline = p
	}

	return kongCtx.Run(deps)
}

// buildPipeline wires the fetch-extract-classify pipeline for the
// search command. The returned cleanup closes the fetcher and renderer.
func (m *Main) buildPipeline(cli *CLI, cfg *yaml.Config, deps *Dependencies, logger *slog.Logger, stderr io.Writer) (*pipeline.Pipeline, func(), error) {
	var fetcherOpts []cliphttp.Option
	if cfg.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, cliphttp.WithUserAgent(cfg.UserAgent))
	}
	fetcher := clipslog.NewLoggingFetcher(cliphttp.NewFetcher(fetcherOpts...), logger)

	var renderer clipper.Renderer
	if cli.Search.Render || cfg.Render {
		r, err := rod.NewRenderer()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		renderer = r
	}

	engine := cli.Search.Extractor
	if engine == "" {
		engine = cfg.Extractor
	}
	var extractor clipper.Extractor
	if engine == "trafilatura" {
		extractor = trafilatura.NewExtractor()
	} else {
		extractor = goquery.NewExtractor()
	}

	var summarizer clipper.Summarizer
	if key := cfg.Summarizer.APIKey(); key != "" {
		var opts []openai.Option
		if cfg.Summarizer.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Summarizer.BaseURL))
		}
		if cfg.Summarizer.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Summarizer.Model))
		}
		summarizer = openai.NewSummarizer(key, opts...)
	}

	maxResults := cli.Search.Max
	if maxResults <= 0 {
		maxResults = cfg.MaxResults
	}
	concurrency := cli.Search.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	search := m.SearchService
	if search == nil {
		search = duckduckgo.NewSearchService()
	}

	p := &pipeline.Pipeline{
		Search:      search,
		Fetcher:     fetcher,
		Renderer:    renderer,
		Extractor:   extractor,
		Classifier:  deps.Classifier,
		Summarizer:  summarizer,
		Articles:    deps.Articles,
		RateLimiter: pipeline.NewDomainLimiter(cfg.RequestsPerSecond),
		MaxResults:  maxResults,
		Concurrency: concurrency,
	}

	cleanup := func() {
		_ = fetcher.Close()
		if renderer != nil {
			_ = renderer.Close()
		}
	}
	return p, cleanup, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("CLIPPER_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "clipper.yaml"
	}
	dir := filepath.Join(home, ".clipper")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "config.yaml")
}
