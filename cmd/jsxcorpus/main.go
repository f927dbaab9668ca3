package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jsxcorpus"
	"github.com/fwojciec/jsxcorpus/charclass"
	"github.com/fwojciec/jsxcorpus/crawl"
	"github.com/fwojciec/jsxcorpus/fs"
	"github.com/fwojciec/jsxcorpus/gemini"
	"github.com/fwojciec/jsxcorpus/goquery"
	jsxhttp "github.com/fwojciec/jsxcorpus/http"
	jsxslog "github.com/fwojciec/jsxcorpus/slog"
	"github.com/fwojciec/jsxcorpus/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// legacyDatasetPrefix marks a single argument naming a unit directory to
// convert into a dataset, e.g. "jsonl-mayoclinic-1".
const legacyDatasetPrefix = "jsonl-"

// Main represents the program.
type Main struct {
	// Stdin is read by the estimate command when no files are given.
	Stdin io.Reader

	// SQLite database, open only when the sqlite store is selected.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jsxcorpus"),
		kong.Description("Crawl a site and turn its pages into JSX training pairs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(loadConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	args = normalizeArgs(args)
	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	switch cli.Tokenizer {
	case "gemini":
		tokens, err := gemini.NewTokenCounter(cli.TokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = tokens
	default:
		deps.Tokens = charclass.NewEstimator()
	}

	cmd := ""
	if node := kongCtx.Selected(); node != nil {
		cmd = node.Name
	}

	if cmd == "run" || cmd == "crawl" || cmd == "export" {
		records, err := m.openRecords(cli)
		if err != nil {
			return err
		}
		defer m.Close()
		if logger != nil {
			records = jsxslog.NewLoggingRecordStore(records, logger)
		}
		deps.Records = records
	}

	if cmd == "run" || cmd == "export" {
		profiles, err := loadProfiles(cli.Profiles)
		if err != nil {
			return err
		}
		deps.Profiles = profiles

		var transformer jsxcorpus.MarkupTransformer = goquery.NewTransformer()
		if logger != nil {
			transformer = jsxslog.NewLoggingTransformer(transformer, logger)
		}
		deps.Transformer = transformer

		outDir := cli.Out
		deps.Units = func(base string) jsxcorpus.UnitStore {
			var units jsxcorpus.UnitStore = fs.NewUnitStore(outDir, base)
			if logger != nil {
				units = jsxslog.NewLoggingUnitStore(units, logger)
			}
			return units
		}
	}

	if cmd == "run" || cmd == "crawl" {
		var fetcher jsxcorpus.Fetcher = jsxhttp.NewFetcher(jsxhttp.WithTimeout(cli.Timeout))
		if logger != nil {
			fetcher = jsxslog.NewLoggingFetcher(fetcher, logger)
		}
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Parser:      goquery.NewPageParser(),
			Records:     deps.Records,
			RateLimiter: crawl.NewDomainLimiter(cli.Rate),
		}
	}

	return kongCtx.Run(deps)
}

// openRecords opens the record store selected by --store.
func (m *Main) openRecords(cli *CLI) (jsxcorpus.RecordStore, error) {
	switch cli.Store {
	case "sqlite":
		if cli.DB != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
				return nil, err
			}
		}
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		return sqlite.NewRecordStore(m.DB, sqlite.DefaultDataset), nil
	default:
		return fs.NewRecordStore(cli.Records), nil
	}
}

// normalizeArgs maps the legacy single-argument forms onto
// commands: "jsonl-<dir>" builds a dataset from <dir>, and any other bare
// value runs the default pipeline.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	first := args[0]
	if dir, ok := strings.CutPrefix(first, legacyDatasetPrefix); ok {
		return append([]string{"dataset", dir}, args[1:]...)
	}
	if strings.HasPrefix(first, "-") || first == "help" || commands[first] {
		return args
	}
	return append([]string{"run"}, args[1:]...)
}

var commands = map[string]bool{
	"run":      true,
	"crawl":    true,
	"export":   true,
	"dataset":  true,
	"estimate": true,
}
