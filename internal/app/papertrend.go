// Package app contains the core application logic for the papertrend CLI tool.
// It wires sources, analysis, search, persistence and rendering together and
// keeps CLI concerns out of the analysis packages.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chriscorrea/papertrend/internal/analysis"
	"github.com/chriscorrea/papertrend/internal/counter"
	"github.com/chriscorrea/papertrend/internal/extract"
	"github.com/chriscorrea/papertrend/internal/progress"
	"github.com/chriscorrea/papertrend/internal/report"
	"github.com/chriscorrea/papertrend/internal/search"
	"github.com/chriscorrea/papertrend/internal/segment"
	"github.com/chriscorrea/papertrend/internal/store"
	"github.com/chriscorrea/papertrend/internal/vocab"
)

// Config holds all configuration options for the papertrend application.
type Config struct {
	Sources      []string      // URLs, file paths, or "-" for stdin
	OutputFormat report.Format // output format (md/txt/json)
	DocxPath     string        // also write a Word report here when set
	Top          int           // keyword ranking size
	StartRatio   float64       // fraction of PDF pages skipped
	IncludeAll   bool          // keep whole HTML pages instead of the readability article
	VocabPath    string        // vocabulary override; empty uses the built-in tables
	SearchQuery  string
	DBPath       string // persist the run here when set
	SkipTokens   bool   // do not load the token encoding
	Quiet        bool   // suppress warnings and progress
	Debug        bool
}

// Run executes the analysis with the given configuration and returns the
// rendered report.
//
// Processing Pipeline:
// 1. Load the vocabulary (fatal on invalid tables)
// 2. Analyze all sources (analysis.Analyzer.Run)
// 3. Optional extras: token counts, search, persistence, DOCX
// 4. Render the report
//
// ctx allows for cancellation between documents and during fetches.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	v, err := loadVocabulary(cfg.VocabPath)
	if err != nil {
		return "", err
	}

	res, err := analyze(ctx, v, cfg)
	if err != nil {
		return "", err
	}

	// unreadable sources are skipped; if none could be read the report is empty
	for _, failed := range res.Failed() {
		if !cfg.Quiet {
			fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %s\n", failed.Name, failed.Err)
		}
	}

	opts := report.Options{Top: cfg.Top}
	if !cfg.SkipTokens {
		opts.Tokens, opts.TokenEncoding = countTokens(res.Papers)
	}

	if query := strings.TrimSpace(cfg.SearchQuery); query != "" {
		hits, err := search.Rank(ctx, res.Papers, query, cfg.Top)
		if err != nil {
			return "", fmt.Errorf("search failed: %w", err)
		}
		opts.Query, opts.Hits = query, hits
	}

	if cfg.DBPath != "" {
		if err := persist(ctx, cfg.DBPath, res); err != nil {
			return "", err
		}
	}

	if cfg.DocxPath != "" {
		if err := report.WriteDOCX(cfg.DocxPath, res, opts); err != nil {
			return "", fmt.Errorf("failed to write DOCX report: %w", err)
		}
	}

	var out strings.Builder
	if err := report.Render(&out, cfg.OutputFormat, res, opts); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out.String(), nil
}

func loadVocabulary(path string) (*vocab.Vocabulary, error) {
	if path == "" {
		return vocab.Default()
	}
	return vocab.Load(path)
}

// analyze runs the pipeline, showing progress on stderr unless quiet
func analyze(ctx context.Context, v *vocab.Vocabulary, cfg Config) (*analysis.Result, error) {
	opts := extract.Options{StartRatio: cfg.StartRatio, IncludeAll: cfg.IncludeAll}
	sources := make([]analysis.Source, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = extract.Document{Source: s, Options: opts}
	}

	var onProgress analysis.ProgressFunc
	if !cfg.Quiet && !cfg.Debug {
		ind := progress.New(ctx, os.Stderr)
		ind.Start()
		defer ind.Stop()
		onProgress = ind.Update
	} else if cfg.Debug {
		onProgress = func(percent int, label string) {
			slog.Debug("progress", "percent", percent, "label", label)
		}
	}

	res, err := analysis.New(v).Run(ctx, sources, onProgress)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return res, nil
}

// countTokens returns per-paper token counts. Token counts are optional, so a
// missing encoding only disables them.
func countTokens(papers []segment.Paper) ([]int, string) {
	c, err := counter.NewCounter(counter.Tokens)
	if err != nil {
		slog.Warn("paper counts unavailable", "method", counter.Tokens, "error", err)
		return nil, ""
	}
	texts := make([]string, len(papers))
	for i, p := range papers {
		texts[i] = p.Content
	}
	return counter.Each(c, texts), c.Name()
}

func persist(ctx context.Context, path string, res *analysis.Result) error {
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open run database: %w", err)
	}
	defer st.Close()

	if err := st.Save(ctx, res); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	slog.Debug("run saved", "run", res.RunID, "db", path)
	return nil
}
