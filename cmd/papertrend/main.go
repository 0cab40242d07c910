package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/papertrend/internal/app"
	"github.com/chriscorrea/papertrend/internal/extract"
	"github.com/chriscorrea/papertrend/internal/report"

	"github.com/spf13/cobra"
)

// outputFormat maps the mutually exclusive format flags to a report format
func outputFormat(cmd *cobra.Command) report.Format {
	textFlag, _ := cmd.Flags().GetBool("text")
	jsonFlag, _ := cmd.Flags().GetBool("json")

	switch {
	case textFlag:
		return report.Text
	case jsonFlag:
		return report.JSON
	default:
		return report.Markdown // default if no format flag
	}
}

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	top, _ := cmd.Flags().GetInt("top")
	startRatio, _ := cmd.Flags().GetFloat64("start-ratio")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	vocabPath, _ := cmd.Flags().GetString("vocab")
	search, _ := cmd.Flags().GetString("search")
	dbPath, _ := cmd.Flags().GetString("db")
	docxPath, _ := cmd.Flags().GetString("docx")
	noTokens, _ := cmd.Flags().GetBool("no-tokens")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	if top < 1 {
		return app.Config{}, fmt.Errorf("--top must be at least 1, got %d", top)
	}
	if startRatio < 0 || startRatio >= 1 {
		return app.Config{}, fmt.Errorf("--start-ratio must be in [0, 1), got %g", startRatio)
	}

	// no arguments provided - use stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	return app.Config{
		Sources:      sources,
		OutputFormat: outputFormat(cmd),
		DocxPath:     docxPath,
		Top:          top,
		StartRatio:   startRatio,
		IncludeAll:   includeAll,
		VocabPath:    vocabPath,
		SearchQuery:  search,
		DBPath:       dbPath,
		SkipTokens:   noTokens,
		Quiet:        quiet,
		Debug:        debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "papertrend [sources...]",
	Short: "Keyword and research-trend analysis for conference proceedings",
	Long: `Papertrend splits conference proceedings into individual papers and reports
keyword frequencies, AI-related terms, research-field distribution and
summary insights. Sources may be PDF, HTML or text files, URLs, or standard input.

Examples:
  papertrend proceedings.pdf
  papertrend --json --top 30 vol1.pdf vol2.pdf
  papertrend --search "強化学習" --db runs.db https://example.org/proceedings.pdf
  cat abstracts.txt | papertrend --text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("papertrend failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored runs, or show the rankings of one run",
	Example: `  papertrend history --db runs.db
  papertrend history --db runs.db --run 3f1c2a9e-...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		runID, _ := cmd.Flags().GetString("run")
		limit, _ := cmd.Flags().GetInt("limit")
		top, _ := cmd.Flags().GetInt("top")
		debug, _ := cmd.Flags().GetBool("debug")

		setupLogger(debug)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		out, err := app.History(ctx, app.HistoryConfig{
			DBPath:       dbPath,
			RunID:        runID,
			Limit:        limit,
			Top:          top,
			OutputFormat: outputFormat(cmd),
		})
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// addRootFlags registers the analysis flags on cmd
func addRootFlags(cmd *cobra.Command) {
	// output format flags are shared with the history subcommand
	cmd.PersistentFlags().Bool("md", false, "Output in Markdown format (default)")
	cmd.PersistentFlags().Bool("text", false, "Output in plain text format")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.MarkFlagsMutuallyExclusive("md", "text", "json")
	cmd.PersistentFlags().Int("top", report.DefaultTop, "Number of keywords to rank")
	cmd.PersistentFlags().String("db", "", "SQLite database for run history")
	cmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = cmd.PersistentFlags().MarkHidden("debug")

	cmd.Flags().String("docx", "", "Also write the report as a Word document")
	cmd.Flags().Float64("start-ratio", extract.DefaultStartRatio, "Fraction of leading PDF pages to skip")
	cmd.Flags().BoolP("include-all", "i", false, "Include all HTML content without readability filtering")
	cmd.Flags().String("vocab", "", "YAML vocabulary replacing the built-in stopwords, AI terms and fields")
	cmd.Flags().String("search", "", "Rank papers against a query")
	cmd.Flags().Bool("no-tokens", false, "Skip per-paper token counts")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress warnings and progress")
}

func init() {
	addRootFlags(rootCmd)

	historyCmd.Flags().String("run", "", "Show the stored rankings of this run")
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
