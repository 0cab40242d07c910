package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/report"
	"github.com/chriscorrea/papertrend/internal/store"
)

// HistoryConfig selects what to read from a run database.
type HistoryConfig struct {
	DBPath       string
	RunID        string // show one run's rankings instead of the run list
	Limit        int
	Top          int
	OutputFormat report.Format
}

type runDetail struct {
	RunID      string       `json:"run_id"`
	Keywords   []freq.Entry `json:"keywords"`
	AIKeywords []freq.Entry `json:"ai_keywords"`
	Fields     []freq.Entry `json:"fields"`
}

// History lists stored runs, or the stored rankings of one run.
func History(ctx context.Context, cfg HistoryConfig) (string, error) {
	if cfg.DBPath == "" {
		return "", fmt.Errorf("no run database given")
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return "", fmt.Errorf("failed to open run database: %w", err)
	}
	defer st.Close()

	if cfg.RunID != "" {
		return runHistory(ctx, st, cfg)
	}

	runs, err := st.Runs(ctx, cfg.Limit)
	if err != nil {
		return "", err
	}
	if cfg.OutputFormat == report.JSON {
		return encodeJSON(runs)
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tSOURCES\tFAILED\tPAPERS\tKEYWORDS\tAVG LENGTH")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			r.RunID, humanize.Time(r.StartedAt), r.Sources, r.FailedSources,
			humanize.Comma(int64(r.Papers)), humanize.Comma(int64(r.UniqueKeywords)), humanize.Comma(int64(r.AverageLength)))
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "no stored runs\n", nil
	}
	return sb.String(), nil
}

func runHistory(ctx context.Context, st *store.Store, cfg HistoryConfig) (string, error) {
	top := cfg.Top
	if top <= 0 {
		top = report.DefaultTop
	}

	var d runDetail
	var err error
	d.RunID = cfg.RunID
	if d.Keywords, err = st.Keywords(ctx, cfg.RunID, store.KindGeneral, top); err != nil {
		return "", err
	}
	if d.AIKeywords, err = st.Keywords(ctx, cfg.RunID, store.KindAI, report.AITop); err != nil {
		return "", err
	}
	if d.Fields, err = st.Fields(ctx, cfg.RunID); err != nil {
		return "", err
	}
	if len(d.Keywords) == 0 && len(d.Fields) == 0 {
		return "", fmt.Errorf("run %q not found or empty", cfg.RunID)
	}

	if cfg.OutputFormat == report.JSON {
		return encodeJSON(d)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s\n", d.RunID)
	for _, section := range []struct {
		title   string
		entries []freq.Entry
	}{
		{"Top keywords", d.Keywords},
		{"AI keywords", d.AIKeywords},
		{"Research fields", d.Fields},
	} {
		fmt.Fprintf(&sb, "\n%s\n", section.title)
		if len(section.entries) == 0 {
			sb.WriteString("  none\n")
		}
		for i, e := range section.entries {
			fmt.Fprintf(&sb, "%3d. %s (%d)\n", i+1, e.Term, e.Count)
		}
	}
	return sb.String(), nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}
