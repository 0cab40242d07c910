// Package analysis runs the full pipeline over a batch of source documents:
// segmentation into papers, keyword counting, field classification and
// insight generation.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chriscorrea/papertrend/internal/classify"
	"github.com/chriscorrea/papertrend/internal/clean"
	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/insight"
	"github.com/chriscorrea/papertrend/internal/keyword"
	"github.com/chriscorrea/papertrend/internal/segment"
	"github.com/chriscorrea/papertrend/internal/title"
	"github.com/chriscorrea/papertrend/internal/vocab"
)

// Source is one input document.
type Source interface {
	Name() string
	Text(ctx context.Context) (string, error)
}

// ProgressFunc receives a percentage in [0,100] and a short label.
type ProgressFunc func(percent int, label string)

// progress milestones
const (
	extractionDone = 50
	keywordStart   = 60
	keywordDone    = 75
	classifyStart  = 85
	classifyDone   = 95
	complete       = 100
)

// SourceReport describes how one source fared.
type SourceReport struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy,omitempty"`
	Papers   int    `json:"papers"`
	Err      string `json:"error,omitempty"`
}

// Result is everything a run produces.
type Result struct {
	RunID       string            `json:"run_id"`
	StartedAt   time.Time         `json:"started_at"`
	Sources     []SourceReport    `json:"sources"`
	Papers      []segment.Paper   `json:"papers"`
	Keywords    *freq.Table       `json:"keywords"`
	AIKeywords  *freq.Table       `json:"ai_keywords"`
	Fields      *freq.Table       `json:"fields"`
	FieldLabels []string          `json:"field_labels"` // every configured field, in table order
	Insights    []insight.Insight `json:"insights"`
	Stats       insight.Stats     `json:"stats"`
}

// Failed returns the sources that could not be processed.
func (r *Result) Failed() []SourceReport {
	var failed []SourceReport
	for _, s := range r.Sources {
		if s.Err != "" {
			failed = append(failed, s)
		}
	}
	return failed
}

// Analyzer holds the immutable configuration shared by runs. Runs never share
// mutable state, so one Analyzer may serve concurrent runs.
type Analyzer struct {
	cleaner    *clean.Cleaner
	titles     *title.Extractor
	keywords   *keyword.Analyzer
	classifier *classify.Classifier
}

// New builds an Analyzer from a validated vocabulary.
func New(v *vocab.Vocabulary) *Analyzer {
	return &Analyzer{
		cleaner:    clean.New(),
		titles:     title.New(),
		keywords:   keyword.New(v),
		classifier: classify.NewClassifier(v.Fields),
	}
}

// Run processes sources in order. A source that fails to load is logged,
// recorded in Result.Sources and skipped. The only error returned is the
// context's, checked between documents. progress may be nil.
func (a *Analyzer) Run(ctx context.Context, sources []Source, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(int, string) {}
	}

	res := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Sources:   make([]SourceReport, 0, len(sources)),
		Papers:    []segment.Paper{},
	}
	seg := segment.New(a.cleaner, a.titles)

	progress(0, "starting extraction")
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis cancelled after %d of %d sources: %w", i, len(sources), err)
		}

		report := SourceReport{Name: src.Name()}
		text, err := src.Text(ctx)
		if err != nil {
			slog.Warn("failed to process source", "source", src.Name(), "error", err)
			report.Err = err.Error()
		} else {
			out := seg.Segment(src.Name(), text)
			report.Strategy = out.Strategy
			report.Papers = len(out.Papers)
			res.Papers = append(res.Papers, out.Papers...)
		}
		res.Sources = append(res.Sources, report)

		progress((i+1)*extractionDone/len(sources), fmt.Sprintf("processing %d/%d", i+1, len(sources)))
	}
	progress(extractionDone, "extraction done")

	progress(keywordStart, "analyzing keywords")
	res.Keywords, res.AIKeywords = a.keywords.Analyze(res.Papers)
	progress(keywordDone, "keyword analysis done")

	progress(classifyStart, "classifying fields")
	res.Fields = a.classifier.Classify(res.Papers)
	res.FieldLabels = a.classifier.Labels()
	progress(classifyDone, "classification done")

	res.Insights = insight.Generate(res.Keywords, res.AIKeywords, res.Fields, res.Papers)
	res.Stats = insight.Summarize(res.Papers, res.Keywords)
	progress(complete, "complete")

	slog.Debug("analysis completed",
		"run", res.RunID,
		"sources", len(sources),
		"papers", len(res.Papers),
		"keywords", res.Keywords.Len(),
		"ai_keywords", res.AIKeywords.Len(),
		"fields", res.Fields.Len())
	return res, nil
}
