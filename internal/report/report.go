// Package report renders an analysis result as Markdown, plain text, JSON or
// a Word document.
package report

import (
	"fmt"
	"io"

	"github.com/chriscorrea/papertrend/internal/analysis"
	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/search"
)

// Format defines the output format for results
type Format int

const (
	Markdown Format = iota
	Text
	JSON
)

func (f Format) String() string {
	switch f {
	case Markdown:
		return "Markdown"
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// ranking sizes
const (
	DefaultTop = 20
	AITop      = 10
	CloudTop   = 30
)

// Options carry everything besides the analysis result that a report shows.
type Options struct {
	Top           int          // size of the keyword ranking; <= 0 means DefaultTop
	Tokens        []int        // per-paper token counts aligned with Result.Papers, nil when unavailable
	TokenEncoding string       // name of the token counter
	Query         string       // search query, empty when no search ran
	Hits          []search.Hit // ranked search results
}

func (o Options) top() int {
	if o.Top <= 0 {
		return DefaultTop
	}
	return o.Top
}

// Render writes res to w in the given format.
func Render(w io.Writer, format Format, res *analysis.Result, opts Options) error {
	switch format {
	case Markdown:
		return renderMarkdown(w, res, opts)
	case Text:
		return renderText(w, res, opts)
	case JSON:
		return renderJSON(w, res, opts)
	default:
		return fmt.Errorf("unsupported output format %v", format)
	}
}

// share returns e's percentage of the table total.
func share(e freq.Entry, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(e.Count) / float64(total) * 100
}

// unmatchedFields returns the configured field labels with no score, in
// table order.
func unmatchedFields(res *analysis.Result) []string {
	var out []string
	for _, label := range res.FieldLabels {
		if _, ok := res.Fields.Count(label); !ok {
			out = append(out, label)
		}
	}
	return out
}

func totalTokens(tokens []int) int {
	n := 0
	for _, t := range tokens {
		n += t
	}
	return n
}

// tokenCell returns the token count for paper i, or "-" when unknown.
func tokenCell(tokens []int, i int) string {
	if i >= len(tokens) {
		return "-"
	}
	return fmt.Sprint(tokens[i])
}
