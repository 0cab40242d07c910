// Package insight derives short summary statements and corpus statistics from
// the analysis tables.
package insight

import (
	"fmt"
	"math"

	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/segment"
)

// Insight is one titled summary statement.
type Insight struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Stats are the headline numbers of a run.
type Stats struct {
	Papers         int `json:"papers"`
	UniqueKeywords int `json:"unique_keywords"`
	AverageLength  int `json:"average_length"`
}

// Summarize computes run statistics. AverageLength is rounded and is zero when
// there are no papers.
func Summarize(papers []segment.Paper, keywords *freq.Table) Stats {
	return Stats{
		Papers:         len(papers),
		UniqueKeywords: keywords.Len(),
		AverageLength:  averageLength(papers),
	}
}

// Generate returns the insights in fixed order: top keyword, top AI keyword,
// leading field and its share, then average length. Insights backed by an
// empty table are omitted; the length insight is always present.
func Generate(keywords, ai, fields *freq.Table, papers []segment.Paper) []Insight {
	var out []Insight

	if top := keywords.Top(1); len(top) > 0 {
		out = append(out, Insight{
			Title:   "Main trend",
			Content: fmt.Sprintf("The most frequent keyword is %q, appearing %d times.", top[0].Term, top[0].Count),
		})
	}

	if top := ai.Top(1); len(top) > 0 {
		out = append(out, Insight{
			Title:   "AI technology",
			Content: fmt.Sprintf("Among AI-related terms, %q draws the most attention with %d mentions.", top[0].Term, top[0].Count),
		})
	}

	if top := fields.Top(1); len(top) > 0 {
		share := float64(top[0].Count) / float64(fields.Total()) * 100
		out = append(out, Insight{
			Title:   "Research fields",
			Content: fmt.Sprintf("%s is the most active field, accounting for %.1f%% of all field matches.", top[0].Term, share),
		})
	}

	out = append(out, Insight{
		Title:   "Paper profile",
		Content: fmt.Sprintf("The average paper is %d characters long across %d papers analyzed.", averageLength(papers), len(papers)),
	})
	return out
}

func averageLength(papers []segment.Paper) int {
	if len(papers) == 0 {
		return 0
	}
	total := 0
	for _, p := range papers {
		total += p.Length
	}
	return int(math.Round(float64(total) / float64(len(papers))))
}
