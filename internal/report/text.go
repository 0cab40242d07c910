package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/chriscorrea/papertrend/internal/analysis"
	"github.com/chriscorrea/papertrend/internal/freq"
)

// titleWidth is the display width of the title column; Japanese characters
// occupy two cells each.
const titleWidth = 48

func renderText(w io.Writer, res *analysis.Result, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Run %s\n", res.RunID)
	fmt.Fprintf(bw, "Sources: %d  Papers: %s  Unique keywords: %s  Average length: %s\n",
		len(res.Sources),
		humanize.Comma(int64(res.Stats.Papers)),
		humanize.Comma(int64(res.Stats.UniqueKeywords)),
		humanize.Comma(int64(res.Stats.AverageLength)))
	if opts.Tokens != nil {
		fmt.Fprintf(bw, "Total %s: %s\n", opts.TokenEncoding, humanize.Comma(int64(totalTokens(opts.Tokens))))
	}

	textHeading(bw, "INSIGHTS")
	for _, in := range res.Insights {
		fmt.Fprintf(bw, "%s: %s\n", in.Title, in.Content)
	}

	if opts.Query != "" {
		textHeading(bw, "SEARCH: "+opts.Query)
		if len(opts.Hits) == 0 {
			fmt.Fprintln(bw, "no matching papers")
		}
		for i, h := range opts.Hits {
			fmt.Fprintf(bw, "%3d. %-10s %s %8.3f\n", i+1, h.Paper.ID, cell(h.Paper.Title, titleWidth), h.Score)
		}
	}

	textRanking(bw, "TOP KEYWORDS", res.Keywords.Top(opts.top()))
	textRanking(bw, "AI KEYWORDS", res.AIKeywords.Top(AITop))

	textHeading(bw, "RESEARCH FIELDS")
	total := res.Fields.Total()
	for _, e := range res.Fields.Top(0) {
		fmt.Fprintf(bw, "%s %8s %6.1f%%\n", cell(e.Term, 26), humanize.Comma(int64(e.Count)), share(e, total))
	}
	if total == 0 {
		fmt.Fprintln(bw, "none")
	} else {
		for _, label := range unmatchedFields(res) {
			fmt.Fprintf(bw, "%s %8s %7s\n", cell(label, 26), "-", "-")
		}
	}

	textHeading(bw, "PAPERS")
	for i, p := range res.Papers {
		fmt.Fprintf(bw, "%-10s %s %8s %8s  %s\n",
			p.ID, cell(p.Title, titleWidth), humanize.Comma(int64(p.Length)), tokenCell(opts.Tokens, i), p.Source)
	}
	if len(res.Papers) == 0 {
		fmt.Fprintln(bw, "none")
	}

	textHeading(bw, "SOURCES")
	for _, s := range res.Sources {
		status := fmt.Sprintf("%d papers via %s", s.Papers, s.Strategy)
		if s.Err != "" {
			status = "failed: " + s.Err
		} else if s.Strategy == "" {
			status = "no papers found"
		}
		fmt.Fprintf(bw, "%s  %s\n", s.Name, status)
	}

	return bw.Flush()
}

func textHeading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", runewidth.StringWidth(title)))
}

func textRanking(w io.Writer, title string, entries []freq.Entry) {
	textHeading(w, title)
	if len(entries) == 0 {
		fmt.Fprintln(w, "none")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%3d. %s %8s\n", i+1, cell(e.Term, 24), humanize.Comma(int64(e.Count)))
	}
}

// cell truncates or pads s to exactly width display cells.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
