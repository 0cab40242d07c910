package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chriscorrea/papertrend/internal/analysis"
	"github.com/chriscorrea/papertrend/internal/freq"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func renderMarkdown(w io.Writer, res *analysis.Result, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Proceedings keyword analysis")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Run `%s`: %d sources, %d papers, %d unique keywords, average length %d characters",
		res.RunID, len(res.Sources), res.Stats.Papers, res.Stats.UniqueKeywords, res.Stats.AverageLength)
	if opts.Tokens != nil {
		fmt.Fprintf(bw, ", %d %s", totalTokens(opts.Tokens), opts.TokenEncoding)
	}
	fmt.Fprintln(bw, ".")

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "## Insights")
	fmt.Fprintln(bw)
	for _, in := range res.Insights {
		fmt.Fprintf(bw, "- **%s**: %s\n", in.Title, in.Content)
	}

	if opts.Query != "" {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "## Search: %s\n\n", opts.Query)
		if len(opts.Hits) == 0 {
			fmt.Fprintln(bw, "No matching papers.")
		} else {
			fmt.Fprintln(bw, "| # | Paper | Title | Score |")
			fmt.Fprintln(bw, "|---|---|---|---|")
			for i, h := range opts.Hits {
				fmt.Fprintf(bw, "| %d | %s | %s | %.3f |\n", i+1, h.Paper.ID, cellEscaper.Replace(h.Paper.Title), h.Score)
			}
		}
	}

	markdownRanking(bw, "Top keywords", res.Keywords.Top(opts.top()))
	markdownRanking(bw, "AI keywords", res.AIKeywords.Top(AITop))

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "## Research fields")
	fmt.Fprintln(bw)
	if res.Fields.Len() == 0 {
		fmt.Fprintln(bw, "No field matches.")
	} else {
		total := res.Fields.Total()
		fmt.Fprintln(bw, "| Field | Score | Share |")
		fmt.Fprintln(bw, "|---|---|---|")
		for _, e := range res.Fields.Top(0) {
			fmt.Fprintf(bw, "| %s | %d | %.1f%% |\n", e.Term, e.Count, share(e, total))
		}
		for _, label := range unmatchedFields(res) {
			fmt.Fprintf(bw, "| %s | - | - |\n", cellEscaper.Replace(label))
		}
	}

	if cloud := res.Keywords.Top(CloudTop); len(cloud) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Keyword cloud")
		fmt.Fprintln(bw)
		terms := make([]string, len(cloud))
		for i, e := range cloud {
			terms[i] = fmt.Sprintf("%s (%d)", e.Term, e.Count)
		}
		fmt.Fprintln(bw, strings.Join(terms, ", "))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "## Papers")
	fmt.Fprintln(bw)
	if len(res.Papers) == 0 {
		fmt.Fprintln(bw, "No papers found.")
	} else {
		fmt.Fprintln(bw, "| ID | Title | Source | Characters | Tokens |")
		fmt.Fprintln(bw, "|---|---|---|---|---|")
		for i, p := range res.Papers {
			fmt.Fprintf(bw, "| %s | %s | %s | %d | %s |\n",
				p.ID, cellEscaper.Replace(p.Title), cellEscaper.Replace(p.Source), p.Length, tokenCell(opts.Tokens, i))
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "## Sources")
	fmt.Fprintln(bw)
	for _, s := range res.Sources {
		switch {
		case s.Err != "":
			fmt.Fprintf(bw, "- %s: failed (%s)\n", s.Name, s.Err)
		case s.Strategy == "":
			fmt.Fprintf(bw, "- %s: no papers found\n", s.Name)
		default:
			fmt.Fprintf(bw, "- %s: %d papers via %s\n", s.Name, s.Papers, s.Strategy)
		}
	}

	return bw.Flush()
}

func markdownRanking(w io.Writer, heading string, entries []freq.Entry) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "## %s\n\n", heading)
	if len(entries) == 0 {
		fmt.Fprintln(w, "None.")
		return
	}
	fmt.Fprintln(w, "| # | Keyword | Count |")
	fmt.Fprintln(w, "|---|---|---|")
	for i, e := range entries {
		fmt.Fprintf(w, "| %d | %s | %d |\n", i+1, cellEscaper.Replace(e.Term), e.Count)
	}
}
