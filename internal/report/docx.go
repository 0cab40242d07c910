package report

import (
	"fmt"

	"github.com/gingfrederik/docx"

	"github.com/chriscorrea/papertrend/internal/analysis"
	"github.com/chriscorrea/papertrend/internal/freq"
)

const (
	grey = "808080"
	rule = "--------------------------------------------------"
)

// WriteDOCX saves a Word report of res at path.
func WriteDOCX(path string, res *analysis.Result, opts Options) error {
	f := docx.NewFile()

	run := f.AddParagraph().AddText("Proceedings Keyword Analysis")
	run.Size(20)

	run = f.AddParagraph().AddText(fmt.Sprintf("Run %s | %s", res.RunID, res.StartedAt.Format("2006-01-02 15:04 MST")))
	run.Size(10)
	run.Color(grey)

	f.AddParagraph().AddText(fmt.Sprintf("%d papers from %d sources, %d unique keywords, average length %d characters.",
		res.Stats.Papers, len(res.Sources), res.Stats.UniqueKeywords, res.Stats.AverageLength))
	f.AddParagraph()

	docxHeading(f, "Insights")
	for _, in := range res.Insights {
		f.AddParagraph().AddText(fmt.Sprintf("%s: %s", in.Title, in.Content))
	}

	if opts.Query != "" {
		docxHeading(f, "Search: "+opts.Query)
		for i, h := range opts.Hits {
			f.AddParagraph().AddText(fmt.Sprintf("%d. %s %s (%.3f)", i+1, h.Paper.ID, h.Paper.Title, h.Score))
		}
		if len(opts.Hits) == 0 {
			f.AddParagraph().AddText("No matching papers.")
		}
	}

	docxRanking(f, "Top keywords", res.Keywords.Top(opts.top()))
	docxRanking(f, "AI keywords", res.AIKeywords.Top(AITop))

	docxHeading(f, "Research fields")
	total := res.Fields.Total()
	for _, e := range res.Fields.Top(0) {
		f.AddParagraph().AddText(fmt.Sprintf("%s: %d (%.1f%%)", e.Term, e.Count, share(e, total)))
	}

	docxHeading(f, "Papers")
	for i, p := range res.Papers {
		run = f.AddParagraph().AddText(fmt.Sprintf("%s  %s", p.ID, p.Title))
		run.Size(12)

		meta := fmt.Sprintf("Source: %s | %d characters", p.Source, p.Length)
		if i < len(opts.Tokens) {
			meta += fmt.Sprintf(" | %d tokens", opts.Tokens[i])
		}
		run = f.AddParagraph().AddText(meta)
		run.Size(9)
		run.Color(grey)
	}

	f.AddParagraph().AddText(rule)
	return f.Save(path)
}

func docxHeading(f *docx.File, title string) {
	f.AddParagraph()
	run := f.AddParagraph().AddText(title)
	run.Size(16)
}

func docxRanking(f *docx.File, title string, entries []freq.Entry) {
	docxHeading(f, title)
	if len(entries) == 0 {
		f.AddParagraph().AddText("None.")
		return
	}
	for i, e := range entries {
		f.AddParagraph().AddText(fmt.Sprintf("%d. %s (%d)", i+1, e.Term, e.Count))
	}
}
