package report

import (
	"encoding/json"
	"io"

	"github.com/chriscorrea/papertrend/internal/analysis"
	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/search"
)

// jsonReport is the JSON document layout. Rankings are truncated the same way
// as in the other formats; the full tables are kept under keywords and fields.
type jsonReport struct {
	*analysis.Result
	TopKeywords   []freq.Entry `json:"top_keywords"`
	TopAIKeywords []freq.Entry `json:"top_ai_keywords"`
	Tokens        []int        `json:"tokens,omitempty"`
	TokenEncoding string       `json:"token_encoding,omitempty"`
	Query         string       `json:"query,omitempty"`
	Hits          []search.Hit `json:"hits,omitempty"`
}

func renderJSON(w io.Writer, res *analysis.Result, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonReport{
		Result:        res,
		TopKeywords:   res.Keywords.Top(opts.top()),
		TopAIKeywords: res.AIKeywords.Top(AITop),
		Tokens:        opts.Tokens,
		TokenEncoding: opts.TokenEncoding,
		Query:         opts.Query,
		Hits:          opts.Hits,
	})
}
