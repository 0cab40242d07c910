// Package classify scores papers against topical research fields.
//
// Each field carries a short list of representative keywords. A paper's score
// for a field is the number of case-insensitive, non-overlapping keyword
// occurrences in its cleaned body; positive scores are summed across the
// corpus. Fields that never score are absent from the result.
package classify

import (
	"strings"

	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/segment"
	"github.com/chriscorrea/papertrend/internal/vocab"
)

// field holds a label and its lower-cased keywords
type field struct {
	label    string
	keywords []string
}

// Classifier assigns field scores to papers
type Classifier struct {
	fields []field
}

// NewClassifier creates a Classifier for the given field table. Field order is
// kept, so fields with equal totals rank in table order.
func NewClassifier(fields []vocab.Field) *Classifier {
	c := &Classifier{fields: make([]field, 0, len(fields))}
	for _, f := range fields {
		kws := make([]string, 0, len(f.Keywords))
		for _, kw := range f.Keywords {
			if kw = strings.ToLower(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		c.fields = append(c.fields, field{label: f.Label, keywords: kws})
	}
	return c
}

// Classify accumulates field scores over all papers.
//
// Parameters:
//   - papers: segmented papers whose Content is scored
//
// Returns a table keyed by field label. A field is present only when at least
// one paper scored it, so the table never holds a zero entry.
func (c *Classifier) Classify(papers []segment.Paper) *freq.Table {
	totals := freq.New()
	for _, p := range papers {
		scores := c.Score(p.Content)
		for i, f := range c.fields {
			totals.Add(f.label, scores[i])
		}
	}
	return totals
}

// Score returns per-field match counts for one body of text, in field order.
// The content is lower-cased once.
func (c *Classifier) Score(content string) []int {
	lower := strings.ToLower(content)
	scores := make([]int, len(c.fields))
	for i, f := range c.fields {
		for _, kw := range f.keywords {
			scores[i] += strings.Count(lower, kw)
		}
	}
	return scores
}

// Labels returns the field labels in table order.
func (c *Classifier) Labels() []string {
	labels := make([]string, len(c.fields))
	for i, f := range c.fields {
		labels[i] = f.label
	}
	return labels
}
