// Package segment splits the raw text of a proceedings volume into individual
// papers.
//
// Several splitting strategies compete over the same text, in fixed priority:
//  1. page-marker: boundaries at every "- 1 -" first-page footer
//  2. paper-id: boundaries at every session identifier (1A1-GS-10-01)
//  3. abstract: boundaries at every "Abstract:" / "要約：" / "概要：" label
//  4. fixed-length: 3000 character windows, no markers needed
//
// Each strategy produces candidate papers. The strategy with the most
// candidates wins; on a tie the earlier strategy is kept, and a strategy with
// no candidates is never selected. If nothing produces a candidate the result
// is simply empty.
//
// Usage Example:
//
//	seg := segment.New(clean.New(), title.New())
//	result := seg.Segment("volume.pdf", text)
//	for _, p := range result.Papers { ... }
package segment

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/chriscorrea/papertrend/internal/clean"
	"github.com/chriscorrea/papertrend/internal/counter"
	"github.com/chriscorrea/papertrend/internal/marker"
	"github.com/chriscorrea/papertrend/internal/title"
)

// ErrNoMarkers is reported by a marker strategy that found nothing to split on.
// It is a soft failure: the strategy is simply left out of the comparison.
var ErrNoMarkers = errors.New("no markers found")

const (
	markerMinRawLength   = 500
	markerMinCleanLength = 200

	fixedWindowLength   = 3000
	fixedMinRawLength   = 1000
	fixedMinCleanLength = 500
)

// Paper is one segmented proceedings entry.
type Paper struct {
	ID      string `json:"id"`
	Source  string `json:"source,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Length  int    `json:"length"` // rune count of Content
}

// Outcome records how one strategy fared on a text.
type Outcome struct {
	Strategy   string
	Candidates int
	Err        error
}

// Result is the selected segmentation of one text.
type Result struct {
	Strategy string // name of the winning strategy, "" when no papers were found
	Papers   []Paper
	Outcomes []Outcome
}

type candidate struct {
	title   string
	content string
}

// splitFunc turns a text into candidate papers.
type splitFunc func(text string) ([]candidate, error)

type strategy struct {
	name  string
	split splitFunc
}

// Segmenter runs the splitting strategies and numbers the papers it emits.
// Paper IDs are sequential over the lifetime of a Segmenter, so one Segmenter
// should be used per analysis run.
type Segmenter struct {
	cleaner    *clean.Cleaner
	titles     *title.Extractor
	length     counter.Counter // characters, for thresholds and Paper.Length
	strategies []strategy
	seq        int
}

// New creates a Segmenter with the standard strategy order.
func New(cleaner *clean.Cleaner, titles *title.Extractor) *Segmenter {
	s := &Segmenter{
		cleaner: cleaner,
		titles:  titles,
		length:  counter.NewCharCounter(),
	}
	s.strategies = []strategy{
		{name: "page-marker", split: s.byMarker(marker.PageOne)},
		{name: "paper-id", split: s.byMarker(marker.PaperID)},
		{name: "abstract", split: s.byMarker(marker.Abstract)},
		{name: "fixed-length", split: s.byFixedLength},
	}
	return s
}

// Segment evaluates every strategy over text and returns the papers of the
// best one. source is recorded on each paper.
func (s *Segmenter) Segment(source, text string) Result {
	outcomes := make([]Outcome, len(s.strategies))
	candidates := make([][]candidate, len(s.strategies))
	counts := make([]int, len(s.strategies))

	for i, st := range s.strategies {
		found, err := st.split(text)
		outcomes[i] = Outcome{Strategy: st.name, Candidates: len(found), Err: err}
		if err != nil {
			slog.Debug("Segmentation strategy not applicable", "strategy", st.name, "source", source, "error", err)
			continue
		}
		candidates[i] = found
		counts[i] = len(found)
		slog.Debug("Segmentation strategy evaluated", "strategy", st.name, "source", source, "candidates", len(found))
	}

	best := selectBest(counts)
	if best < 0 {
		slog.Debug("No strategy produced papers", "source", source)
		return Result{Papers: []Paper{}, Outcomes: outcomes}
	}

	papers := make([]Paper, len(candidates[best]))
	for i, c := range candidates[best] {
		s.seq++
		papers[i] = Paper{
			ID:      fmt.Sprintf("paper_%d", s.seq),
			Source:  source,
			Title:   c.title,
			Content: c.content,
			Length:  s.length.Count(c.content),
		}
	}

	slog.Debug("Segmentation completed", "source", source, "strategy", s.strategies[best].name, "papers", len(papers))
	return Result{
		Strategy: s.strategies[best].name,
		Papers:   papers,
		Outcomes: outcomes,
	}
}

// selectBest returns the index of the first strictly greatest positive count,
// or -1 when every count is zero.
func selectBest(counts []int) int {
	best, bestCount := -1, 0
	for i, n := range counts {
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	return best
}

// byMarker splits text at every match of re; each fragment runs to the next
// match or the end of the text.
func (s *Segmenter) byMarker(re *regexp.Regexp) splitFunc {
	return func(text string) ([]candidate, error) {
		starts := marker.Offsets(re, text)
		if len(starts) == 0 {
			return nil, ErrNoMarkers
		}

		var found []candidate
		for i, start := range starts {
			end := len(text)
			if i+1 < len(starts) {
				end = starts[i+1]
			}
			fragment := text[start:end]
			if s.length.Count(fragment) <= markerMinRawLength {
				continue
			}
			if c, ok := s.build(fragment, markerMinCleanLength); ok {
				found = append(found, c)
			}
		}
		return found, nil
	}
}

// byFixedLength chunks text into constant-size windows.
func (s *Segmenter) byFixedLength(text string) ([]candidate, error) {
	runes := []rune(text)

	var found []candidate
	for start := 0; start < len(runes); start += fixedWindowLength {
		end := min(start+fixedWindowLength, len(runes))
		window := string(runes[start:end])
		if s.length.Count(strings.TrimSpace(window)) <= fixedMinRawLength {
			continue
		}
		if c, ok := s.build(window, fixedMinCleanLength); ok {
			found = append(found, c)
		}
	}
	return found, nil
}

// build extracts title and cleaned body from a fragment, keeping it only when
// the body is longer than minClean runes.
func (s *Segmenter) build(fragment string, minClean int) (candidate, bool) {
	content := s.cleaner.Clean(fragment)
	if s.length.Count(content) <= minClean {
		return candidate{}, false
	}
	return candidate{
		title:   s.titles.Extract(fragment),
		content: content,
	}, true
}
