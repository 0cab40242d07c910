// Package clean strips proceedings boilerplate from a paper fragment and
// returns its body as a single normalized line of text.
//
// Cleaning runs in two stages:
//  1. pattern strike-through: an ordered list of regular expressions whose
//     matches are replaced by a single space (page markers, society and
//     session boilerplate, contact details, captions, affiliations)
//  2. line filtering: empty lines, layout noise lines and short lines that
//     are not section headers are dropped, survivors are joined by spaces
//
// Both stages run once while the text still has its lines. Rules that reach
// to the end of a line, and the line filters, never see the joined body, so a
// match cannot run from one source line into the next. Joining can still
// create a new match for a bounded inline rule (a page marker split over two
// lines, say), so the inline rules and whitespace collapsing are repeated on
// the joined body until it no longer changes.
//
// Cleaning already cleaned text returns it unchanged: a single long line is
// only put through the inline rules, and the output is a fixed point of those.
// A single line shorter than the minimum still gets both stages, which keep or
// drop it as a whole.
package clean

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// DefaultMinLineLength is the rune length below which a line is dropped
// unless it starts with an important section header.
const DefaultMinLineLength = 10

// Cleaner removes noise from raw paper text.
type Cleaner struct {
	patterns      *patternSet
	minLineLength int
}

// New returns a Cleaner using the built-in pattern tables.
func New() *Cleaner {
	return &Cleaner{
		patterns:      getPatterns(),
		minLineLength: DefaultMinLineLength,
	}
}

// Clean returns the cleaned body of raw as a single line.
func (c *Cleaner) Clean(raw string) string {
	text := raw
	if c.hasLines(raw) {
		text = c.FilterLines(c.Strike(raw))
	}

	passes := 0
	for {
		next := normalizeSpace(c.strikeInline(text))
		passes++
		if next == text {
			break
		}
		text = next
	}
	slog.Debug("Content cleaned", "rawLength", len(raw), "cleanLength", len(text), "passes", passes)
	return text
}

// hasLines reports whether text still needs the line stages: it has line
// breaks, or it is one line short enough for the short-line rule to apply.
func (c *Cleaner) hasLines(text string) bool {
	return strings.Contains(text, "\n") || utf8.RuneCountInString(strings.TrimSpace(text)) < c.minLineLength
}

// Strike applies every strike-through pattern in order, replacing each match
// with a single space.
func (c *Cleaner) Strike(text string) string {
	for _, p := range c.patterns.strike {
		text = p.ReplaceAllString(text, " ")
	}
	return text
}

func (c *Cleaner) strikeInline(text string) string {
	for _, p := range c.patterns.inline {
		text = p.ReplaceAllString(text, " ")
	}
	return text
}

// FilterLines drops empty, noise and unimportant short lines and joins the
// remaining trimmed lines with single spaces.
func (c *Cleaner) FilterLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		line = normalizeSpace(line)
		if line == "" {
			continue
		}
		if c.IsNoiseLine(line) {
			continue
		}
		if utf8.RuneCountInString(line) < c.minLineLength && !c.IsImportantShortLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, " ")
}

// IsNoiseLine reports whether a trimmed line is layout debris: bare numbers,
// single letters, symbol runs, page labels or room and session annotations.
func (c *Cleaner) IsNoiseLine(line string) bool {
	return matchesAny(c.patterns.noise, line)
}

// IsImportantShortLine reports whether a line opens a conclusion, result,
// method, experiment or proposal section.
func (c *Cleaner) IsImportantShortLine(line string) bool {
	return matchesAny(c.patterns.important, line)
}

// normalizeSpace collapses any run of Unicode whitespace into one space and
// trims both ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
