// Package title picks the most plausible paper title from the first lines of
// a segmented fragment.
//
// Four heuristics are tried in order and the first accepted title wins:
//  1. the text after a "- 1 -" page marker on a line
//  2. the text after a paper identifier such as 1A1-GS-10-01
//  3. the first valid, non-metadata line among the first ten
//  4. the best scoring valid, non-metadata line among the first twenty
package title

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chriscorrea/papertrend/internal/marker"
)

// Unknown is returned when no heuristic accepts a title.
const Unknown = "unknown title"

const (
	maxScanLines     = 20
	maxPositionLines = 10
	minTitleLength   = 10
	maxTitleLength   = 200
	maxSymbolRatio   = 0.3

	// pageMarkerText is the exact first-page footer; dates such as 2021-1-15
	// must not count as a marker.
	pageMarkerText = "- 1 -"
)

// heuristic inspects the leading lines of a fragment and returns a title or "".
type heuristic func(lines []string) string

// Extractor selects titles using an ordered list of heuristics.
type Extractor struct {
	heuristics []heuristic
}

// New returns an Extractor with the standard heuristic order.
func New() *Extractor {
	return &Extractor{
		heuristics: []heuristic{
			afterPageMarker,
			afterPaperID,
			firstValidLine,
			bestScoringLine,
		},
	}
}

// Extract returns the title of fragment, or Unknown.
func (e *Extractor) Extract(fragment string) string {
	lines := strings.Split(fragment, "\n")
	if len(lines) > maxScanLines {
		lines = lines[:maxScanLines]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	for _, h := range e.heuristics {
		if t := h(lines); t != "" {
			return t
		}
	}
	return Unknown
}

func afterPageMarker(lines []string) string {
	for _, line := range lines {
		if _, rest, ok := strings.Cut(line, pageMarkerText); ok {
			if t := strings.TrimSpace(rest); IsValid(t) {
				return t
			}
		}
	}
	return ""
}

func afterPaperID(lines []string) string {
	for _, line := range lines {
		if t, ok := marker.After(marker.PaperID, line); ok && IsValid(t) {
			return t
		}
	}
	return ""
}

func firstValidLine(lines []string) string {
	for i := 0; i < len(lines) && i < maxPositionLines; i++ {
		if IsValid(lines[i]) && !IsMetadata(lines[i]) {
			return lines[i]
		}
	}
	return ""
}

// bestScoringLine returns the highest scoring candidate; earlier lines win ties.
func bestScoringLine(lines []string) string {
	best, bestScore := "", -1
	for _, line := range lines {
		if !IsValid(line) || IsMetadata(line) {
			continue
		}
		if s := Score(line); s > bestScore {
			best, bestScore = line, s
		}
	}
	return best
}

// IsValid reports whether line is plausible as a title: between 10 and 200
// characters, containing Japanese script or a Latin letter, and with at most
// 30% symbol characters.
func IsValid(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < minTitleLength || n > maxTitleLength {
		return false
	}
	if !marker.ContainsJapanese(line) && !marker.ContainsASCIILetter(line) {
		return false
	}
	return float64(symbolCount(line))/float64(n) <= maxSymbolRatio
}

// IsMetadata reports whether line matches conference boilerplate such as
// society names, session labels, contact details or bare numbers.
func IsMetadata(line string) bool {
	for _, p := range metadataPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// Score ranks candidate titles; moderate length, Japanese script, real words
// and few symbols all add points.
func Score(line string) int {
	score := 0
	n := utf8.RuneCountInString(line)

	if n >= 20 && n <= 80 {
		score += 10
	}
	if n >= 15 && n <= 100 {
		score += 5
	}
	if marker.ContainsJapanese(line) {
		score += 5
	}
	if latinWord.MatchString(line) {
		score += 3
	}
	if symbolCount(line) <= 3 {
		score += 3
	}
	return score
}

// symbolCount counts runes that are neither ASCII word characters, whitespace
// nor Japanese script.
func symbolCount(s string) int {
	count := 0
	for _, r := range s {
		if marker.IsWord(r) || unicode.IsSpace(r) || marker.IsJapanese(r) {
			continue
		}
		count++
	}
	return count
}
