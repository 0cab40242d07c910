// Package marker holds the structural markers that delimit individual papers
// inside a proceedings volume. They are shared by segmentation, title extraction
// and cleaning, so they are compiled once here.
package marker

import (
	"regexp"
	"strings"
)

var (
	// PageOne matches the "- 1 -" footer printed on the first page of each paper.
	PageOne = regexp.MustCompile(`-\s*1\s*-`)

	// PaperID matches session-scoped paper identifiers such as 1A1-GS-10-01.
	PaperID = regexp.MustCompile(`\d+[A-Z]\d+-[A-Z]+-\d+-\d+`)

	// Abstract matches an abstract label in English or Japanese followed by a colon.
	Abstract = regexp.MustCompile(`(?i)(abstract|要約|概要)\s*[:：]`)
)

// Offsets returns the start offset of every non-overlapping match of re in text.
func Offsets(re *regexp.Regexp, text string) []int {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	offsets := make([]int, len(locs))
	for i, loc := range locs {
		offsets[i] = loc[0]
	}
	return offsets
}

// After returns the trimmed text that follows the first match of re in line,
// and whether a match was found at all.
func After(re *regexp.Regexp, line string) (string, bool) {
	loc := re.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(line[loc[1]:]), true
}
