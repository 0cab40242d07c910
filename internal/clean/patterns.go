package clean

import (
	"regexp"
	"sync"
)

// strikeRule is one strike-through pattern. Line rules match up to the end of
// a line (or a whole line) and are only applied while the text still has its
// line structure; inline rules match bounded spans and are safe on joined text.
type strikeRule struct {
	source string
	line   bool
}

// strikeRules are applied in order; each match is replaced by a single space.
// Latin alternatives are anchored on word boundaries so that e.g. "lab" does not
// strike the middle of "label".
var strikeRules = []strikeRule{
	// page markers
	{`-\s*\d+\s*-\s*`, false},

	// society / proceedings boilerplate
	{`(?im)©.*?(学会|society|conference).*$`, true},
	{`(?im)\d{4}年度.*?(学会|大会|conference).*$`, true},
	{`(?im)(一般|general)セッション.*$`, true},
	{`(?m)座長[:：].*$`, true},
	{`(?im)(会議室|\broom|\bhall)\s*\d+.*$`, true},
	{`(?im)\b(zoom|teams|webex)\b.*?(こちら|here|link).*$`, true},
	{`\d{2}:\d{2}\s*[〜~-]\s*\d{2}:\d{2}`, false},

	// URLs and contact details
	{`(?i)https?://\S+`, false},
	{`(?i)www\.\S+`, false},
	{`(?im)(問い合わせ先|\bcontact\b|\binquiry\b).*$`, true},
	{`(?im)(連絡先|\baddress\b).*$`, true},
	{`(?m)〒\d{3}-?\d{4}.*$`, true},
	{`(?i)\b(tel|phone|fax)\b.*?\d`, true},
	{`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`, false},

	// references, figures, tables
	{`(?m)^\s*\[\d+\].*$`, true},
	{`(?im)(参考文献|\breferences?\b).*$`, true},
	{`(?m)(図|\bfig\.?|\bfigure)\s*\d+.*$`, true},
	{`(?m)(表|\btable)\s*\d+.*$`, true},
	{`(?im)(謝辞|\backnowledg(e)?ments?\b).*$`, true},

	// paper metadata labels and layout debris
	{`(?i)(abstract|要約|概要)\s*[:：]`, false},
	{`(?i)(keywords?|キーワード)\s*[:：]`, false},
	{`(?m)^\s*\d+\s*$`, true},
	{`(?m)^\s*[A-Z]\s*$`, true},
	{`(?m)^\s*[・•]\s*$`, true},
	{`(?m)^\s*[-=_]{3,}\s*$`, true},

	// affiliations
	{`(?i)(大学|\buniversity\b|\binstitutes?\b)\s*(大学院|\bgraduate\b)?\s*(研究科|\bschool\b)?`, false},
	{`(?i)(株式会社|\bcorporation\b|\bcorp\b\.?|\bltd\b\.?|\binc\b\.?)`, false},
	{`(?i)(研究所|\blaboratory\b|\blab\b\.?|\bcenter\b)`, false},
}

// noiseLinePatterns mark whole lines that carry no content.
var noiseLinePatternSources = []string{
	`^\d+$`,
	`^[A-Za-z]$`,
	`^[・•\-=_]+$`,
	`(?i)^page\s*\d+`,
	`(?i)^p\.\s*\d+`,
	`(?i)session\s*chair`,
	`(?i)\broom\s*\w+`,
	`(?i)\bbuilding\b`,
	`(?i)\bfloor\b`,
}

// importantLinePatterns keep short section headers that would otherwise be
// dropped by the minimum line length.
var importantLinePatternSources = []string{
	`(?i)^(結論|conclusions?)`,
	`(?i)^(結果|results?)`,
	`(?i)^(手法|methods?)`,
	`(?i)^(実験|experiments?)`,
	`(?i)^(提案|proposals?)`,
}

type patternSet struct {
	strike    []*regexp.Regexp // every rule, in order
	inline    []*regexp.Regexp // the inline rules, in order
	noise     []*regexp.Regexp
	important []*regexp.Regexp
}

var (
	patterns     *patternSet
	patternsOnce sync.Once
)

// getPatterns returns the compiled pattern tables, compiling them on first use.
func getPatterns() *patternSet {
	patternsOnce.Do(func() {
		patterns = &patternSet{
			strike:    compileStrike(strikeRules, false),
			inline:    compileStrike(strikeRules, true),
			noise:     mustCompileAll(noiseLinePatternSources),
			important: mustCompileAll(importantLinePatternSources),
		}
	})
	return patterns
}

func compileStrike(rules []strikeRule, inlineOnly bool) []*regexp.Regexp {
	var compiled []*regexp.Regexp
	for _, r := range rules {
		if inlineOnly && r.line {
			continue
		}
		compiled = append(compiled, regexp.MustCompile(r.source))
	}
	return compiled
}

func mustCompileAll(sources []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(sources))
	for i, src := range sources {
		compiled[i] = regexp.MustCompile(src)
	}
	return compiled
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
