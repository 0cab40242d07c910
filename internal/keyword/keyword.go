// Package keyword builds corpus-wide keyword frequencies from paper bodies.
//
// Tokens must be 3 to 20 characters long, with one exception: a token equal
// to a configured AI term is accepted at any length. Besides "AI" this admits
// two-character Japanese terms such as 分類 and 回帰, which the length rule
// alone would reject. Stopwords are rejected either way.
package keyword

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/marker"
	"github.com/chriscorrea/papertrend/internal/segment"
	"github.com/chriscorrea/papertrend/internal/vocab"
)

const (
	MinTokenLength = 3
	MaxTokenLength = 20

	// maxSymbolRatio is the largest share of runes outside word characters and
	// Japanese script that a keyword may carry.
	maxSymbolRatio = 0.3
)

// separators split tokens in addition to Unicode white space. Brackets are
// treated as separators so that 「深層学習」 yields 深層学習.
const separators = ".,;:!?。、，．；：！？「」『』（）()【】［］[]"

// Analyzer tokenizes paper bodies and counts accepted keywords.
type Analyzer struct {
	vocab   *vocab.Vocabulary
	aiTerms []string // lower-cased
	exact   map[string]bool
}

// New returns an Analyzer for the given vocabulary.
func New(v *vocab.Vocabulary) *Analyzer {
	a := &Analyzer{
		vocab:   v,
		aiTerms: make([]string, 0, len(v.AITerms)),
		exact:   make(map[string]bool, len(v.AITerms)),
	}
	for _, term := range v.AITerms {
		lower := strings.ToLower(term)
		a.aiTerms = append(a.aiTerms, lower)
		a.exact[lower] = true
	}
	return a
}

// Analyze counts keywords across all papers. Every key of ai is also a key of
// general with at least the same count.
func (a *Analyzer) Analyze(papers []segment.Paper) (general, ai *freq.Table) {
	general, ai = freq.New(), freq.New()
	for _, p := range papers {
		for _, tok := range Tokenize(p.Content) {
			word, ok := a.Accept(tok)
			if !ok {
				continue
			}
			general.Inc(word)
			if a.IsAITerm(word) {
				ai.Inc(word)
			}
		}
	}
	return general, ai
}

// Tokenize splits text on white space, ASCII and full-width punctuation, and
// bracket characters.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
	})
}

// Accept normalizes a raw token and reports whether it counts as a keyword.
// A token equal to an AI term is exempt from the length and short Latin
// rules, so "AI" is counted even though it is two characters long.
func (a *Analyzer) Accept(token string) (string, bool) {
	word := strings.ToLower(strings.TrimSpace(token))
	if word == "" || a.vocab.IsStopword(word) {
		return word, false
	}
	if a.exact[word] {
		return word, true
	}

	n := utf8.RuneCountInString(word)
	if n < MinTokenLength || n > MaxTokenLength {
		return word, false
	}
	// the length floor also rules out one and two letter Latin tokens and
	// single hiragana
	if isDigits(word) {
		return word, false
	}
	return word, IsValid(word)
}

// IsAITerm reports whether word contains an AI term or is contained in one,
// ignoring case.
func (a *Analyzer) IsAITerm(word string) bool {
	word = strings.ToLower(word)
	for _, term := range a.aiTerms {
		if strings.Contains(word, term) || strings.Contains(term, word) {
			return true
		}
	}
	return false
}

// IsValid rejects tokens dominated by symbols and tokens whose only
// meaningful characters are digits.
func IsValid(word string) bool {
	var n, symbols int
	var hasDigit, hasJapanese, hasLetter bool
	for _, r := range word {
		n++
		switch {
		case marker.IsJapanese(r):
			hasJapanese = true
		case marker.IsASCIILetter(r):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '_':
		default:
			symbols++
		}
	}
	if float64(symbols) > float64(n)*maxSymbolRatio {
		return false
	}
	return !(hasDigit && !hasJapanese && !hasLetter)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
