package counter

import "unicode/utf8"

// CharCounter counts Unicode code points, not bytes.
type CharCounter struct{}

func NewCharCounter() Counter {
	return &CharCounter{}
}

func (cc *CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

func (cc *CharCounter) Name() string {
	return "characters"
}
