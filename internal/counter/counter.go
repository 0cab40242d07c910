// Package counter measures paper bodies in characters and in model tokens.
//
// Character counts are Unicode code points, matching Paper.Length. Token
// counts use tiktoken's cl100k_base encoding and tell readers how much of a
// model context window a paper would take.
package counter

// Counter counts units in text.
type Counter interface {
	Count(text string) int

	// Name returns a human-readable name for the unit (for logging and reports)
	Name() string
}

// Method selects a counting unit.
type Method int

const (
	Characters Method = iota
	Tokens
)

func (m Method) String() string {
	switch m {
	case Characters:
		return "characters"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// NewCounter returns the Counter for method. Token counting fails when the
// encoding cannot be loaded.
func NewCounter(method Method) (Counter, error) {
	switch method {
	case Tokens:
		return NewTokenCounter()
	default:
		return NewCharCounter(), nil
	}
}

// Each counts every text with c, keeping input order.
func Each(c Counter, texts []string) []int {
	counts := make([]int, len(texts))
	for i, text := range texts {
		counts[i] = c.Count(text)
	}
	return counts
}
