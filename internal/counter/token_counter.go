package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

// TokenCounter counts tokens with tiktoken. Safe for concurrent use.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex
}

// NewTokenCounter loads the cl100k_base encoding. The first call may need
// network access unless TIKTOKEN_CACHE_DIR holds the encoding file.
func NewTokenCounter() (Counter, error) {
	slog.Debug("loading token encoding", "encoding", tokenEncoding)

	encoding, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s encoding: %w", tokenEncoding, err)
	}
	return &TokenCounter{encoding: encoding}, nil
}

func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	// nil params: no special tokens allowed or disallowed
	return len(tc.encoding.Encode(text, nil, nil))
}

func (tc *TokenCounter) Name() string {
	return "tokens (" + tokenEncoding + ")"
}
