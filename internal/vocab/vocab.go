// Package vocab loads the vocabulary tables that drive keyword analysis and
// field classification: the stopword list, the AI term list and the ordered
// field-keyword table.
package vocab

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Field is one topical area and the keywords that count toward it.
type Field struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary is validated once and must not be modified afterwards.
type Vocabulary struct {
	Stopwords []string `yaml:"stopwords"`
	AITerms   []string `yaml:"ai_terms"`
	Fields    []Field  `yaml:"fields"`

	stop map[string]struct{}
}

var (
	ErrNoStopwords = errors.New("vocabulary has no stopwords")
	ErrNoAITerms   = errors.New("vocabulary has no ai_terms")
	ErrNoFields    = errors.New("vocabulary has no fields")
)

// Default returns the built-in vocabulary.
func Default() (*Vocabulary, error) {
	v, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in vocabulary: %w", err)
	}
	return v, nil
}

// Load reads and validates a vocabulary file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes a YAML vocabulary document. Stopwords are lower-cased and
// every entry is trimmed; blank entries, empty tables and duplicate field
// labels are rejected.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	var err error
	if v.Stopwords, err = normalizeList("stopwords", v.Stopwords, true); err != nil {
		return nil, err
	}
	if v.AITerms, err = normalizeList("ai_terms", v.AITerms, false); err != nil {
		return nil, err
	}

	switch {
	case len(v.Stopwords) == 0:
		return nil, ErrNoStopwords
	case len(v.AITerms) == 0:
		return nil, ErrNoAITerms
	case len(v.Fields) == 0:
		return nil, ErrNoFields
	}

	labels := make(map[string]bool, len(v.Fields))
	for i := range v.Fields {
		f := &v.Fields[i]
		f.Label = strings.TrimSpace(f.Label)
		if f.Label == "" {
			return nil, fmt.Errorf("field %d has no label", i+1)
		}
		if labels[f.Label] {
			return nil, fmt.Errorf("duplicate field label %q", f.Label)
		}
		labels[f.Label] = true

		if f.Keywords, err = normalizeList("field "+f.Label, f.Keywords, false); err != nil {
			return nil, err
		}
		if len(f.Keywords) == 0 {
			return nil, fmt.Errorf("field %q has no keywords", f.Label)
		}
	}

	v.stop = make(map[string]struct{}, len(v.Stopwords))
	for _, w := range v.Stopwords {
		v.stop[w] = struct{}{}
	}
	return &v, nil
}

// IsStopword reports whether the lower-cased token is on the stopword list.
func (v *Vocabulary) IsStopword(token string) bool {
	_, ok := v.stop[token]
	return ok
}

func normalizeList(name string, in []string, lower bool) ([]string, error) {
	out := make([]string, 0, len(in))
	for i, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%s: entry %d is blank", name, i+1)
		}
		if lower {
			s = strings.ToLower(s)
		}
		out = append(out, s)
	}
	return out, nil
}
