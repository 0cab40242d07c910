package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	v, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if got := len(v.Fields); got != 8 {
		t.Errorf("len(Fields) = %d, want 8", got)
	}
	if v.Fields[0].Label != "機械学習・AI" {
		t.Errorf("first field = %q, want 機械学習・AI", v.Fields[0].Label)
	}
	if v.Fields[7].Label != "ネットワーク・システム" {
		t.Errorf("last field = %q, want ネットワーク・システム", v.Fields[7].Label)
	}

	// quoted scalars must survive as strings, including YAML 1.1 booleans
	for _, w := range []string{"の", "the", "no", "0", "30", "zoom", "住所", "timetable"} {
		if !v.IsStopword(w) {
			t.Errorf("IsStopword(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"transformer", "深層学習", "31"} {
		if v.IsStopword(w) {
			t.Errorf("IsStopword(%q) = true, want false", w)
		}
	}

	found := false
	for _, term := range v.AITerms {
		if term == "Transformer" {
			found = true
		}
	}
	if !found {
		t.Error("AITerms missing Transformer")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		errText string
	}{
		{
			name: "valid",
			doc: `
stopwords: ["The", " of "]
ai_terms: ["AI"]
fields:
  - label: robots
    keywords: [ロボット]
`,
		},
		{
			name:    "no stopwords",
			doc:     "ai_terms: [AI]\nfields: [{label: a, keywords: [b]}]\n",
			wantErr: ErrNoStopwords,
		},
		{
			name:    "no ai terms",
			doc:     "stopwords: [the]\nfields: [{label: a, keywords: [b]}]\n",
			wantErr: ErrNoAITerms,
		},
		{
			name:    "no fields",
			doc:     "stopwords: [the]\nai_terms: [AI]\n",
			wantErr: ErrNoFields,
		},
		{
			name:    "blank stopword",
			doc:     "stopwords: [the, '  ']\nai_terms: [AI]\nfields: [{label: a, keywords: [b]}]\n",
			errText: "blank",
		},
		{
			name:    "duplicate label",
			doc:     "stopwords: [the]\nai_terms: [AI]\nfields: [{label: a, keywords: [b]}, {label: a, keywords: [c]}]\n",
			errText: "duplicate field label",
		},
		{
			name:    "field without keywords",
			doc:     "stopwords: [the]\nai_terms: [AI]\nfields: [{label: a}]\n",
			errText: "no keywords",
		},
		{
			name:    "malformed",
			doc:     "stopwords: [the\n",
			errText: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.doc))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
			case tt.errText != "":
				if err == nil || !strings.Contains(err.Error(), tt.errText) {
					t.Fatalf("Parse() error = %v, want containing %q", err, tt.errText)
				}
			default:
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				if !v.IsStopword("the") || !v.IsStopword("of") {
					t.Errorf("stopwords not normalized: %v", v.Stopwords)
				}
				if len(v.Fields) != 1 || v.Fields[0].Label != "robots" {
					t.Errorf("Fields = %+v", v.Fields)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	doc := "stopwords: [the]\nai_terms: [GPT]\nfields: [{label: nlp, keywords: [言語]}]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(v.AITerms) != 1 || v.AITerms[0] != "GPT" {
		t.Errorf("AITerms = %v, want [GPT]", v.AITerms)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() on missing file returned nil error")
	}
}
