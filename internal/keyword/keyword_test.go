package keyword

import (
	"reflect"
	"testing"

	"github.com/chriscorrea/papertrend/internal/segment"
	"github.com/chriscorrea/papertrend/internal/vocab"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	v, err := vocab.Default()
	if err != nil {
		t.Fatalf("vocab.Default() error = %v", err)
	}
	return New(v)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"spaces and ascii punctuation", "deep learning, robots; vision.", []string{"deep", "learning", "robots", "vision"}},
		{"full-width punctuation", "画像認識。深層学習、強化学習！", []string{"画像認識", "深層学習", "強化学習"}},
		{"brackets", "「深層学習」(BERT)【GPT】", []string{"深層学習", "BERT", "GPT"}},
		{"ideographic space", "機械学習　最適化", []string{"機械学習", "最適化"}},
		{"empty", " \t\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAccept(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"Transformer", "transformer", true},
		{"  深層学習  ", "深層学習", true},
		{"AI", "ai", true},   // AI term, exempt from the length floor
		{"UI", "ui", false},  // too short and not an AI term
		{"the", "the", false}, // stopword
		{"2024", "2024", false},
		{"ab", "ab", false},
		{"あ", "あ", false},
		{"abcdefghijklmnopqrstu", "abcdefghijklmnopqrstu", false}, // 21 runes
		{"12-34-56", "12-34-56", false},
		{"gpt4", "gpt4", true},
		{"a-b-c-d", "a-b-c-d", false},
		{"分類", "分類", true},  // two-character AI term
		{"画像", "画像", false}, // two characters, not an AI term
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := a.Accept(tt.token)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Accept(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"robotics", true},
		{"画像認識", true},
		{"3次元", true},
		{"cnn-lstm", true},
		{"123", false},
		{"1.2.3", false},
		{"#$%abc", false},
		{"snake_case", true},
	}
	for _, tt := range tests {
		if got := IsValid(tt.word); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestIsAITerm(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		word string
		want bool
	}{
		{"深層学習を用いた", true}, // contains a term
		{"学習", true},  // contained in 機械学習
		{"評価実験", false},
		{"bert", true},
		{"ber", true}, // contained in a term
		{"ロボット", false},
	}
	for _, tt := range tests {
		if got := a.IsAITerm(tt.word); got != tt.want {
			t.Errorf("IsAITerm(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	a := newTestAnalyzer(t)

	t.Run("AI token counted in both tables", func(t *testing.T) {
		papers := []segment.Paper{{ID: "paper_1", Content: "AI AI ロボット制御"}}
		general, ai := a.Analyze(papers)

		if n, _ := general.Count("ai"); n != 2 {
			t.Errorf("general[ai] = %d, want 2", n)
		}
		if n, _ := ai.Count("ai"); n != 2 {
			t.Errorf("ai[ai] = %d, want 2", n)
		}
		if n, _ := general.Count("ロボット制御"); n != 1 {
			t.Errorf("general[ロボット制御] = %d, want 1", n)
		}
		if _, ok := ai.Count("ロボット制御"); ok {
			t.Error("ロボット制御 should not be an AI keyword")
		}
	})

	t.Run("AI table is a subset of general table", func(t *testing.T) {
		papers := []segment.Paper{
			{ID: "paper_1", Content: "Transformer による 自然言語処理 の 評価 Transformer BERT"},
			{ID: "paper_2", Content: "深層学習 画像認識 クラウド環境 robotics the 2023"},
		}
		general, ai := a.Analyze(papers)
		if ai.Len() == 0 {
			t.Fatal("expected AI keywords")
		}
		for _, e := range ai.Entries() {
			n, ok := general.Count(e.Term)
			if !ok || n < e.Count {
				t.Errorf("general[%q] = %d, want >= %d", e.Term, n, e.Count)
			}
		}
		if n, _ := general.Count("transformer"); n != 2 {
			t.Errorf("general[transformer] = %d, want 2", n)
		}
		for _, rejected := range []string{"the", "2023", "による", "の"} {
			if _, ok := general.Count(rejected); ok {
				t.Errorf("%q should have been rejected", rejected)
			}
		}
	})

	t.Run("no papers", func(t *testing.T) {
		general, ai := a.Analyze(nil)
		if general.Len() != 0 || ai.Len() != 0 {
			t.Errorf("expected empty tables, got %d and %d", general.Len(), ai.Len())
		}
	})
}
