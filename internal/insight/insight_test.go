package insight

import (
	"strings"
	"testing"

	"github.com/chriscorrea/papertrend/internal/freq"
	"github.com/chriscorrea/papertrend/internal/segment"
)

func table(entries ...freq.Entry) *freq.Table {
	t := freq.New()
	for _, e := range entries {
		t.Add(e.Term, e.Count)
	}
	return t
}

func TestGenerate(t *testing.T) {
	papers := []segment.Paper{{Length: 300}, {Length: 401}}
	keywords := table(freq.Entry{Term: "transformer", Count: 7}, freq.Entry{Term: "ロボット", Count: 9})
	ai := table(freq.Entry{Term: "transformer", Count: 7})
	fields := table(
		freq.Entry{Term: "機械学習・AI", Count: 3},
		freq.Entry{Term: "ロボティクス", Count: 1},
	)

	got := Generate(keywords, ai, fields, papers)
	if len(got) != 4 {
		t.Fatalf("Generate() returned %d insights, want 4", len(got))
	}

	tests := []struct {
		title    string
		contains []string
	}{
		{"Main trend", []string{`"ロボット"`, "9 times"}},
		{"AI technology", []string{`"transformer"`, "7 mentions"}},
		{"Research fields", []string{"機械学習・AI", "75.0%"}},
		{"Paper profile", []string{"351 characters", "2 papers"}},
	}
	for i, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got[i].Title != tt.title {
				t.Errorf("insight %d title = %q, want %q", i, got[i].Title, tt.title)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got[i].Content, s) {
					t.Errorf("insight %d content %q missing %q", i, got[i].Content, s)
				}
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	got := Generate(freq.New(), freq.New(), freq.New(), nil)
	if len(got) != 1 {
		t.Fatalf("Generate() returned %d insights, want 1", len(got))
	}
	if got[0].Title != "Paper profile" {
		t.Errorf("title = %q, want Paper profile", got[0].Title)
	}
	if !strings.Contains(got[0].Content, "0 characters") || !strings.Contains(got[0].Content, "0 papers") {
		t.Errorf("content = %q", got[0].Content)
	}
	for _, bad := range []string{"NaN", "Inf"} {
		if strings.Contains(got[0].Content, bad) {
			t.Errorf("content contains %s: %q", bad, got[0].Content)
		}
	}
}

func TestGenerateNoAIKeywords(t *testing.T) {
	got := Generate(table(freq.Entry{Term: "robotics", Count: 2}), freq.New(), freq.New(), []segment.Paper{{Length: 10}})
	if len(got) != 2 {
		t.Fatalf("Generate() returned %d insights, want 2", len(got))
	}
	if got[0].Title != "Main trend" || got[1].Title != "Paper profile" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		papers []segment.Paper
		want   Stats
	}{
		{"no papers", nil, Stats{Papers: 0, UniqueKeywords: 2, AverageLength: 0}},
		{"rounds half up", []segment.Paper{{Length: 1}, {Length: 2}}, Stats{Papers: 2, UniqueKeywords: 2, AverageLength: 2}},
		{"rounds down", []segment.Paper{{Length: 1}, {Length: 1}, {Length: 2}}, Stats{Papers: 3, UniqueKeywords: 2, AverageLength: 1}},
	}
	keywords := table(freq.Entry{Term: "a1b", Count: 1}, freq.Entry{Term: "c2d", Count: 4})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.papers, keywords); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
