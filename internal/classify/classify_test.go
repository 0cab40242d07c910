package classify_test

import (
	"reflect"
	"testing"

	"github.com/chriscorrea/papertrend/internal/classify"
	"github.com/chriscorrea/papertrend/internal/segment"
	"github.com/chriscorrea/papertrend/internal/vocab"
)

func defaultClassifier(t *testing.T) *classify.Classifier {
	t.Helper()
	v, err := vocab.Default()
	if err != nil {
		t.Fatalf("vocab.Default() error = %v", err)
	}
	return classify.NewClassifier(v.Fields)
}

func TestNewClassifier(t *testing.T) {
	classifier := defaultClassifier(t)
	labels := classifier.Labels()
	if len(labels) != 8 {
		t.Fatalf("Labels() returned %d fields, want 8", len(labels))
	}
	if labels[1] != "自然言語処理" {
		t.Errorf("Labels()[1] = %q, want 自然言語処理", labels[1])
	}
}

func TestClassifier_Score(t *testing.T) {
	classifier := classify.NewClassifier([]vocab.Field{
		{Label: "vision", Keywords: []string{"画像", "Camera"}},
		{Label: "hci", Keywords: []string{"UI", "VR"}},
		{Label: "security", Keywords: []string{"暗号"}},
	})

	tests := []struct {
		name     string
		content  string
		expected []int
	}{
		{
			name:     "case insensitive",
			content:  "camera CAMERA Camera 画像",
			expected: []int{4, 0, 0},
		},
		{
			name:     "non-overlapping matches",
			content:  "画像画像画像",
			expected: []int{3, 0, 0},
		},
		{
			name:     "substring matches count",
			content:  "guide for vr build",
			expected: []int{0, 3, 0}, // gUIde, bUIld, vr
		},
		{
			name:     "no matches",
			content:  "ロボット制御",
			expected: []int{0, 0, 0},
		},
		{
			name:     "empty content",
			content:  "",
			expected: []int{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Score(tt.content)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Score(%q) = %v, want %v", tt.content, got, tt.expected)
			}
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	classifier := defaultClassifier(t)

	papers := []segment.Paper{
		{ID: "paper_1", Content: "深層学習による画像認識の研究 画像"},
		{ID: "paper_2", Content: "暗号と認証の研究"},
		{ID: "paper_3", Content: "特になし"},
	}
	fields := classifier.Classify(papers)

	tests := []struct {
		label string
		want  int
	}{
		{"機械学習・AI", 1},        // 深層学習
		{"コンピュータビジョン", 3}, // 画像 x2, 認識
		{"セキュリティ", 2},        // 暗号, 認証
	}
	for _, tt := range tests {
		got, ok := fields.Count(tt.label)
		if !ok || got != tt.want {
			t.Errorf("fields[%s] = %d (present %v), want %d", tt.label, got, ok, tt.want)
		}
	}

	for _, e := range fields.Entries() {
		if e.Count <= 0 {
			t.Errorf("field %s stored with non-positive score %d", e.Term, e.Count)
		}
	}
	if _, ok := fields.Count("ロボティクス"); ok {
		t.Error("unscored field should be absent")
	}
	if fields.Len() != 3 {
		t.Errorf("Len() = %d, want 3", fields.Len())
	}
}

func TestClassifier_ClassifyNoPapers(t *testing.T) {
	classifier := defaultClassifier(t)
	if got := classifier.Classify(nil).Len(); got != 0 {
		t.Errorf("Classify(nil).Len() = %d, want 0", got)
	}
}
