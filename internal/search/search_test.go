package search_test

import (
	"context"
	"testing"

	"github.com/chriscorrea/papertrend/internal/search"
	"github.com/chriscorrea/papertrend/internal/segment"
)

var papers = []segment.Paper{
	{ID: "paper_1", Title: "Image segmentation with convolutional networks", Content: "We segment medical images with convolutional networks."},
	{ID: "paper_2", Title: "Robot grasping by reinforcement learning", Content: "A robot arm learns grasping policies. The robot improves over time."},
	{ID: "paper_3", Title: "Secure messaging protocols", Content: "We analyze encryption in messaging apps."},
}

func TestRank(t *testing.T) {
	hits, err := search.Rank(context.Background(), papers, "Robot grasping", 0)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("Rank() returned no hits")
	}
	if hits[0].Paper.ID != "paper_2" {
		t.Errorf("top hit = %s, want paper_2", hits[0].Paper.ID)
	}
	for i, h := range hits {
		if h.Score <= 0 {
			t.Errorf("hit %d has non-positive score %v", i, h.Score)
		}
		if i > 0 && h.Score > hits[i-1].Score {
			t.Errorf("hits not sorted at %d", i)
		}
	}
}

func TestRankLimit(t *testing.T) {
	hits, err := search.Rank(context.Background(), papers, "networks robot encryption", 1)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("len(hits) = %d, want 1", len(hits))
	}
}

func TestRankEmpty(t *testing.T) {
	tests := []struct {
		name   string
		papers []segment.Paper
		query  string
	}{
		{"blank query", papers, "  。、 "},
		{"no papers", nil, "robot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := search.Rank(context.Background(), tt.papers, tt.query, 0)
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}
			if hits == nil || len(hits) != 0 {
				t.Errorf("Rank() = %v, want empty", hits)
			}
		})
	}
}

func TestRankCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := search.Rank(ctx, papers, "robot", 0); err == nil {
		t.Error("Rank() with cancelled context expected error")
	}
}
