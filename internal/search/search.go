// Package search ranks segmented papers against a free-text query with
// field-weighted BM25.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"

	"github.com/chriscorrea/papertrend/internal/keyword"
	"github.com/chriscorrea/papertrend/internal/segment"
)

// Hit is a paper and its relevance score.
type Hit struct {
	Paper segment.Paper `json:"paper"`
	Score float64       `json:"score"`
}

// Rank scores every paper against query and returns the matching ones, best
// first. Papers are indexed as a Markdown document whose heading is the title,
// so title matches weigh more than body matches. limit <= 0 returns all hits.
func Rank(ctx context.Context, papers []segment.Paper, query string, limit int) ([]Hit, error) {
	query = normalize(query)
	if query == "" || len(papers) == 0 {
		return []Hit{}, nil
	}

	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	for i, p := range papers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		md := "# " + normalize(p.Title) + "\n\n" + normalize(p.Content)
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   parser.ParseDocument(md),
			Original: md,
		})
	}

	hits := make([]Hit, 0, len(papers))
	for i, p := range papers {
		if score := corpus.Score(query, i); score > 0 {
			hits = append(hits, Hit{Paper: p, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// normalize splits text the way keyword analysis does, so that Japanese
// punctuation and brackets separate terms for the BM25 tokenizer too.
func normalize(text string) string {
	return strings.ToLower(strings.Join(keyword.Tokenize(text), " "))
}
