// Package store persists analysis runs in SQLite so that trends can be
// compared across proceedings volumes.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/chriscorrea/papertrend/internal/analysis"
	"github.com/chriscorrea/papertrend/internal/freq"
)

// timeLayout has a fixed width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// keyword kinds
const (
	KindGeneral = "general"
	KindAI      = "ai"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	started_at      TEXT NOT NULL,
	sources         INTEGER NOT NULL DEFAULT 0,
	failed_sources  INTEGER NOT NULL DEFAULT 0,
	papers          INTEGER NOT NULL DEFAULT 0,
	unique_keywords INTEGER NOT NULL DEFAULT 0,
	average_length  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS papers (
	run_id   TEXT NOT NULL,
	paper_id TEXT NOT NULL,
	source   TEXT NOT NULL DEFAULT '',
	title    TEXT NOT NULL,
	length   INTEGER NOT NULL,
	content  TEXT NOT NULL,
	PRIMARY KEY (run_id, paper_id)
);

CREATE TABLE IF NOT EXISTS keywords (
	run_id TEXT NOT NULL,
	kind   TEXT NOT NULL,
	term   TEXT NOT NULL,
	count  INTEGER NOT NULL,
	PRIMARY KEY (run_id, kind, term)
);

CREATE TABLE IF NOT EXISTS fields (
	run_id TEXT NOT NULL,
	label  TEXT NOT NULL,
	score  INTEGER NOT NULL,
	PRIMARY KEY (run_id, label)
);

CREATE TABLE IF NOT EXISTS insights (
	run_id   TEXT NOT NULL,
	position INTEGER NOT NULL,
	title    TEXT NOT NULL,
	content  TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Store is a SQLite-backed run history.
type Store struct {
	db *sqlx.DB
}

// Run summarizes one stored run.
type Run struct {
	RunID          string    `db:"run_id" json:"run_id"`
	StartedAt      time.Time `db:"-" json:"started_at"`
	StartedAtRaw   string    `db:"started_at" json:"-"`
	Sources        int       `db:"sources" json:"sources"`
	FailedSources  int       `db:"failed_sources" json:"failed_sources"`
	Papers         int       `db:"papers" json:"papers"`
	UniqueKeywords int       `db:"unique_keywords" json:"unique_keywords"`
	AverageLength  int       `db:"average_length" json:"average_length"`
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes a run and all of its tables in one transaction.
func (s *Store) Save(ctx context.Context, res *analysis.Result) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, sources, failed_sources, papers, unique_keywords, average_length)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.StartedAt.UTC().Format(timeLayout), len(res.Sources), len(res.Failed()),
		res.Stats.Papers, res.Stats.UniqueKeywords, res.Stats.AverageLength)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", res.RunID, err)
	}

	paperStmt, err := tx.PreparexContext(ctx,
		`INSERT INTO papers (run_id, paper_id, source, title, length, content) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare papers: %w", err)
	}
	defer paperStmt.Close()
	for _, p := range res.Papers {
		if _, err = paperStmt.ExecContext(ctx, res.RunID, p.ID, p.Source, p.Title, p.Length, p.Content); err != nil {
			return fmt.Errorf("insert paper %s: %w", p.ID, err)
		}
	}

	kwStmt, err := tx.PreparexContext(ctx,
		`INSERT INTO keywords (run_id, kind, term, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare keywords: %w", err)
	}
	defer kwStmt.Close()
	for kind, table := range map[string]*freq.Table{KindGeneral: res.Keywords, KindAI: res.AIKeywords} {
		for _, e := range table.Entries() {
			if _, err = kwStmt.ExecContext(ctx, res.RunID, kind, e.Term, e.Count); err != nil {
				return fmt.Errorf("insert %s keyword %q: %w", kind, e.Term, err)
			}
		}
	}

	for _, e := range res.Fields.Entries() {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO fields (run_id, label, score) VALUES (?, ?, ?)`,
			res.RunID, e.Term, e.Count); err != nil {
			return fmt.Errorf("insert field %q: %w", e.Term, err)
		}
	}

	for i, in := range res.Insights {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO insights (run_id, position, title, content) VALUES (?, ?, ?, ?)`,
			res.RunID, i, in.Title, in.Content); err != nil {
			return fmt.Errorf("insert insight %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", res.RunID, err)
	}
	return nil
}

// Runs lists stored runs, newest first. limit <= 0 lists all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT run_id, started_at, sources, failed_sources, papers, unique_keywords, average_length
		FROM runs ORDER BY started_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	runs := []Run{}
	if err := s.db.SelectContext(ctx, &runs, query, args...); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	for i := range runs {
		t, err := time.Parse(timeLayout, runs[i].StartedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad started_at %q: %w", runs[i].RunID, runs[i].StartedAtRaw, err)
		}
		runs[i].StartedAt = t
	}
	return runs, nil
}

// Keywords returns the n most frequent keywords of a kind for a run, ties in
// term order. n <= 0 returns all.
func (s *Store) Keywords(ctx context.Context, runID, kind string, n int) ([]freq.Entry, error) {
	query := `SELECT term, count FROM keywords WHERE run_id = ? AND kind = ? ORDER BY count DESC, term`
	args := []any{runID, kind}
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}

	var rows []struct {
		Term  string `db:"term"`
		Count int    `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list keywords for run %s: %w", runID, err)
	}

	entries := make([]freq.Entry, len(rows))
	for i, r := range rows {
		entries[i] = freq.Entry{Term: r.Term, Count: r.Count}
	}
	return entries, nil
}

// Fields returns a run's field scores, highest first.
func (s *Store) Fields(ctx context.Context, runID string) ([]freq.Entry, error) {
	var rows []struct {
		Label string `db:"label"`
		Score int    `db:"score"`
	}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT label, score FROM fields WHERE run_id = ? ORDER BY score DESC, label`, runID)
	if err != nil {
		return nil, fmt.Errorf("list fields for run %s: %w", runID, err)
	}

	entries := make([]freq.Entry, len(rows))
	for i, r := range rows {
		entries[i] = freq.Entry{Term: r.Label, Count: r.Score}
	}
	return entries, nil
}
