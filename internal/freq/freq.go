// Package freq provides an insertion-ordered frequency table.
//
// Go maps do not remember insertion order, but rankings produced from the
// table must be deterministic: entries with equal counts are ranked by the
// order in which they were first seen.
package freq

import (
	"encoding/json"
	"sort"
)

// Entry is a single term and its count.
type Entry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Table counts occurrences of terms. The zero value is ready to use.
type Table struct {
	counts map[string]int
	order  []string
}

// New returns an empty Table.
func New() *Table {
	return &Table{counts: make(map[string]int)}
}

// Add increments term by n. Non-positive n is ignored, so a term is never
// stored with a zero count.
func (t *Table) Add(term string, n int) {
	if n <= 0 {
		return
	}
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[term]; !ok {
		t.order = append(t.order, term)
	}
	t.counts[term] += n
}

// Inc increments term by one.
func (t *Table) Inc(term string) {
	t.Add(term, 1)
}

// Count returns the count for term and whether it is present.
func (t *Table) Count(term string) (int, bool) {
	if t == nil {
		return 0, false
	}
	n, ok := t.counts[term]
	return n, ok
}

// Len returns the number of distinct terms.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, term := range t.order {
		total += t.counts[term]
	}
	return total
}

// Entries returns every entry in first-seen order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return []Entry{}
	}
	entries := make([]Entry, len(t.order))
	for i, term := range t.order {
		entries[i] = Entry{Term: term, Count: t.counts[term]}
	}
	return entries
}

// Top returns up to n entries ordered by count, highest first. Ties keep
// first-seen order. n <= 0 returns every entry.
func (t *Table) Top(n int) []Entry {
	entries := t.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Map returns a copy of the counts.
func (t *Table) Map() map[string]int {
	m := make(map[string]int, t.Len())
	if t == nil {
		return m
	}
	for term, n := range t.counts {
		m[term] = n
	}
	return m
}

// MarshalJSON encodes the table as a ranked list of entries.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Top(0))
}
