package freq

import (
	"encoding/json"
	"testing"
)

func TestTableAdd(t *testing.T) {
	var table Table
	table.Inc("data")
	table.Inc("model")
	table.Add("data", 2)
	table.Add("ignored", 0)
	table.Add("negative", -3)

	if got := table.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if n, ok := table.Count("data"); !ok || n != 3 {
		t.Errorf("Count(data) = %d, %v; want 3, true", n, ok)
	}
	if _, ok := table.Count("ignored"); ok {
		t.Error("zero increments must not create an entry")
	}
	if got := table.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
}

func TestTableTop(t *testing.T) {
	table := New()
	for _, term := range []string{"alpha", "beta", "gamma", "beta", "delta", "gamma"} {
		table.Inc(term)
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"all entries", 0, []string{"beta", "gamma", "alpha", "delta"}},
		{"limited", 3, []string{"beta", "gamma", "alpha"}},
		{"larger than table", 10, []string{"beta", "gamma", "alpha", "delta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Top(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Top(%d) returned %d entries, want %d", tt.n, len(got), len(tt.want))
			}
			for i, entry := range got {
				if entry.Term != tt.want[i] {
					t.Errorf("Top(%d)[%d] = %q, want %q", tt.n, i, entry.Term, tt.want[i])
				}
			}
		})
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if table.Len() != 0 || table.Total() != 0 {
		t.Error("nil table should be empty")
	}
	if got := table.Top(5); len(got) != 0 {
		t.Errorf("Top() on nil table = %v, want empty", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	table := New()
	table.Inc("b")
	table.Add("a", 2)

	data, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[{"term":"a","count":2},{"term":"b","count":1}]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
