package core

import (
	"testing"
	"time"
)

func TestBuildSummaryEmpty(t *testing.T) {
	sum := BuildSummary(Snapshot{})
	if sum.Count != 0 {
		t.Fatalf("count = %d, want 0", sum.Count)
	}
	if !sum.Total.IsZero() {
		t.Fatalf("total = %s, want 0", sum.Total)
	}
	if len(sum.ByCategory) != 0 || len(sum.Recent) != 0 {
		t.Fatalf("empty snapshot produced aggregates: %+v", sum)
	}
}

func TestBuildSummaryScenario(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := Snapshot{Expenses: []Expense{
		{ID: 1, Description: "Coffee", Amount: mustAmount(t, "4.50"), Category: "Food", CreatedAt: base},
		{ID: 2, Description: "Gas", Amount: mustAmount(t, "45.00"), Category: "Transport", CreatedAt: base.Add(time.Minute)},
		{ID: 3, Description: "Movie ticket", Amount: mustAmount(t, "12.00"), Category: "Entertainment", CreatedAt: base.Add(2 * time.Minute)},
	}}

	sum := BuildSummary(s)
	if sum.Count != 3 {
		t.Fatalf("count = %d, want 3", sum.Count)
	}
	if got := sum.Total.Display(); got != "61.50" {
		t.Fatalf("total = %s, want 61.50", got)
	}

	want := map[string]struct {
		count int
		total string
	}{
		"Food":          {1, "4.50"},
		"Transport":     {1, "45.00"},
		"Entertainment": {1, "12.00"},
	}
	if len(sum.ByCategory) != len(want) {
		t.Fatalf("categories = %d, want %d", len(sum.ByCategory), len(want))
	}
	for name, w := range want {
		ct, ok := sum.ByCategory[name]
		if !ok {
			t.Fatalf("missing category %q", name)
		}
		if ct.Count != w.count || ct.Total.Display() != w.total {
			t.Fatalf("category %q = (%d, %s), want (%d, %s)",
				name, ct.Count, ct.Total.Display(), w.count, w.total)
		}
	}
}

func TestBuildSummaryRecent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var s Snapshot
	for i := int64(1); i <= 7; i++ {
		s.Expenses = append(s.Expenses, Expense{
			ID:          i,
			Description: "e",
			Amount:      mustAmount(t, "1.00"),
			Category:    DefaultCategory,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	sum := BuildSummary(s)
	if len(sum.Recent) != RecentLimit {
		t.Fatalf("recent = %d records, want %d", len(sum.Recent), RecentLimit)
	}
	// Reverse insertion order: newest first.
	for i, want := range []int64{7, 6, 5, 4, 3} {
		if sum.Recent[i].ID != want {
			t.Fatalf("recent[%d].ID = %d, want %d", i, sum.Recent[i].ID, want)
		}
	}

	short := BuildSummary(Snapshot{Expenses: s.Expenses[:2]})
	if len(short.Recent) != 2 || short.Recent[0].ID != 2 || short.Recent[1].ID != 1 {
		t.Fatalf("short recent wrong: %+v", short.Recent)
	}
}
