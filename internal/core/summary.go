package core

// RecentLimit is how many of the latest records a summary reports.
const RecentLimit = 5

// CategoryTotal aggregates the records sharing one category.
type CategoryTotal struct {
	Count int
	Total Money
}

// Summary is the aggregate view of a snapshot.
type Summary struct {
	Count      int
	Total      Money
	ByCategory map[string]CategoryTotal
	// Recent holds up to RecentLimit records in reverse insertion order.
	Recent []Expense
}

// BuildSummary computes count, exact total, and per-category totals in a
// single pass over the snapshot, plus the most recent records.
func BuildSummary(s Snapshot) Summary {
	sum := Summary{
		Count:      len(s.Expenses),
		ByCategory: make(map[string]CategoryTotal, 8),
	}
	for _, e := range s.Expenses {
		sum.Total = sum.Total.Add(e.Amount)
		ct := sum.ByCategory[e.Category]
		ct.Count++
		ct.Total = ct.Total.Add(e.Amount)
		sum.ByCategory[e.Category] = ct
	}

	n := len(s.Expenses)
	limit := RecentLimit
	if n < limit {
		limit = n
	}
	sum.Recent = make([]Expense, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		sum.Recent = append(sum.Recent, s.Expenses[i])
	}
	return sum
}
