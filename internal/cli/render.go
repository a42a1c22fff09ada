package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

// renderTable prints the expenses selected by the category filter and a
// total line, returning how many records were shown.
func renderTable(w io.Writer, snap core.Snapshot, category string) int {
	var (
		shown int
		total core.Money
	)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tAmount\tCategory\tDescription")
	for e := range store.List(snap, category) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.CreatedAt.Format("2006-01-02"), e.Amount.Display(), e.Category, e.Description)
		total = total.Add(e.Amount)
		shown++
	}
	if shown == 0 {
		return 0
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %s (%d expenses)\n", total.Display(), shown)
	return shown
}

// renderSummary prints totals, the per-category breakdown in alphabetical
// order, and the recent records, newest first.
func renderSummary(w io.Writer, sum core.Summary) {
	fmt.Fprintf(w, "Expenses: %d\n", sum.Count)
	fmt.Fprintf(w, "Total: %s\n", sum.Total.Display())

	if len(sum.ByCategory) > 0 {
		names := make([]string, 0, len(sum.ByCategory))
		for name := range sum.ByCategory {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w, "\nBy category:")
		for _, name := range names {
			ct := sum.ByCategory[name]
			fmt.Fprintf(w, "  %s: %d expenses, %s\n", name, ct.Count, ct.Total.Display())
		}
	}

	if len(sum.Recent) > 0 {
		fmt.Fprintln(w, "\nRecent expenses:")
		for _, e := range sum.Recent {
			fmt.Fprintf(w, "  %s  %s (%s)\n",
				e.CreatedAt.Format("2006-01-02"), e.Description, e.Amount.Display())
		}
	}
}
