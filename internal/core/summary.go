package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmount is a total aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
	Count  int
}

// Summary totals a set of records.
type Summary struct {
	Total      decimal.Decimal
	ByCategory []CategoryAmount // sorted by name
	// Skipped counts records whose amount is infinite or NaN; they are
	// left out of every total.
	Skipped int
}

// Summarize adds up amounts per category using decimal arithmetic so that
// long lists of REAL values do not drift.
func Summarize(records []ExpenseRecord) Summary {
	byName := make(map[string]*CategoryAmount)
	total := decimal.Zero
	skipped := 0

	for _, r := range records {
		if !IsFinite(r.Amount) {
			skipped++
			continue
		}
		amt := decimal.NewFromFloat(r.Amount)
		total = total.Add(amt)

		ca, ok := byName[r.Category]
		if !ok {
			ca = &CategoryAmount{Name: r.Category, Amount: decimal.Zero}
			byName[r.Category] = ca
		}
		ca.Amount = ca.Amount.Add(amt)
		ca.Count++
	}

	out := Summary{Total: total, ByCategory: make([]CategoryAmount, 0, len(byName)), Skipped: skipped}
	for _, ca := range byName {
		out.ByCategory = append(out.ByCategory, *ca)
	}
	sort.Slice(out.ByCategory, func(i, j int) bool {
		return out.ByCategory[i].Name < out.ByCategory[j].Name
	})

	return out
}
