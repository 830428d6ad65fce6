package shell

import (
	"fmt"
	"text/tabwriter"

	"expensetracker/internal/core"
)

func (s *Shell) render() {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, r := range s.view {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Category, core.FormatAmount(r.Amount), r.Description)
	}
	tw.Flush()
	if len(s.view) == 0 {
		s.printf("(no expenses)\n")
	}
}

func (s *Shell) renderSummary(sum core.Summary) {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tAMOUNT\t")
	for _, c := range sum.ByCategory {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", c.Name, c.Count, c.Amount.StringFixed(2))
	}
	fmt.Fprintf(tw, "Total\t%d\t%s\t\n", len(s.view), sum.Total.StringFixed(2))
	tw.Flush()
	if sum.Skipped > 0 {
		s.printf("%d expense(s) with an out of range amount left out of the totals.\n", sum.Skipped)
	}
}

func (s *Shell) printCategories(cats []string) {
	for i, c := range cats {
		s.printf("  %d) %s\n", i+1, c)
	}
}
