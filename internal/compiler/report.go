package compiler

import (
	"fmt"
	"io"

	"github.com/assessdb/cleaner/internal/models"
)

// Breakdown is the per-category line of the compilation report.
type Breakdown struct {
	Category models.Category
	Count    int
}

// BuildReport produces the fixed-order category breakdown and the totals
// cross-check. Mismatch reports the case where the sum of per-category
// counts disagrees with the compiled collection length — a warning, never
// fatal.
type Report struct {
	Lines      []Breakdown
	CountedSum int
	Compiled   int
	Mismatch   bool
}

func BuildReport(counts map[models.Category]int, compiledLen int) Report {
	r := Report{Compiled: compiledLen}
	for _, cat := range models.ReportOrder {
		count := counts[cat]
		r.Lines = append(r.Lines, Breakdown{Category: cat, Count: count})
		r.CountedSum += count
	}
	r.Mismatch = r.CountedSum != compiledLen
	return r
}

// Write renders the report for a human operator.
func (r Report) Write(w io.Writer) {
	fmt.Fprintln(w, "Category breakdown:")
	for _, line := range r.Lines {
		status := "ok"
		if line.Count == 0 {
			status = "missing"
		}
		fmt.Fprintf(w, "  %-22s %6d questions  [%s]\n", line.Category, line.Count, status)
	}
	fmt.Fprintf(w, "\nTOTAL: %d questions\n", r.CountedSum)

	if r.Mismatch {
		fmt.Fprintf(w, "WARNING: %d questions in file vs %d counted\n", r.Compiled, r.CountedSum)
	} else {
		fmt.Fprintln(w, "All questions accounted for.")
	}
}
