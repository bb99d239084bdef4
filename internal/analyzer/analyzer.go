// Package analyzer inspects a question database snapshot and reports how
// its records split across categories, which cleaning pipeline each
// category belongs to, and a sample record per category.
package analyzer

import (
	"fmt"
	"io"
	"sort"

	"github.com/assessdb/cleaner/internal/models"
)

// NoCategory labels records carrying no category value at all.
const NoCategory = "NO_CATEGORY"

// Analysis is the result of one analysis pass.
type Analysis struct {
	Total   int
	Counts  map[string]int
	Samples map[string]models.QuestionRecord

	// Pipeline buckets, sorted by descending count.
	RCCategories       []string
	ExcludedCategories []string
	GeneralCategories  []string
}

// Analyze counts records per category and splits the categories into
// pipeline buckets: RC (its own cleaner), excluded (never cleaned), and
// general (the default cleaner).
func Analyze(records []models.QuestionRecord, denylist []models.Category) *Analysis {
	a := &Analysis{
		Total:   len(records),
		Counts:  make(map[string]int),
		Samples: make(map[string]models.QuestionRecord),
	}

	excluded := make(map[models.Category]bool)
	for _, c := range denylist {
		if c != models.CategoryRC {
			excluded[c] = true
		}
	}

	for _, r := range records {
		key := string(r.NormalizedCategory())
		if r.Category == "" {
			key = NoCategory
		}
		a.Counts[key]++
		if _, ok := a.Samples[key]; !ok {
			a.Samples[key] = r
		}
	}

	for key := range a.Counts {
		cat := models.Category(key)
		switch {
		case cat == models.CategoryRC:
			a.RCCategories = append(a.RCCategories, key)
		case excluded[cat]:
			a.ExcludedCategories = append(a.ExcludedCategories, key)
		default:
			a.GeneralCategories = append(a.GeneralCategories, key)
		}
	}
	a.sortBuckets()

	return a
}

func (a *Analysis) sortBuckets() {
	byCount := func(keys []string) {
		sort.Slice(keys, func(i, j int) bool {
			if a.Counts[keys[i]] != a.Counts[keys[j]] {
				return a.Counts[keys[i]] > a.Counts[keys[j]]
			}
			return keys[i] < keys[j]
		})
	}
	byCount(a.RCCategories)
	byCount(a.ExcludedCategories)
	byCount(a.GeneralCategories)
}

// SortedCounts returns every category with its count, descending.
func (a *Analysis) SortedCounts() []CategoryCount {
	out := make([]CategoryCount, 0, len(a.Counts))
	for key, count := range a.Counts {
		out = append(out, CategoryCount{Category: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type CategoryCount struct {
	Category string
	Count    int
}

// Write renders the analysis for a human operator.
func (a *Analysis) Write(w io.Writer) {
	fmt.Fprintf(w, "Total questions in database: %d\n", a.Total)
	fmt.Fprintf(w, "Found %d different categories:\n", len(a.Counts))
	for _, cc := range a.SortedCounts() {
		fmt.Fprintf(w, "  %-25s: %6d questions\n", cc.Category, cc.Count)
	}

	fmt.Fprintln(w, "\nRC categories (use the RC cleaner):")
	for _, cat := range a.RCCategories {
		fmt.Fprintf(w, "  - %s (%d questions)\n", cat, a.Counts[cat])
	}
	fmt.Fprintln(w, "Excluded categories (skip these):")
	for _, cat := range a.ExcludedCategories {
		fmt.Fprintf(w, "  - %s (%d questions)\n", cat, a.Counts[cat])
	}
	fmt.Fprintln(w, "General categories (use the general cleaner):")
	for _, cat := range a.GeneralCategories {
		fmt.Fprintf(w, "  - %s (%d questions)\n", cat, a.Counts[cat])
	}

	fmt.Fprintln(w, "\nSample questions by category:")
	for _, cc := range a.SortedCounts() {
		sample := a.Samples[cc.Category]
		fmt.Fprintf(w, "  %s:\n", cc.Category)
		fmt.Fprintf(w, "    question: %s\n", truncate(sample.Question, 80))
		fmt.Fprintf(w, "    options: %d, has passage: %v\n", len(sample.Options), sample.Passage != nil)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
