package compiler

import "github.com/assessdb/cleaner/internal/models"

// StripRC removes every reading-comprehension record from a compiled
// collection, returning the filtered collection and how many were removed.
func StripRC(records []models.QuestionRecord) ([]models.QuestionRecord, int) {
	filtered := []models.QuestionRecord{}
	for _, r := range records {
		if r.NormalizedCategory() != models.CategoryRC {
			filtered = append(filtered, r)
		}
	}
	return filtered, len(records) - len(filtered)
}
