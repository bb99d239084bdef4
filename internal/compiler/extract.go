// Package compiler assembles the master question database from
// heterogeneous partial sources: categories extracted directly from the
// main snapshot plus previously cleaned per-category files discovered on
// disk.
package compiler

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

// Extractor pulls per-category sub-collections out of the main database
// and persists each one to its own timestamped snapshot.
type Extractor struct {
	OutputDir string
	Now       func() time.Time
	Logger    zerolog.Logger
}

// Extract filters the full collection once per requested category. A
// requested category with no matching records yields an empty slice and an
// empty snapshot, not an error. An empty request list returns an empty map
// and writes nothing.
func (e *Extractor) Extract(records []models.QuestionRecord, categories []models.Category) (map[models.Category][]models.QuestionRecord, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	extracted := make(map[models.Category][]models.QuestionRecord, len(categories))
	for _, cat := range categories {
		matched := models.FilterByCategory(records, string(cat), nil)
		if matched == nil {
			matched = []models.QuestionRecord{}
		}
		extracted[cat] = matched
		e.Logger.Info().Str("category", string(cat)).Int("count", len(matched)).Msg("extracted category")

		out := filepath.Join(e.OutputDir, store.ExtractedFile(cat, store.Timestamp(now())))
		if err := store.WriteJSON(out, matched); err != nil {
			return nil, err
		}
		e.Logger.Info().Str("file", out).Msg("saved extracted snapshot")
	}

	return extracted, nil
}
