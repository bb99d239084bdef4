package compiler

import (
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

// DiscoverCategories are the categories the compiler looks for cleaned
// files of.
var DiscoverCategories = []models.Category{
	models.CategoryCriticalReasoning,
	models.CategoryLogicalReasoning,
	models.CategoryNumericalReasoning,
	models.CategoryVerbalReasoning,
	models.CategoryRC,
}

// DiscoverCleanedFiles locates previously cleaned per-category snapshots
// in dir by naming convention. When several files match a pattern the
// lexically first one is used; categories with no match are omitted from
// the result and reported.
func DiscoverCleanedFiles(dir string, categories []models.Category, logger zerolog.Logger) (map[models.Category]string, error) {
	found := make(map[models.Category]string)

	for _, cat := range categories {
		pattern := filepath.Join(dir, store.CleanedPattern(cat))
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			logger.Warn().Str("category", string(cat)).Str("pattern", pattern).Msg("no cleaned file found")
			continue
		}
		sort.Strings(matches)
		found[cat] = matches[0]
		logger.Info().Str("category", string(cat)).Str("file", matches[0]).Msg("found cleaned file")
	}

	return found, nil
}
