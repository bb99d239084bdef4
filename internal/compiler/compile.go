package compiler

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

// Compiler merges extracted categories and discovered cleaned files into
// one ordered collection.
type Compiler struct {
	OutputDir string
	Now       func() time.Time
	Logger    zerolog.Logger
}

// Compile concatenates the extracted sub-collections (in extractOrder)
// followed by the discovered files (in fileOrder), tagging records that
// lack a category with the category they arrived under. A file that fails
// to load contributes zero records; its category is still counted, at 0,
// and compilation continues. Records are never deduplicated by id.
func (c *Compiler) Compile(
	extracted map[models.Category][]models.QuestionRecord, extractOrder []models.Category,
	files map[models.Category]string, fileOrder []models.Category,
) ([]models.QuestionRecord, map[models.Category]int) {
	all := []models.QuestionRecord{}
	counts := make(map[models.Category]int)

	for _, cat := range extractOrder {
		questions, ok := extracted[cat]
		if !ok {
			continue
		}
		all = append(all, questions...)
		counts[cat] = len(questions)
		c.Logger.Info().Str("category", string(cat)).Int("count", len(questions)).Msg("added extracted questions")
	}

	for _, cat := range fileOrder {
		path, ok := files[cat]
		if !ok {
			continue
		}
		questions, err := store.LoadRecords(path)
		if err != nil {
			c.Logger.Error().Err(err).Str("file", path).Msg("failed to load cleaned file")
			counts[cat] = 0
			continue
		}
		for i := range questions {
			if questions[i].Category == "" {
				questions[i].Category = cat
			}
		}
		all = append(all, questions...)
		counts[cat] = len(questions)
		c.Logger.Info().Str("category", string(cat)).Int("count", len(questions)).Str("file", path).Msg("added cleaned questions")
	}

	return all, counts
}

// Save writes the compiled collection to a timestamped snapshot and
// returns the result summary.
func (c *Compiler) Save(all []models.QuestionRecord, counts map[models.Category]int) (*models.CompileResult, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	out := filepath.Join(c.OutputDir, store.CompiledFile(store.Timestamp(now())))
	if err := store.WriteJSON(out, all); err != nil {
		return nil, err
	}
	c.Logger.Info().Str("file", out).Int("total", len(all)).Msg("saved compiled database")

	return &models.CompileResult{
		OutputFile: out,
		Total:      len(all),
		Counts:     counts,
	}, nil
}
