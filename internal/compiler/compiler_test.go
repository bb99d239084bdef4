package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 7, 15, 20, 54, 25, 0, time.UTC)
}

func sampleDB() []models.QuestionRecord {
	return []models.QuestionRecord{
		{ID: "1", Category: "spatial_reasoning", Question: "s1"},
		{ID: "2", Category: "abstract_reasoning", Question: "a1"},
		{ID: "3", Category: "Spatial_Reasoning", Question: "s2"},
		{ID: "4", Category: "verbal_reasoning", Question: "v1"},
	}
}

// ── Extraction ─────────────────────────────────────────────

func TestExtract_FiltersAndPersists(t *testing.T) {
	dir := t.TempDir()
	e := &Extractor{OutputDir: dir, Now: fixedNow, Logger: zerolog.Nop()}

	extracted, err := e.Extract(sampleDB(), []models.Category{
		models.CategorySpatialReasoning,
		models.CategoryAbstractReasoning,
	})
	require.NoError(t, err)

	require.Len(t, extracted[models.CategorySpatialReasoning], 2)
	assert.Equal(t, "1", extracted[models.CategorySpatialReasoning][0].ID)
	assert.Equal(t, "3", extracted[models.CategorySpatialReasoning][1].ID)
	require.Len(t, extracted[models.CategoryAbstractReasoning], 1)

	spatialFile := filepath.Join(dir, "EXTRACTED_SPATIAL_REASONING_20250715_205425.json")
	require.FileExists(t, spatialFile)

	records, err := store.LoadRecords(spatialFile)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExtract_AbsentCategoryYieldsEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	e := &Extractor{OutputDir: dir, Now: fixedNow, Logger: zerolog.Nop()}

	extracted, err := e.Extract(sampleDB(), []models.Category{models.CategoryRC})
	require.NoError(t, err)

	rc, ok := extracted[models.CategoryRC]
	require.True(t, ok)
	assert.Empty(t, rc)

	records, err := store.LoadRecords(filepath.Join(dir, "EXTRACTED_RC_20250715_205425.json"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtract_EmptyRequestWritesNothing(t *testing.T) {
	dir := t.TempDir()
	e := &Extractor{OutputDir: dir, Now: fixedNow, Logger: zerolog.Nop()}

	extracted, err := e.Extract(sampleDB(), nil)
	require.NoError(t, err)
	assert.Empty(t, extracted)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ── Discovery ──────────────────────────────────────────────

func TestDiscoverCleanedFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644))
	}
	write("CLEANED_RC_QUESTIONS_20250715_205425.json")
	write("CLEANED_RC_QUESTIONS_20250716_090000.json")
	write("CLEANED_VERBAL_REASONING_QUESTIONS_20250715_205425.json")
	write("unrelated.json")

	found, err := DiscoverCleanedFiles(dir, DiscoverCategories, zerolog.Nop())
	require.NoError(t, err)

	assert.Len(t, found, 2)
	// Lexically first match wins when duplicates exist.
	assert.True(t, strings.HasSuffix(found[models.CategoryRC], "CLEANED_RC_QUESTIONS_20250715_205425.json"))
	assert.Contains(t, found, models.CategoryVerbalReasoning)
	assert.NotContains(t, found, models.CategoryCriticalReasoning)
}

func TestDiscoverCleanedFiles_EmptyDir(t *testing.T) {
	found, err := DiscoverCleanedFiles(t.TempDir(), DiscoverCategories, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, found)
}

// ── Compilation ────────────────────────────────────────────

func TestCompile_CountsMatchLength(t *testing.T) {
	dir := t.TempDir()

	cleanedRC := []models.QuestionRecord{
		{ID: "r1", Category: "rc", Question: "q"},
		{ID: "r2", Question: "untagged"},
	}
	rcPath := filepath.Join(dir, "CLEANED_RC_QUESTIONS_20250715_205425.json")
	require.NoError(t, store.WriteJSON(rcPath, cleanedRC))

	extracted := map[models.Category][]models.QuestionRecord{
		models.CategorySpatialReasoning: {
			{ID: "s1", Category: "spatial_reasoning"},
		},
	}
	files := map[models.Category]string{models.CategoryRC: rcPath}

	c := &Compiler{OutputDir: dir, Now: fixedNow, Logger: zerolog.Nop()}
	all, counts := c.Compile(
		extracted, []models.Category{models.CategorySpatialReasoning},
		files, []models.Category{models.CategoryRC},
	)

	// Extraction order first, then discovered-file order.
	require.Len(t, all, 3)
	assert.Equal(t, "s1", all[0].ID)
	assert.Equal(t, "r1", all[1].ID)

	// Untagged record picked up the category it arrived under.
	assert.Equal(t, models.CategoryRC, all[2].Category)

	sum := 0
	for _, n := range counts {
		sum += n
	}
	assert.Equal(t, len(all), sum)
}

func TestCompile_MalformedFileCountsZero(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "CLEANED_RC_QUESTIONS_20250715_205425.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{not json"), 0o644))

	goodPath := filepath.Join(dir, "CLEANED_VERBAL_REASONING_QUESTIONS_20250715_205425.json")
	require.NoError(t, store.WriteJSON(goodPath, []models.QuestionRecord{{ID: "v1", Category: "verbal_reasoning"}}))

	files := map[models.Category]string{
		models.CategoryRC:              badPath,
		models.CategoryVerbalReasoning: goodPath,
	}
	order := []models.Category{models.CategoryRC, models.CategoryVerbalReasoning}

	c := &Compiler{OutputDir: dir, Now: fixedNow, Logger: zerolog.Nop()}
	all, counts := c.Compile(nil, nil, files, order)

	// The malformed file contributes zero but processing continues.
	assert.Len(t, all, 1)
	assert.Equal(t, 0, counts[models.CategoryRC])
	assert.Equal(t, 1, counts[models.CategoryVerbalReasoning])
}

func TestCompile_NoDeduplication(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CLEANED_RC_QUESTIONS_20250715_205425.json")
	require.NoError(t, store.WriteJSON(path, []models.QuestionRecord{{ID: "dup", Category: "rc"}}))

	extracted := map[models.Category][]models.QuestionRecord{
		models.CategorySpatialReasoning: {{ID: "dup", Category: "spatial_reasoning"}},
	}

	c := &Compiler{OutputDir: dir, Now: fixedNow, Logger: zerolog.Nop()}
	all, _ := c.Compile(
		extracted, []models.Category{models.CategorySpatialReasoning},
		map[models.Category]string{models.CategoryRC: path}, []models.Category{models.CategoryRC},
	)
	assert.Len(t, all, 2)
}

func TestSave_WritesCompiledSnapshot(t *testing.T) {
	dir := t.TempDir()
	c := &Compiler{OutputDir: dir, Now: fixedNow, Logger: zerolog.Nop()}

	all := []models.QuestionRecord{{ID: "1", Category: "rc"}}
	result, err := c.Save(all, map[models.Category]int{models.CategoryRC: 1})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ALL_CATEGORIES_COMPILED_20250715_205425.json"), result.OutputFile)
	assert.Equal(t, 1, result.Total)

	records, err := store.LoadRecords(result.OutputFile)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// ── Report ─────────────────────────────────────────────────

func TestBuildReport_FixedOrderAndTotals(t *testing.T) {
	counts := map[models.Category]int{
		models.CategoryRC:                10,
		models.CategoryVerbalReasoning:   5,
		models.CategorySpatialReasoning:  3,
		models.CategoryCriticalReasoning: 0,
	}

	r := BuildReport(counts, 18)
	require.Len(t, r.Lines, len(models.ReportOrder))
	assert.Equal(t, models.CategoryCriticalReasoning, r.Lines[0].Category)
	assert.Equal(t, 18, r.CountedSum)
	assert.False(t, r.Mismatch)

	r = BuildReport(counts, 20)
	assert.True(t, r.Mismatch)

	var sb strings.Builder
	r.Write(&sb)
	assert.Contains(t, sb.String(), "WARNING")
}

// ── RC strip ───────────────────────────────────────────────

func TestStripRC(t *testing.T) {
	records := []models.QuestionRecord{
		{ID: "1", Category: "rc"},
		{ID: "2", Category: "verbal_reasoning"},
		{ID: "3", Category: "RC"},
	}

	filtered, removed := StripRC(records)
	assert.Equal(t, 2, removed)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].ID)
}
