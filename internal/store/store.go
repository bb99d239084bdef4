// Package store handles the JSON snapshot files the pipeline reads and
// writes. Snapshots are immutable: every pass produces a new timestamped
// file, nothing is rewritten in place.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/assessdb/cleaner/internal/models"
)

// TimestampFormat is embedded in every output file name.
const TimestampFormat = "20060102_150405"

// AnalysisFile is the fixed name the analyze command writes to.
const AnalysisFile = "category_analysis.json"

// NoRCFile is the fixed name of the compiled snapshot with RC stripped.
const NoRCFile = "ALL_CATEGORIES_NO_RC.json"

// Timestamp returns the suffix used in snapshot file names.
func Timestamp(now time.Time) string {
	return now.Format(TimestampFormat)
}

// ── File naming ────────────────────────────────────────────

func ExtractedFile(cat models.Category, ts string) string {
	return fmt.Sprintf("EXTRACTED_%s_%s.json", cat.Upper(), ts)
}

func CleanedFile(category string, ts string) string {
	name := models.ParseCategory(category).Upper()
	if category == models.CategoryAll {
		name = "ALL_CATEGORIES"
	}
	return fmt.Sprintf("CLEANED_%s_QUESTIONS_%s.json", name, ts)
}

func ProcessingLogFile(category string, ts string) string {
	name := models.ParseCategory(category).Upper()
	if category == models.CategoryAll {
		name = "ALL_CATEGORIES"
	}
	return fmt.Sprintf("%s_PROCESSING_LOG_%s.json", name, ts)
}

func CompiledFile(ts string) string {
	return fmt.Sprintf("ALL_CATEGORIES_COMPILED_%s.json", ts)
}

// CleanedPattern is the glob the compiler uses to discover previously
// cleaned per-category files.
func CleanedPattern(cat models.Category) string {
	return fmt.Sprintf("CLEANED_%s_*.json", cat.Upper())
}

// ── IO ─────────────────────────────────────────────────────

// LoadRecords reads a JSON array of question records.
func LoadRecords(path string) ([]models.QuestionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []models.QuestionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// LoadGroups reads the grouped raw-export shape: an array of groups, each
// holding a questions array.
func LoadGroups(path string) ([]models.QuestionGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var groups []models.QuestionGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return groups, nil
}

// WriteJSON writes v as pretty-printed UTF-8 JSON. HTML escaping is off so
// question text round-trips byte-for-byte.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
