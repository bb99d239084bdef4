package models

import "strings"

// Category partitions questions into reasoning types. Values are stored
// lowercase; matching is always done on the normalized form.
type Category string

const (
	CategoryCriticalReasoning     Category = "critical_reasoning"
	CategoryLogicalReasoning      Category = "logical_reasoning"
	CategoryNumericalReasoning    Category = "numerical_reasoning"
	CategoryVerbalReasoning       Category = "verbal_reasoning"
	CategoryQuantitativeReasoning Category = "quantitative_reasoning"
	CategoryGeneralKnowledge      Category = "general_knowledge"
	CategoryAnalyticalReasoning   Category = "analytical_reasoning"
	CategoryRC                    Category = "rc"
	CategorySpatialReasoning      Category = "spatial_reasoning"
	CategoryAbstractReasoning     Category = "abstract_reasoning"

	// CategoryUnknown is the sentinel for missing or unrecognized values.
	CategoryUnknown Category = "unknown"

	// CategoryAll is the reserved CLI keyword for "every category not in
	// the denylist". It never appears on a record.
	CategoryAll = "all"
)

var ValidCategories = map[Category]bool{
	CategoryCriticalReasoning:     true,
	CategoryLogicalReasoning:      true,
	CategoryNumericalReasoning:    true,
	CategoryVerbalReasoning:       true,
	CategoryQuantitativeReasoning: true,
	CategoryGeneralKnowledge:      true,
	CategoryAnalyticalReasoning:   true,
	CategoryRC:                    true,
	CategorySpatialReasoning:      true,
	CategoryAbstractReasoning:     true,
}

// GeneralCategories are the categories handled by the general cleaning
// pipeline. RC has its own passage-aware pipeline; spatial and abstract
// reasoning are image-based and never sent to the model.
var GeneralCategories = []Category{
	CategoryCriticalReasoning,
	CategoryVerbalReasoning,
	CategoryNumericalReasoning,
	CategoryLogicalReasoning,
	CategoryQuantitativeReasoning,
	CategoryGeneralKnowledge,
	CategoryAnalyticalReasoning,
}

// DefaultDenylist is excluded when cleaning with the "all" keyword.
func DefaultDenylist() []Category {
	return []Category{CategoryRC, CategorySpatialReasoning, CategoryAbstractReasoning}
}

// ReportOrder is the fixed ordering used by the compilation report.
var ReportOrder = []Category{
	CategoryCriticalReasoning,
	CategoryLogicalReasoning,
	CategoryNumericalReasoning,
	CategoryVerbalReasoning,
	CategoryRC,
	CategorySpatialReasoning,
	CategoryAbstractReasoning,
}

// ParseCategory normalizes a raw category value to its canonical lowercase
// form. Empty input maps to CategoryUnknown; unrecognized values keep their
// normalized form so callers can flag them without losing information.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryUnknown
	}
	return Category(s)
}

func (c Category) Known() bool {
	return ValidCategories[c]
}

// Upper returns the category in the uppercase form used in file names.
func (c Category) Upper() string {
	return strings.ToUpper(string(c))
}

// ── Records ────────────────────────────────────────────────

// QuestionRecord is one assessment question plus its metadata. Identity is
// the ID; every other field may change during a cleaning pass.
type QuestionRecord struct {
	ID                string   `json:"id"`
	PassageID         *string  `json:"passage_id,omitempty"`
	Passage           *string  `json:"passage,omitempty"`
	Question          string   `json:"question"`
	Options           []string `json:"options,omitempty"`
	Answer            string   `json:"answer,omitempty"`
	AnswerExplanation string   `json:"answer_explanation,omitempty"`
	Category          Category `json:"category,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty"`
	UserResponse      string   `json:"user_response,omitempty"`
}

// NormalizedCategory returns the record's category in canonical form.
func (r QuestionRecord) NormalizedCategory() Category {
	return ParseCategory(string(r.Category))
}

// QuestionGroup is the grouped input shape used by raw interview-question
// exports: an array of groups, each holding a questions array.
type QuestionGroup struct {
	Topic     string   `json:"topic,omitempty"`
	Questions []string `json:"questions"`
}

// ── Filtering ──────────────────────────────────────────────

// FilterByCategory returns the subsequence of records matching target,
// preserving original relative order. The reserved target "all" selects
// every record whose category is not in the denylist. Matching is
// case-insensitive on both sides.
func FilterByCategory(records []QuestionRecord, target string, denylist []Category) []QuestionRecord {
	want := ParseCategory(target)

	denied := make(map[Category]bool, len(denylist))
	for _, c := range denylist {
		denied[ParseCategory(string(c))] = true
	}

	var out []QuestionRecord
	for _, r := range records {
		cat := r.NormalizedCategory()
		if string(want) == CategoryAll {
			if !denied[cat] {
				out = append(out, r)
			}
		} else if cat == want {
			out = append(out, r)
		}
	}
	return out
}
