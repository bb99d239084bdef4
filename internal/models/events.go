package models

import "time"

// ProcessEvent is one per-record entry in the processing log written
// alongside every cleaning run.
type ProcessEvent struct {
	QuestionID      string          `json:"question_id"`
	Category        Category        `json:"category,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	ChangesMade     map[string]bool `json:"changes_made,omitempty"`
	IssuesFound     []string        `json:"issues_found,omitempty"`
	CleaningSummary string          `json:"cleaning_summary,omitempty"`
	Error           string          `json:"error,omitempty"`
	Status          string          `json:"status,omitempty"`
}

// CleanResult summarizes one cleaning run over a single category (or "all").
type CleanResult struct {
	Category   string   `json:"category"`
	OutputFile string   `json:"output_file"`
	LogFile    string   `json:"log_file"`
	Total      int      `json:"total_processed"`
	Cleaned    int      `json:"successfully_cleaned"`
	Failed     int      `json:"failed"`
	FailedIDs  []string `json:"failed_questions,omitempty"`
}

// CompileResult summarizes a compilation pass: the compiled snapshot plus
// the per-category counts used for the consistency cross-check.
type CompileResult struct {
	OutputFile string           `json:"output_file"`
	Total      int              `json:"total_questions"`
	Counts     map[Category]int `json:"category_counts"`
}
