package cleaner

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/assessdb/cleaner/internal/models"
)

var categoryInstructions = map[models.Category]string{
	models.CategoryCriticalReasoning:     "Ensure logical reasoning is sound and the conclusion follows from the premises.",
	models.CategoryVerbalReasoning:       "Check grammar, vocabulary, and language usage accuracy.",
	models.CategoryNumericalReasoning:    "Verify mathematical calculations and ensure the answer is correct.",
	models.CategoryLogicalReasoning:      "Validate logical sequences and reasoning patterns.",
	models.CategoryQuantitativeReasoning: "Check mathematical concepts and problem-solving accuracy.",
	models.CategoryGeneralKnowledge:      "Verify factual accuracy and current information.",
	models.CategoryAnalyticalReasoning:   "Ensure the logical analysis and problem-solving approach is correct.",
}

const defaultInstruction = "Verify question accuracy and clarity."

// simplifiedQuestion is the subset of a record the model is shown. The
// fields the model is not allowed to alter (id, user_response) are left out
// entirely.
type simplifiedQuestion struct {
	Passage           string   `json:"passage,omitempty"`
	Question          string   `json:"question"`
	Options           []string `json:"options"`
	Answer            string   `json:"answer"`
	AnswerExplanation string   `json:"answer_explanation"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"`
}

func simplify(r models.QuestionRecord, includePassage bool) simplifiedQuestion {
	s := simplifiedQuestion{
		Question:          r.Question,
		Options:           r.Options,
		Answer:            r.Answer,
		AnswerExplanation: r.AnswerExplanation,
		Category:          string(r.Category),
		Difficulty:        r.Difficulty,
	}
	if s.Options == nil {
		s.Options = []string{}
	}
	if s.Difficulty == "" {
		s.Difficulty = "medium"
	}
	if includePassage && r.Passage != nil {
		s.Passage = *r.Passage
	}
	return s
}

func marshalIndent(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return buf.String()
}

// GeneralSystemPrompt is the system prompt for non-RC categories.
func GeneralSystemPrompt(cat models.Category) string {
	return fmt.Sprintf("You are an expert %s question validator. Always respond with valid JSON only.", cat)
}

// RCSystemPrompt is the system prompt for reading-comprehension questions.
func RCSystemPrompt() string {
	return "You are an expert RC question cleaner. Always respond with valid JSON only. Never include markdown formatting or extra text."
}

// BuildGeneralPrompt renders the cleaning prompt for a non-RC question.
func BuildGeneralPrompt(r models.QuestionRecord) string {
	cat := r.NormalizedCategory()
	instruction, ok := categoryInstructions[cat]
	if !ok {
		instruction = defaultInstruction
	}

	return fmt.Sprintf(`You are an expert question validator for %s questions.

ORIGINAL QUESTION:
%s
TASKS:
1. Check if the question is clear and well-formed
2. Verify all options are relevant and appropriate
3. Confirm the answer is correct
4. Ensure the answer explanation is accurate and helpful
5. %s
6. Fix any issues found

RESPOND WITH VALID JSON IN THIS EXACT FORMAT and update the fields according to the cleaning done:
{
  "cleaned_question": {
    "question": "CLEANED QUESTION TEXT",
    "options": ["option1", "option2", "option3", "option4"],
    "answer": "CORRECT ANSWER",
    "answer_explanation": "CLEAR EXPLANATION"
  },
  "changes_made": {
    "question_modified": true,
    "options_modified": false,
    "answer_corrected": false,
    "explanation_improved": false
  },
  "issues_found": ["list every issue found, empty if none"],
  "cleaning_summary": "small summary of the changes and cleaning done"
}

IMPORTANT: Return only valid JSON. No additional text.`, cat, marshalIndent(simplify(r, false)), instruction)
}

// BuildRCPrompt renders the cleaning prompt for a reading-comprehension
// question, passage included.
func BuildRCPrompt(r models.QuestionRecord) string {
	return fmt.Sprintf(`You are an expert RC question cleaner. Clean and verify this RC question:

ORIGINAL QUESTION DATA:
%s
TASKS:
1. Clean the passage by removing ads, explanations, unrelated content
2. Verify the question is answerable from the cleaned passage
3. Check the options are appropriate and relevant
4. Confirm the answer is correct and based on the passage
5. Verify the answer explanation is accurate
6. Fix any issues found

RESPOND WITH VALID JSON IN THIS EXACT FORMAT and update the fields according to the cleaning done:
{
  "cleaned_question": {
    "passage": "CLEANED PASSAGE TEXT",
    "question": "QUESTION TEXT",
    "options": ["option1", "option2", "option3", "option4"],
    "answer": "CORRECT ANSWER",
    "answer_explanation": "EXPLANATION TEXT"
  },
  "changes_made": {
    "passage_cleaned": true,
    "question_modified": false,
    "options_modified": false,
    "answer_corrected": false,
    "explanation_improved": false
  },
  "issues_found": ["list every issue found, empty if none"],
  "cleaning_summary": "small summary of the changes and cleaning done"
}

IMPORTANT: Return only valid JSON. No additional text before or after.`, marshalIndent(simplify(r, true)))
}
