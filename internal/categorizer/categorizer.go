// Package categorizer classifies raw interview questions into a fixed
// category set using the model, rewriting any natural company reference to
// a {company_name} placeholder along the way.
package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/assessdb/cleaner/internal/cleaner"
	"github.com/assessdb/cleaner/internal/models"
)

// Categories is the fixed set an interview question can be assigned to.
var Categories = []models.Category{
	models.Category("culture_fit"),
	models.Category("work_style"),
	models.Category("ethics"),
	models.Category("comprehensive"),
}

// DefaultCategory absorbs unknown labels returned by the model.
const DefaultCategory = models.Category("comprehensive")

const systemPrompt = "You are a helpful assistant classifying interview questions. Always respond with valid JSON only."

// Categorizer drives the sequential classification pass.
type Categorizer struct {
	llm      cleaner.LLMClient
	throttle cleaner.Throttle
	logger   zerolog.Logger

	// CallTimeout bounds each model call; zero means 30s.
	CallTimeout time.Duration
	// NewID mints record ids; defaults to uuid.NewString.
	NewID func() string
}

func New(llm cleaner.LLMClient, throttle cleaner.Throttle, logger zerolog.Logger) *Categorizer {
	return &Categorizer{llm: llm, throttle: throttle, logger: logger}
}

// Categorize flattens the grouped input and classifies each question in
// sequence. A failed question is logged and skipped; the run continues.
func (c *Categorizer) Categorize(ctx context.Context, groups []models.QuestionGroup) ([]models.QuestionRecord, error) {
	var questions []string
	for _, group := range groups {
		for _, q := range group.Questions {
			questions = append(questions, strings.TrimSpace(q))
		}
	}
	c.logger.Info().Int("count", len(questions)).Msg("starting categorization")

	timeout := c.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	newID := c.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	results := []models.QuestionRecord{}
	for i, question := range questions {
		record, err := c.categorizeOne(ctx, question, timeout)
		if err != nil {
			c.logger.Error().Err(err).Str("question", truncate(question, 80)).Msg("categorization failed")
		} else {
			record.ID = newID()
			results = append(results, *record)
			c.logger.Info().Int("n", i+1).Int("of", len(questions)).Msg("categorized")
		}

		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (c *Categorizer) categorizeOne(ctx context.Context, question string, timeout time.Duration) (*models.QuestionRecord, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.llm.Complete(callCtx, systemPrompt, buildPrompt(question))
	if err != nil {
		return nil, err
	}

	reply := cleaner.StripCodeFences(resp.Content)
	if !gjson.Valid(reply) {
		return nil, fmt.Errorf("reply is not valid JSON")
	}

	root := gjson.Parse(reply)
	text := root.Get("question").String()
	if text == "" {
		return nil, fmt.Errorf("reply has no question field")
	}

	category := models.ParseCategory(root.Get("category").String())
	if !validCategory(category) {
		c.logger.Warn().Str("category", string(category)).Msg("unknown category, defaulting to comprehensive")
		category = DefaultCategory
	}

	return &models.QuestionRecord{
		Question: text,
		Category: category,
	}, nil
}

func validCategory(c models.Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func buildPrompt(question string) string {
	var names []string
	for _, c := range Categories {
		names = append(names, "- "+string(c))
	}

	return fmt.Sprintf(`You are a helpful assistant classifying interview questions.

Task 1: Assign one of these categories to the question:
%s

Task 2: If the question naturally references a company (like "our company", "this company", or any specific company name), replace it with {company_name}.
If there is no natural reference, do not insert anything.

Return your answer as a JSON with two keys:
- "category": one of the above categories
- "question": the updated question (with placeholder if naturally needed)

Only return valid JSON. No explanation.
Question: "%s"`, strings.Join(names, "\n"), question)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
