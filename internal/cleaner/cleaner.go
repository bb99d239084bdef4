// Package cleaner runs per-record model-driven cleaning passes over the
// question database. Each run is fully sequential: one model call per
// record, a cooperative delay between calls, and per-record failure
// isolation — a bad reply drops that record and the run continues.
package cleaner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

// Options configures a cleaning run.
type Options struct {
	OutputDir   string
	CallTimeout time.Duration
	Denylist    []models.Category
	Now         func() time.Time
}

// Cleaner drives the per-record cleaning pipelines.
type Cleaner struct {
	llm      LLMClient
	throttle Throttle
	logger   zerolog.Logger
	opts     Options

	events []models.ProcessEvent
}

func New(llm LLMClient, throttle Throttle, logger zerolog.Logger, opts Options) *Cleaner {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 30 * time.Second
	}
	if opts.Denylist == nil {
		opts.Denylist = models.DefaultDenylist()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cleaner{llm: llm, throttle: throttle, logger: logger, opts: opts}
}

// Events returns the per-record processing log accumulated so far.
func (c *Cleaner) Events() []models.ProcessEvent {
	return c.events
}

// ── General pipeline ───────────────────────────────────────

// CleanGeneral cleans every record matching category (or "all", which
// excludes the denylist) and writes a cleaned snapshot plus a processing
// log. Failed records are dropped from the snapshot and listed by id.
func (c *Cleaner) CleanGeneral(ctx context.Context, records []models.QuestionRecord, category string) (*models.CleanResult, error) {
	selected := models.FilterByCategory(records, category, c.opts.Denylist)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no questions found for category: %s", category)
	}
	c.logger.Info().Int("count", len(selected)).Str("category", category).Msg("starting general cleaning")

	return c.run(ctx, selected, category, func(r models.QuestionRecord) (string, string) {
		return GeneralSystemPrompt(r.NormalizedCategory()), BuildGeneralPrompt(r)
	})
}

// CleanRC cleans every reading-comprehension record, passage included.
func (c *Cleaner) CleanRC(ctx context.Context, records []models.QuestionRecord) (*models.CleanResult, error) {
	selected := models.FilterByCategory(records, string(models.CategoryRC), nil)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no RC questions found")
	}
	c.logger.Info().Int("count", len(selected)).Int("total", len(records)).Msg("starting RC cleaning")

	return c.run(ctx, selected, string(models.CategoryRC), func(r models.QuestionRecord) (string, string) {
		return RCSystemPrompt(), BuildRCPrompt(r)
	})
}

// ── Shared loop ────────────────────────────────────────────

func (c *Cleaner) run(ctx context.Context, selected []models.QuestionRecord, category string, prompts func(models.QuestionRecord) (string, string)) (*models.CleanResult, error) {
	var cleaned []models.QuestionRecord
	var failedIDs []string

	for i, record := range selected {
		id := record.ID
		if id == "" {
			id = fmt.Sprintf("question_%d", i+1)
		}
		c.logger.Info().Int("n", i+1).Int("of", len(selected)).Str("id", id).Msg("processing")

		system, user := prompts(record)
		out, err := c.cleanOne(ctx, record, id, system, user)
		if err != nil {
			failedIDs = append(failedIDs, id)
		} else {
			cleaned = append(cleaned, *out)
		}

		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		if (i+1)%10 == 0 {
			c.logger.Info().Int("done", i+1).Int("of", len(selected)).Msg("progress")
		}
	}

	result := &models.CleanResult{
		Category:  category,
		Total:     len(selected),
		Cleaned:   len(cleaned),
		Failed:    len(failedIDs),
		FailedIDs: failedIDs,
	}
	if cleaned == nil {
		cleaned = []models.QuestionRecord{}
	}

	ts := store.Timestamp(c.opts.Now())
	result.OutputFile = filepath.Join(c.opts.OutputDir, store.CleanedFile(category, ts))
	result.LogFile = filepath.Join(c.opts.OutputDir, store.ProcessingLogFile(category, ts))

	if err := store.WriteJSON(result.OutputFile, cleaned); err != nil {
		return nil, err
	}
	if err := store.WriteJSON(result.LogFile, c.events); err != nil {
		return nil, err
	}

	return result, nil
}

// cleanOne sends a single record to the model and reconstructs the full
// record from the reply. Every outcome is recorded in the processing log.
func (c *Cleaner) cleanOne(ctx context.Context, record models.QuestionRecord, id, systemPrompt, userPrompt string) (*models.QuestionRecord, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.opts.CallTimeout)
	defer cancel()

	resp, err := c.llm.Complete(callCtx, systemPrompt, userPrompt)
	if err != nil {
		c.fail(record, id, fmt.Sprintf("model call failed: %v", err))
		return nil, err
	}

	reply, err := ParseCleanReply(resp.Content)
	if err != nil {
		c.logger.Error().Err(err).Str("id", id).Str("reply", truncate(resp.Content, 200)).Msg("reply parsing failed")
		c.fail(record, id, fmt.Sprintf("reply parsing failed: %v", err))
		return nil, err
	}

	out := Reconstruct(record, reply.Cleaned)

	c.events = append(c.events, models.ProcessEvent{
		QuestionID:      id,
		Category:        record.NormalizedCategory(),
		Timestamp:       c.opts.Now(),
		ChangesMade:     reply.ChangesMade,
		IssuesFound:     reply.IssuesFound,
		CleaningSummary: reply.CleaningSummary,
	})
	c.logger.Info().Str("id", id).Msg("cleaned")

	return &out, nil
}

func (c *Cleaner) fail(record models.QuestionRecord, id, msg string) {
	c.events = append(c.events, models.ProcessEvent{
		QuestionID: id,
		Category:   record.NormalizedCategory(),
		Timestamp:  c.opts.Now(),
		Error:      msg,
		Status:     "failed",
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
