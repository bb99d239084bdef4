package cleaner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/rs/zerolog"

	"github.com/assessdb/cleaner/internal/config"
)

// LLMClient is the interface every cleaning backend satisfies.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw reply content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// NewClient selects a backend from configuration: the claude CLI for local
// runs, a mock for tests and dry runs, or the Anthropic API.
func NewClient(cfg *config.Config, logger zerolog.Logger) LLMClient {
	switch {
	case cfg.UseCLI:
		logger.Info().Str("cli", cfg.CLIPath).Msg("cleaner using claude CLI")
		return NewCLIClient(cfg.CLIPath)
	case cfg.Mock:
		logger.Info().Msg("cleaner using mock replies")
		return NewMockClient()
	default:
		logger.Info().Str("model", cfg.Model).Msg("cleaner using Anthropic API")
		return NewAPIClient(cfg.APIKey, cfg.Model, logger)
	}
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
	logger zerolog.Logger
}

func NewAPIClient(apiKey, model string, logger zerolog.Logger) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &APIClient{client: &client, model: model, logger: logger}
}

func (c *APIClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4000,
		Temperature: param.NewOpt(0.1),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			c.logger.Warn().Dur("backoff", sleepDuration).Int("attempt", attempt+1).Msg("retrying Anthropic API call")
			select {
			case <-time.After(sleepDuration):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		c.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Anthropic API call failed")
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── CLIClient — claude CLI for local runs ──────────────────

// CLIClient shells out to the claude CLI. Uses an existing local plan, no
// API key needed.
type CLIClient struct {
	cliPath string
}

func NewCLIClient(cliPath string) *CLIClient {
	return &CLIClient{cliPath: cliPath}
}

func (c *CLIClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	cmd := exec.CommandContext(ctx,
		c.cliPath,
		"--print",
		"--output-format", "text",
		"--system-prompt", systemPrompt,
		"--max-turns", "1",
	)

	cmd.Stdin = strings.NewReader(userPrompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("claude CLI error: %w\nstderr: %s", err, stderr.String())
	}

	responseText := strings.TrimSpace(stdout.String())
	if responseText == "" {
		return nil, fmt.Errorf("claude CLI returned empty response")
	}

	return &LLMResponse{Content: responseText}, nil
}

// ── MockClient — Local Development ─────────────────────────

// MockClient echoes the prompt's question back as an already-clean reply.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	mockJSON := `{
  "cleaned_question": {
    "question": "[Mock] The question text after cleaning.",
    "options": ["option1", "option2", "option3", "option4"],
    "answer": "option1",
    "answer_explanation": "[Mock] Explanation of why option1 is correct."
  },
  "changes_made": {
    "question_modified": false,
    "options_modified": false,
    "answer_corrected": false,
    "explanation_improved": false
  },
  "issues_found": [],
  "cleaning_summary": "No changes required."
}`
	return &LLMResponse{Content: mockJSON, PromptTokens: 500, OutputTokens: 200}, nil
}
