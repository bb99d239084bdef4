package categorizer

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessdb/cleaner/internal/cleaner"
	"github.com/assessdb/cleaner/internal/models"
)

type scriptedClient struct {
	replies []string
	errs    []error
	calls   int
}

func (s *scriptedClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (*cleaner.LLMResponse, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return &cleaner.LLMResponse{Content: s.replies[i]}, nil
}

func newTestCategorizer(llm cleaner.LLMClient) *Categorizer {
	c := New(llm, cleaner.NopThrottle{}, zerolog.Nop())
	n := 0
	c.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return c
}

func TestCategorize_FlattensGroupsAndMintsIDs(t *testing.T) {
	llm := &scriptedClient{replies: []string{
		`{"category": "culture_fit", "question": "Why do you want to work at {company_name}?"}`,
		`{"category": "ethics", "question": "Describe a time you faced an ethical dilemma."}`,
	}}
	c := newTestCategorizer(llm)

	groups := []models.QuestionGroup{
		{Questions: []string{" Why do you want to work at Acme? "}},
		{Questions: []string{"Describe a time you faced an ethical dilemma."}},
	}

	results, err := c.Categorize(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "id-1", results[0].ID)
	assert.Equal(t, models.Category("culture_fit"), results[0].Category)
	assert.Equal(t, "Why do you want to work at {company_name}?", results[0].Question)
	assert.Equal(t, models.Category("ethics"), results[1].Category)
}

func TestCategorize_UnknownCategoryDefaultsToComprehensive(t *testing.T) {
	llm := &scriptedClient{replies: []string{
		`{"category": "something_else", "question": "A question."}`,
	}}
	c := newTestCategorizer(llm)

	results, err := c.Categorize(context.Background(), []models.QuestionGroup{
		{Questions: []string{"A question."}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, DefaultCategory, results[0].Category)
}

func TestCategorize_FailedReplySkipped(t *testing.T) {
	llm := &scriptedClient{replies: []string{
		"not json at all",
		`{"category": "work_style", "question": "How do you organize your day?"}`,
	}}
	c := newTestCategorizer(llm)

	results, err := c.Categorize(context.Background(), []models.QuestionGroup{
		{Questions: []string{"bad one", "good one"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.Category("work_style"), results[0].Category)
}

func TestCategorize_FencedReplyAccepted(t *testing.T) {
	llm := &scriptedClient{replies: []string{
		"```json\n{\"category\": \"ethics\", \"question\": \"Q\"}\n```",
	}}
	c := newTestCategorizer(llm)

	results, err := c.Categorize(context.Background(), []models.QuestionGroup{
		{Questions: []string{"Q"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
}
