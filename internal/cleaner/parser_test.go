package cleaner

import (
	"strings"
	"testing"
)

func validReplyJSON() string {
	return `{
  "cleaned_question": {
    "question": "What is the capital of France?",
    "options": ["Paris", "London", "Berlin", "Madrid"],
    "answer": "Paris",
    "answer_explanation": "Paris is the capital of France."
  },
  "changes_made": {
    "question_modified": true,
    "options_modified": false,
    "answer_corrected": false,
    "explanation_improved": true
  },
  "issues_found": ["trailing whitespace in question"],
  "cleaning_summary": "Trimmed whitespace and tightened the explanation."
}`
}

func TestParseCleanReply_ValidJSON(t *testing.T) {
	reply, err := ParseCleanReply(validReplyJSON())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if reply.Cleaned.Question != "What is the capital of France?" {
		t.Errorf("unexpected question: %q", reply.Cleaned.Question)
	}
	if len(reply.Cleaned.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(reply.Cleaned.Options))
	}
	if reply.Cleaned.Answer != "Paris" {
		t.Errorf("unexpected answer: %q", reply.Cleaned.Answer)
	}
	if !reply.ChangesMade["question_modified"] {
		t.Error("expected question_modified to be true")
	}
	if reply.ChangesMade["options_modified"] {
		t.Error("expected options_modified to be false")
	}
	if len(reply.IssuesFound) != 1 {
		t.Errorf("expected 1 issue, got %d", len(reply.IssuesFound))
	}
	if reply.CleaningSummary == "" {
		t.Error("expected a cleaning summary")
	}
	if reply.Cleaned.HasPassage {
		t.Error("expected no passage in a general reply")
	}
}

func TestParseCleanReply_MarkdownFences(t *testing.T) {
	for _, fence := range []string{"```json", "```"} {
		input := fence + "\n" + validReplyJSON() + "\n```"

		reply, err := ParseCleanReply(input)
		if err != nil {
			t.Fatalf("fence %q: expected no error, got: %v", fence, err)
		}
		if reply.Cleaned.Question == "" {
			t.Errorf("fence %q: question lost in parsing", fence)
		}
	}
}

func TestParseCleanReply_PassagePresent(t *testing.T) {
	input := `{
  "cleaned_question": {
    "passage": "The cleaned passage text.",
    "question": "What does the author imply?",
    "options": ["a", "b", "c", "d"],
    "answer": "a",
    "answer_explanation": "See paragraph two."
  }
}`

	reply, err := ParseCleanReply(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !reply.Cleaned.HasPassage {
		t.Fatal("expected passage to be detected")
	}
	if reply.Cleaned.Passage != "The cleaned passage text." {
		t.Errorf("unexpected passage: %q", reply.Cleaned.Passage)
	}
}

func TestParseCleanReply_InvalidJSON(t *testing.T) {
	_, err := ParseCleanReply("I cleaned the question for you! Here it is: ...")
	if err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
}

func TestParseCleanReply_MissingCleanedQuestion(t *testing.T) {
	_, err := ParseCleanReply(`{"changes_made": {}}`)
	if err == nil {
		t.Fatal("expected error when cleaned_question is absent")
	}
	if !strings.Contains(err.Error(), "cleaned_question") {
		t.Errorf("error should mention cleaned_question, got: %v", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"  {}  ", "{}"},
		{"{}", "{}"},
	}
	for _, tc := range cases {
		if got := StripCodeFences(tc.in); got != tc.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
