package cleaner

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// CleanedFields is what the model returned for the fields it may alter.
type CleanedFields struct {
	Passage           string
	HasPassage        bool
	Question          string
	Options           []string
	Answer            string
	AnswerExplanation string
}

// CleanReply is the parsed model reply for one record.
type CleanReply struct {
	Cleaned         CleanedFields
	ChangesMade     map[string]bool
	IssuesFound     []string
	CleaningSummary string
}

// ParseCleanReply parses a model reply, tolerating code-fence wrappers.
// Replies missing a cleaned_question object are rejected; extra fields are
// ignored.
func ParseCleanReply(responseBody string) (*CleanReply, error) {
	cleaned := StripCodeFences(responseBody)

	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("reply is not valid JSON")
	}

	root := gjson.Parse(cleaned)
	cq := root.Get("cleaned_question")
	if !cq.IsObject() {
		return nil, fmt.Errorf("reply has no cleaned_question object")
	}

	reply := &CleanReply{
		ChangesMade:     map[string]bool{},
		CleaningSummary: root.Get("cleaning_summary").String(),
	}

	reply.Cleaned.Question = cq.Get("question").String()
	reply.Cleaned.Answer = cq.Get("answer").String()
	reply.Cleaned.AnswerExplanation = cq.Get("answer_explanation").String()
	if passage := cq.Get("passage"); passage.Exists() {
		reply.Cleaned.Passage = passage.String()
		reply.Cleaned.HasPassage = true
	}
	for _, opt := range cq.Get("options").Array() {
		reply.Cleaned.Options = append(reply.Cleaned.Options, opt.String())
	}

	root.Get("changes_made").ForEach(func(key, value gjson.Result) bool {
		reply.ChangesMade[key.String()] = value.Bool()
		return true
	})
	for _, issue := range root.Get("issues_found").Array() {
		reply.IssuesFound = append(reply.IssuesFound, issue.String())
	}

	return reply, nil
}

// StripCodeFences removes a markdown code-fence wrapper, if present.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
