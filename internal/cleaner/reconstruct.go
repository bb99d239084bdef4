package cleaner

import "github.com/assessdb/cleaner/internal/models"

// Reconstruct overlays the model's cleaned fields onto the original record.
// Identity and protected fields (id, category, difficulty, user_response,
// and passage_id when the source has one) always come from the original,
// regardless of what the model returned. The passage is taken from the
// reply only when the source record actually carries one.
func Reconstruct(original models.QuestionRecord, cleaned CleanedFields) models.QuestionRecord {
	out := models.QuestionRecord{
		ID:                original.ID,
		Question:          cleaned.Question,
		Options:           cleaned.Options,
		Answer:            cleaned.Answer,
		AnswerExplanation: cleaned.AnswerExplanation,
		Category:          original.NormalizedCategory(),
		Difficulty:        original.Difficulty,
		UserResponse:      original.UserResponse,
	}
	if out.Options == nil {
		out.Options = []string{}
	}
	if out.Difficulty == "" {
		out.Difficulty = "medium"
	}

	if original.PassageID != nil {
		id := *original.PassageID
		out.PassageID = &id
	}
	if original.Passage != nil {
		passage := *original.Passage
		if cleaned.HasPassage {
			passage = cleaned.Passage
		}
		out.Passage = &passage
	}

	return out
}
