package interpret

import (
	"encoding/json"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// ParseFeedback extracts a scored evaluation from practice-mode assistant
// text. The evaluation arrives as a JSON object alongside the conversational
// reply. Returns nil when no evaluation is present, which is normal for the
// question-asking turns of a practice session.
func ParseFeedback(text string) *types.AnswerFeedback {
	raw := ExtractJSONObject(CleanFences(text))
	if raw == "" {
		return nil
	}

	var fb types.AnswerFeedback
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return nil
	}

	// A zero evaluation with no commentary is a stray JSON object, not
	// feedback.
	if fb.OverallScore == 0 && len(fb.Strengths) == 0 && len(fb.Improvements) == 0 {
		return nil
	}

	fb.OverallScore = clampScore(fb.OverallScore)
	fb.Structure = clampScore(fb.Structure)
	fb.Relevance = clampScore(fb.Relevance)
	fb.Clarity = clampScore(fb.Clarity)
	return &fb
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}
