// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

// AnswerFeedback is the scored evaluation of a practice-interview answer.
// Scores use a 0-10 scale.
type AnswerFeedback struct {
	OverallScore   float64  `json:"overall_score"`
	Structure      float64  `json:"structure"`
	Relevance      float64  `json:"relevance"`
	Clarity        float64  `json:"clarity"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	Suggestions    []string `json:"suggestions"`
	UsedSTARMethod bool     `json:"used_star_method"`
	ImprovedAnswer string   `json:"improved_answer,omitempty"`
}

// Grade maps the overall score to a display letter grade. The grade is
// derived on demand and is not part of the feedback's identity.
func (f *AnswerFeedback) Grade() string {
	return GradeForScore(f.OverallScore)
}

// GradeForScore is the fixed step function from score to letter grade.
func GradeForScore(score float64) string {
	switch {
	case score >= 9:
		return "A+"
	case score >= 8:
		return "A"
	case score >= 7:
		return "B+"
	case score >= 6:
		return "B"
	case score >= 5:
		return "C"
	default:
		return "D"
	}
}
