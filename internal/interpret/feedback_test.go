package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedback_ScoredEvaluation(t *testing.T) {
	text := `Good answer overall. Here's my evaluation:

{"overall_score":8.5,"structure":9,"relevance":8,"clarity":8,
 "strengths":["Clear metric"],"improvements":["Quantify the team size"],
 "suggestions":["Open with the result"],"used_star_method":true,
 "improved_answer":"When our checkout..."}

Want to try another question?`

	fb := ParseFeedback(text)
	require.NotNil(t, fb)
	assert.InDelta(t, 8.5, fb.OverallScore, 0.001)
	assert.True(t, fb.UsedSTARMethod)
	assert.Equal(t, "A", fb.Grade())
	assert.Equal(t, []string{"Clear metric"}, fb.Strengths)
}

func TestParseFeedback_ClampsOutOfRangeScores(t *testing.T) {
	text := `{"overall_score":12,"structure":-3,"relevance":5,"clarity":5,"strengths":["x"],"improvements":[],"suggestions":[]}`

	fb := ParseFeedback(text)
	require.NotNil(t, fb)
	assert.Equal(t, 10.0, fb.OverallScore)
	assert.Equal(t, 0.0, fb.Structure)
}

func TestParseFeedback_QuestionTurnHasNoFeedback(t *testing.T) {
	assert.Nil(t, ParseFeedback("Tell me about a time you disagreed with a teammate."))
	assert.Nil(t, ParseFeedback(""))
	// A stray empty object is not an evaluation.
	assert.Nil(t, ParseFeedback(`{"unrelated":true}`))
}
