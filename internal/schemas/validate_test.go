package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

func validResumeJSON(t *testing.T) []byte {
	t.Helper()
	doc := types.ResumeDocument{
		ContactInfo: types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Summary:     "Backend engineer with ten years of Go experience.",
		Experience: []types.Experience{
			{
				Title:     "Senior Engineer",
				Company:   "Acme",
				StartDate: "2019-03",
				Current:   true,
				Bullets:   []string{"Led migration to Kubernetes"},
			},
		},
		Skills:    types.SkillGroups{Technical: []string{"Go", "PostgreSQL"}},
		Education: []types.Education{{Degree: "BSc Computer Science", Institution: "State University"}},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestValidateResumeDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidateResumeDocument(validResumeJSON(t)))
}

func TestValidateResumeDocument_MissingName(t *testing.T) {
	raw := []byte(`{
		"contactInfo": {},
		"experience": [],
		"skills": {},
		"education": []
	}`)

	err := ValidateResumeDocument(raw)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Errors[0].Field, "contactInfo")
}

func TestValidateResumeDocument_ExperienceNeedsBullets(t *testing.T) {
	raw := []byte(`{
		"contactInfo": {"name": "Jane Doe"},
		"experience": [{"title": "Engineer", "company": "Acme", "startDate": "2020-01", "bullets": []}],
		"skills": {},
		"education": []
	}`)

	err := ValidateResumeDocument(raw)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	found := false
	for _, fe := range ve.Errors {
		if fe.Field == "experience.0.bullets" {
			found = true
		}
	}
	assert.True(t, found, "expected a violation on experience.0.bullets, got %v", ve.Errors)
}

func TestValidateResumeDocument_NotJSON(t *testing.T) {
	err := ValidateResumeDocument([]byte("this is prose, not JSON"))
	require.Error(t, err)

	// Prose is a load failure, not a list of field violations.
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "Go"}`))

	err := ValidateJSONString(schema, `{"name": 42}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)
}
