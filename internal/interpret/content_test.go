package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

func TestParseContent_CompleteProposalIsReady(t *testing.T) {
	text := `I can add that position for you. Here's what I captured:

{"proposals":[{"type":"position","data":{"title":"Staff Engineer","company":"Acme","startDate":"2021-03"}}]}

Say "save" to confirm.`

	records := ParseContent(text)
	require.Len(t, records, 1)
	assert.Equal(t, types.ContentPosition, records[0].Type)
	assert.Equal(t, types.StatusReady, records[0].Status)
	assert.Empty(t, records[0].ClarificationNeeded)
}

func TestParseContent_SkillMissingNameStaysDraft(t *testing.T) {
	text := `{"proposals":[{"type":"skill","data":{"category":"backend"}}]}`

	records := ParseContent(text)
	require.Len(t, records, 1)
	assert.NotEqual(t, types.StatusReady, records[0].Status)
	assert.NotEmpty(t, records[0].ClarificationNeeded)
}

func TestParseContent_DuplicateWarningDoesNotBlockReady(t *testing.T) {
	text := `{"proposals":[{"type":"skill","data":{"name":"Go"},"duplicate_warning":"A skill named Go already exists"}]}`

	records := ParseContent(text)
	require.Len(t, records, 1)
	assert.Equal(t, types.StatusReady, records[0].Status)
	assert.Equal(t, "A skill named Go already exists", records[0].DuplicateWarning)
}

func TestParseContent_SingleProposalWithoutEnvelope(t *testing.T) {
	text := `{"type":"technology","data":{"name":"Terraform"}}`

	records := ParseContent(text)
	require.Len(t, records, 1)
	assert.Equal(t, types.ContentTechnology, records[0].Type)
	assert.Equal(t, types.StatusReady, records[0].Status)
}

func TestParseContent_UnknownTypeBecomesError(t *testing.T) {
	text := `{"proposals":[{"type":"hobby","data":{"name":"chess"}}]}`

	records := ParseContent(text)
	require.Len(t, records, 1)
	assert.Equal(t, types.StatusError, records[0].Status)
	assert.NotEmpty(t, records[0].ClarificationNeeded)
}

func TestParseContent_NoStructure(t *testing.T) {
	assert.Nil(t, ParseContent("Tell me more about that role first."))
	assert.Nil(t, ParseContent(""))
}

func TestParseContent_MultipleProposals(t *testing.T) {
	text := `{"proposals":[
		{"type":"skill","data":{"name":"Go"}},
		{"type":"certification","data":{"name":"CKA","issuer":"CNCF"}}
	]}`

	records := ParseContent(text)
	require.Len(t, records, 2)
	assert.Equal(t, types.StatusReady, records[0].Status)
	assert.Equal(t, types.StatusReady, records[1].Status)
	assert.NotEqual(t, records[0].ID, records[1].ID)
}
