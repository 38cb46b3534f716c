package interpret

import (
	"encoding/json"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// contentProposal is the wire shape the content-builder prompt asks the model
// to emit for each proposed CMS record.
type contentProposal struct {
	Type             string         `json:"type"`
	Data             map[string]any `json:"data"`
	DuplicateWarning string         `json:"duplicate_warning,omitempty"`
}

// proposalEnvelope allows the model to batch several records in one reply.
type proposalEnvelope struct {
	Proposals []contentProposal `json:"proposals"`
}

// ParseContent extracts proposed CMS records from content-builder assistant
// text. Each proposal becomes a PendingContent draft; a record with all of
// its type's required fields is escalated to ready, otherwise it stays draft
// with per-field clarification questions. A duplicate warning annotates the
// record but never blocks readiness. Unknown content types produce an error
// record so the proposal stays visible instead of vanishing.
func ParseContent(text string) []types.PendingContent {
	raw := ExtractJSONObject(CleanFences(text))
	if raw == "" {
		return nil
	}

	proposals := decodeProposals(raw)
	if len(proposals) == 0 {
		return nil
	}

	records := make([]types.PendingContent, 0, len(proposals))
	for _, p := range proposals {
		records = append(records, buildRecord(p))
	}
	return records
}

func decodeProposals(raw string) []contentProposal {
	var envelope proposalEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && len(envelope.Proposals) > 0 {
		return envelope.Proposals
	}

	var single contentProposal
	if err := json.Unmarshal([]byte(raw), &single); err == nil && single.Type != "" {
		return []contentProposal{single}
	}
	return nil
}

func buildRecord(p contentProposal) types.PendingContent {
	record := types.NewPendingContent(types.ContentType(p.Type), p.Data)
	record.DuplicateWarning = p.DuplicateWarning

	if !record.Type.Valid() {
		record.Status = types.StatusError
		record.ClarificationNeeded = []string{"What kind of record is this? Unrecognized type: " + p.Type}
		return record
	}

	if missing := record.MissingFields(); len(missing) > 0 {
		record.ClarificationNeeded = record.ClarificationQuestions()
		return record
	}

	record.Status = types.StatusReady
	return record
}
