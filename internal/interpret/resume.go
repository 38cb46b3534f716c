package interpret

import (
	"encoding/json"
	"strings"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// ParseResume extracts a ResumeDocument from assistant text. The document is
// expected as a single JSON object, usually embedded in explanatory prose or
// a fenced code block. Returns nil when no acceptable document is found, in
// which case the caller keeps its prior document.
func ParseResume(text string) *types.ResumeDocument {
	raw := ExtractJSONObject(CleanFences(text))
	if raw == "" {
		return nil
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}

	// A document without a name is noise, not a resume.
	if strings.TrimSpace(doc.ContactInfo.Name) == "" {
		return nil
	}

	if doc.Experience == nil {
		doc.Experience = []types.Experience{}
	}
	if doc.Education == nil {
		doc.Education = []types.Education{}
	}

	return &doc
}
