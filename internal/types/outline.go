// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

// CopilotOutline is a STAR-format answer outline extracted from the most
// recent assistant message in copilot mode. It is recomputed from scratch on
// every message change, never accumulated.
type CopilotOutline struct {
	Title              string   `json:"title"`
	Company            string   `json:"company,omitempty"`
	Situation          []string `json:"situation"`
	Task               []string `json:"task"`
	Action             []string `json:"action"`
	Result             []string `json:"result"`
	RelatedExperiences []string `json:"related_experiences"`
	Keywords           []string `json:"keywords"`
}

// HasContent reports whether the outline carries anything worth showing:
// either a title or at least one STAR bullet.
func (o *CopilotOutline) HasContent() bool {
	if o == nil {
		return false
	}
	if o.Title != "" {
		return true
	}
	return len(o.Situation)+len(o.Task)+len(o.Action)+len(o.Result) > 0
}
