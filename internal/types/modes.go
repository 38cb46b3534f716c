// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

// ChatMode describes one conversational workflow. Modes share transport
// mechanics but differ in system prompt, response interpretation, and the
// artifacts they persist. Mode definitions are static configuration and are
// never mutated at runtime.
type ChatMode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	APIEndpoint string `json:"api_endpoint"`
	Enabled     bool   `json:"enabled"`
}

// Well-known mode IDs.
const (
	ModeChat           = "chat"
	ModePractice       = "practice"
	ModeResumeGen      = "resume-gen"
	ModeContentBuilder = "content-builder"
	ModeCopilot        = "copilot"
)
