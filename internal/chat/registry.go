package chat

import "github.com/jonkmatsumo/interview-agent/internal/types"

// SnapshotKeyPrefix scopes conversation snapshots in durable storage. Each
// mode persists under its own key so switching modes never cross-contaminates
// history.
const SnapshotKeyPrefix = "interview-chat-"

// SnapshotKey returns the storage key for a mode's conversation snapshot.
func SnapshotKey(modeID string) string {
	return SnapshotKeyPrefix + modeID
}

// DefaultModes is the static table of available chat modes. Controllers and
// the UI key off mode IDs; the table itself is never mutated.
func DefaultModes() []types.ChatMode {
	return []types.ChatMode{
		{
			ID:          types.ModeChat,
			Name:        "Chat",
			Description: "Ask anything about my background and experience",
			Icon:        "💬",
			APIEndpoint: "/api/interview/chat",
			Enabled:     true,
		},
		{
			ID:          types.ModePractice,
			Name:        "Interview Practice",
			Description: "Practice behavioral questions and get scored feedback",
			Icon:        "🎯",
			APIEndpoint: "/api/interview/practice",
			Enabled:     true,
		},
		{
			ID:          types.ModeResumeGen,
			Name:        "Resume Generator",
			Description: "Generate a resume tailored to a target job",
			Icon:        "📄",
			APIEndpoint: "/api/interview/resume-gen",
			Enabled:     true,
		},
		{
			ID:          types.ModeContentBuilder,
			Name:        "Content Builder",
			Description: "Turn conversation into structured CMS records",
			Icon:        "🧱",
			APIEndpoint: "/api/interview/content-builder",
			Enabled:     true,
		},
		{
			ID:          types.ModeCopilot,
			Name:        "Interview Copilot",
			Description: "Live STAR outlines for interview questions",
			Icon:        "🧭",
			APIEndpoint: "/api/interview/copilot",
			Enabled:     true,
		},
	}
}

// ModeByID looks up a mode definition in the default registry.
func ModeByID(id string) (types.ChatMode, bool) {
	for _, mode := range DefaultModes() {
		if mode.ID == id {
			return mode, true
		}
	}
	return types.ChatMode{}, false
}

// EnabledModes returns only the modes the UI should offer.
func EnabledModes() []types.ChatMode {
	var enabled []types.ChatMode
	for _, mode := range DefaultModes() {
		if mode.Enabled {
			enabled = append(enabled, mode)
		}
	}
	return enabled
}
