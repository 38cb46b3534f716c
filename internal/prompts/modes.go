package prompts

import (
	"fmt"

	"github.com/jonkmatsumo/interview-agent/internal/cms"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

const promptFile = "interview.json"

// systemKeys maps each chat mode to its system prompt key.
var systemKeys = map[string]string{
	types.ModeChat:           "chat-system",
	types.ModePractice:       "practice-system",
	types.ModeResumeGen:      "resume-system",
	types.ModeContentBuilder: "content-builder-system",
	types.ModeCopilot:        "copilot-system",
}

// SystemPrompt builds the system prompt for a mode from the portfolio
// snapshot and the request's job context.
func SystemPrompt(modeID string, snap *cms.ContextSnapshot, req types.ChatRequest) (string, error) {
	key, ok := systemKeys[modeID]
	if !ok {
		return "", fmt.Errorf("no system prompt for mode %q", modeID)
	}
	template, err := Get(promptFile, key)
	if err != nil {
		return "", err
	}

	profile := ""
	if snap != nil {
		profile = snap.ProfileText()
	}

	jobSection := ""
	if req.JobDescription != "" || req.JobTitle != "" {
		jobTemplate, err := Get(promptFile, "job-section")
		if err != nil {
			return "", err
		}
		jobSection = Format(jobTemplate, map[string]string{
			"JobTitle":       orUnspecified(req.JobTitle),
			"Company":        orUnspecified(req.Company),
			"JobDescription": req.JobDescription,
		})
	}

	return Format(template, map[string]string{
		"Profile":    profile,
		"JobSection": jobSection,
	}), nil
}

func orUnspecified(s string) string {
	if s == "" {
		return "(unspecified)"
	}
	return s
}
