// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ContentType identifies which CMS entity a proposed record belongs to.
type ContentType string

const (
	ContentPosition       ContentType = "position"
	ContentAccomplishment ContentType = "accomplishment"
	ContentSkill          ContentType = "skill"
	ContentTechnology     ContentType = "technology"
	ContentProject        ContentType = "project"
	ContentEducation      ContentType = "education"
	ContentCertification  ContentType = "certification"
	ContentCompany        ContentType = "company"
)

// ContentTypes lists every valid content type.
var ContentTypes = []ContentType{
	ContentPosition,
	ContentAccomplishment,
	ContentSkill,
	ContentTechnology,
	ContentProject,
	ContentEducation,
	ContentCertification,
	ContentCompany,
}

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// requiredFields maps each content type to the minimum field set a record
// needs before it may be marked ready.
var requiredFields = map[ContentType][]string{
	ContentPosition:       {"title", "company"},
	ContentAccomplishment: {"description"},
	ContentSkill:          {"name"},
	ContentTechnology:     {"name"},
	ContentProject:        {"name", "description"},
	ContentEducation:      {"degree", "institution"},
	ContentCertification:  {"name"},
	ContentCompany:        {"name"},
}

// RequiredFields returns the fields a record of type t must carry to be ready.
func RequiredFields(t ContentType) []string {
	return requiredFields[t]
}

// ContentStatus is the lifecycle state of a pending content record.
// Transitions only move forward: draft -> ready -> saved, or draft/ready -> error.
// A discarded record is removed from the list rather than transitioning.
type ContentStatus string

const (
	StatusDraft ContentStatus = "draft"
	StatusReady ContentStatus = "ready"
	StatusSaved ContentStatus = "saved"
	StatusError ContentStatus = "error"
)

// CanTransition reports whether moving from s to next is a legal forward step.
func (s ContentStatus) CanTransition(next ContentStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusReady || next == StatusError
	case StatusReady:
		return next == StatusSaved || next == StatusError
	default:
		return false
	}
}

// PendingContent is a CMS record proposed by the content-builder mode that is
// waiting for explicit user confirmation before being committed.
type PendingContent struct {
	ID                  string         `json:"id"`
	Type                ContentType    `json:"type"`
	Data                map[string]any `json:"data"`
	Status              ContentStatus  `json:"status"`
	DuplicateWarning    string         `json:"duplicate_warning,omitempty"`
	ClarificationNeeded []string       `json:"clarification_needed,omitempty"`
}

// NewPendingContent creates a draft record with a generated ID.
func NewPendingContent(t ContentType, data map[string]any) PendingContent {
	if data == nil {
		data = map[string]any{}
	}
	return PendingContent{
		ID:     uuid.NewString(),
		Type:   t,
		Data:   data,
		Status: StatusDraft,
	}
}

// MissingFields returns the required fields of the record's type that are
// absent or blank in its data.
func (p *PendingContent) MissingFields() []string {
	var missing []string
	for _, field := range RequiredFields(p.Type) {
		v, ok := p.Data[field]
		if !ok {
			missing = append(missing, field)
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// ClarificationQuestions builds one missing-field question per absent field.
func (p *PendingContent) ClarificationQuestions() []string {
	missing := p.MissingFields()
	questions := make([]string, 0, len(missing))
	for _, field := range missing {
		questions = append(questions, fmt.Sprintf("What is the %s for this %s?", field, p.Type))
	}
	return questions
}
