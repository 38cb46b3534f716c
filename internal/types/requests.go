// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// ChatRequest is the body of a POST to a mode's chat endpoint. Messages carry
// the ordered history ending with the new user turn.
type ChatRequest struct {
	Messages       []Message `json:"messages" validate:"required,min=1"`
	JobDescription string    `json:"job_description,omitempty"`
	JobTitle       string    `json:"job_title,omitempty"`
	Company        string    `json:"company,omitempty"`
}

// CommitContentRequest is the body of a POST to the content persistence
// endpoint: one confirmed pending record to write to the CMS.
type CommitContentRequest struct {
	Type ContentType    `json:"type" validate:"required"`
	Data map[string]any `json:"data" validate:"required"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CommitContentRequest using the validator.
func (r *CommitContentRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	if !r.Type.Valid() {
		return &ErrUnknownContentType{Type: string(r.Type)}
	}
	return nil
}

// ErrUnknownContentType indicates a commit request named a content type the
// system does not recognize.
type ErrUnknownContentType struct {
	Type string
}

func (e *ErrUnknownContentType) Error() string {
	return "unknown content type: " + e.Type
}
