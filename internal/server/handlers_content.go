package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonkmatsumo/interview-agent/internal/server/middleware"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// commitContentResponse is the body returned after a successful commit.
type commitContentResponse struct {
	ID               string `json:"id"`
	DuplicateWarning string `json:"duplicate_warning,omitempty"`
}

// handleCommitContent persists one confirmed content record.
func (s *Server) handleCommitContent(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "content storage is not configured")
		return
	}

	var req types.CommitContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		valErr := &ErrValidation{Field: "type", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(valErr), valErr.Error())
		return
	}

	// A duplicate is worth flagging but never blocks the commit.
	warning := ""
	if name := recordName(req.Data); name != "" {
		existing, err := s.store.FindSimilar(r.Context(), req.Type, name)
		if err != nil {
			log.Printf("[server] duplicate check failed: %v", err)
		} else if existing != nil {
			warning = fmt.Sprintf("a %s named %q already exists", req.Type, name)
		}
	}

	// Attribute the commit when auth is on; anonymous commits are fine when
	// it isn't.
	if subject, err := middleware.GetSubject(r); err == nil {
		log.Printf("[server] %s commit by %s", req.Type, subject)
	}

	id, err := s.store.SaveContent(r.Context(), req.Type, req.Data)
	if err != nil {
		upErr := &ErrUpstream{Service: "database", Err: err}
		s.errorResponse(w, HTTPStatus(upErr), upErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, commitContentResponse{
		ID:               id.String(),
		DuplicateWarning: warning,
	})
}

// recordName picks the human-facing name out of a record's data for
// duplicate detection.
func recordName(data map[string]any) string {
	for _, key := range []string{"name", "title", "degree", "description"} {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
