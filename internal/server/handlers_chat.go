package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonkmatsumo/interview-agent/internal/chat"
	"github.com/jonkmatsumo/interview-agent/internal/llm"
	"github.com/jonkmatsumo/interview-agent/internal/prompts"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// modeTiers maps each mode to the model tier its replies need.
var modeTiers = map[string]llm.ModelTier{
	types.ModeChat:           llm.TierStandard,
	types.ModePractice:       llm.TierAdvanced,
	types.ModeResumeGen:      llm.TierAdvanced,
	types.ModeContentBuilder: llm.TierStandard,
	types.ModeCopilot:        llm.TierStandard,
}

// handleInterview streams an assistant reply for one conversational turn.
func (s *Server) handleInterview(w http.ResponseWriter, r *http.Request) {
	modeID := r.PathValue("mode")
	if _, ok := chat.ModeByID(modeID); !ok {
		err := &ErrUnknownMode{Mode: modeID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		err := &ErrValidation{Field: "messages", Message: "at least one message is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if last := req.Messages[len(req.Messages)-1]; last.Role != types.RoleUser {
		err := &ErrValidation{Field: "messages", Message: "last message must be from the user"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	system, err := prompts.SystemPrompt(modeID, snap, req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to build prompt")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	tier, ok := modeTiers[modeID]
	if !ok {
		tier = llm.TierStandard
	}

	err = s.model.StreamConversation(r.Context(), system, req.Messages, tier, func(chunk string) error {
		return sse.WriteChunk(chunk)
	})
	if err != nil {
		log.Printf("[server] stream failed for mode %s: %v", modeID, err)
		sse.WriteError("assistant is unavailable, please try again")
		return
	}
	sse.WriteDone()
}

// handleModes lists the registered chat modes.
func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"modes": chat.EnabledModes()})
}
