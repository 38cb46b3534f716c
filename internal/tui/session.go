// Package tui is the terminal client: a bubbletea chat over the streaming
// API, with mode switching and per-mode derived artifacts.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/jonkmatsumo/interview-agent/internal/chat"
	"github.com/jonkmatsumo/interview-agent/internal/content"
	"github.com/jonkmatsumo/interview-agent/internal/interpret"
	"github.com/jonkmatsumo/interview-agent/internal/persist"
	"github.com/jonkmatsumo/interview-agent/internal/schemas"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Backend is the server-side surface the session talks to: one streaming
// call per turn plus the content commit endpoint. transport.Client satisfies
// it.
type Backend interface {
	chat.Streamer
	content.Committer
}

// Session wires one controller per mode to the backend, routes finalized
// assistant text through the mode's interpreter, and holds the derived
// artifacts the UI renders alongside the conversation.
type Session struct {
	Manager *chat.Manager
	Content *content.Manager
	JobCtx  *chat.JobContext

	// modeOrder fixes the tab-cycling order to the registry order.
	modeOrder []string

	// updates is poked whenever any controller changes its message list, so
	// the UI can re-render mid-stream. Buffered; a missed poke is fine
	// because another always follows.
	updates chan struct{}

	mu       sync.RWMutex
	resume   *types.ResumeDocument
	resumeWs []string
	outline  *types.CopilotOutline
	feedback *types.AnswerFeedback
}

// NewSession builds the full client-side wiring. A nil store keeps all state
// in memory.
func NewSession(backend Backend, store persist.Store) *Session {
	s := &Session{
		Content: content.NewManager(backend, store),
		JobCtx:  chat.NewJobContext(store),
		updates: make(chan struct{}, 1),
	}

	var controllers []*chat.Controller
	for _, mode := range chat.EnabledModes() {
		s.modeOrder = append(s.modeOrder, mode.ID)

		opts := []chat.ControllerOption{
			chat.WithJobContext(s.JobCtx),
			chat.WithUpdateHook(s.notify),
		}
		if store != nil {
			opts = append(opts, chat.WithPersistence(store, chat.SnapshotKey(mode.ID)))
		}
		if fn := s.interpreterFor(mode.ID); fn != nil {
			opts = append(opts, chat.WithInterpreter(fn))
		}
		if fn := s.clearHookFor(mode.ID); fn != nil {
			opts = append(opts, chat.WithClearHook(fn))
		}

		controllers = append(controllers, chat.NewController(mode, backend, opts...))
	}

	s.Manager = chat.NewManager(controllers...)
	return s
}

// Updates exposes the re-render signal channel.
func (s *Session) Updates() <-chan struct{} { return s.updates }

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// NextMode returns the mode ID after the active one, wrapping around.
func (s *Session) NextMode() string { return s.shiftMode(1) }

// PrevMode returns the mode ID before the active one, wrapping around.
func (s *Session) PrevMode() string { return s.shiftMode(-1) }

func (s *Session) shiftMode(delta int) string {
	active := s.Manager.ActiveID()
	for i, id := range s.modeOrder {
		if id == active {
			n := len(s.modeOrder)
			return s.modeOrder[(i+delta+n)%n]
		}
	}
	return active
}

// Resume returns the latest accepted resume document and any advisory schema
// warnings recorded when it was accepted.
func (s *Session) Resume() (*types.ResumeDocument, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resume, s.resumeWs
}

// Outline returns the current copilot STAR outline, nil when the last
// message produced none.
func (s *Session) Outline() *types.CopilotOutline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outline
}

// Feedback returns the latest practice-answer feedback.
func (s *Session) Feedback() *types.AnswerFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedback
}

func (s *Session) interpreterFor(modeID string) func(string) {
	switch modeID {
	case types.ModeResumeGen:
		return s.interpretResume
	case types.ModeCopilot:
		return s.interpretOutline
	case types.ModePractice:
		return s.interpretFeedback
	case types.ModeContentBuilder:
		return s.interpretContent
	default:
		return nil
	}
}

func (s *Session) clearHookFor(modeID string) func() {
	switch modeID {
	case types.ModeResumeGen:
		return func() { s.setResume(nil, nil) }
	case types.ModeCopilot:
		return func() { s.setOutline(nil) }
	case types.ModePractice:
		return func() { s.setFeedback(nil) }
	case types.ModeContentBuilder:
		return s.Content.ClearAll
	default:
		return nil
	}
}

// interpretResume accepts a generated document, keeping the prior one when
// the reply contains none. Schema validation is advisory: violations are
// surfaced as warnings, never grounds for rejection.
func (s *Session) interpretResume(text string) {
	doc := interpret.ParseResume(text)
	if doc == nil {
		return
	}
	s.setResume(doc, schemaWarnings(doc))
}

func schemaWarnings(doc *types.ResumeDocument) []string {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	err = schemas.ValidateResumeDocument(raw)
	if err == nil {
		return nil
	}
	var ve *schemas.ValidationError
	if !errors.As(err, &ve) {
		log.Printf("[tui] resume schema check failed: %v", err)
		return nil
	}
	warnings := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		warnings = append(warnings, fe.Field+": "+fe.Message)
	}
	return warnings
}

// interpretOutline recomputes the outline from scratch on every reply.
func (s *Session) interpretOutline(text string) {
	s.setOutline(interpret.ParseOutline(text))
}

// interpretFeedback keeps the prior feedback when the reply carries none, so
// a follow-up question doesn't blank the last score.
func (s *Session) interpretFeedback(text string) {
	if fb := interpret.ParseFeedback(text); fb != nil {
		s.setFeedback(fb)
	}
}

func (s *Session) interpretContent(text string) {
	if records := interpret.ParseContent(text); len(records) > 0 {
		s.Content.Add(records...)
	}
}

func (s *Session) setResume(doc *types.ResumeDocument, warnings []string) {
	s.mu.Lock()
	s.resume = doc
	s.resumeWs = warnings
	s.mu.Unlock()
}

func (s *Session) setOutline(o *types.CopilotOutline) {
	s.mu.Lock()
	s.outline = o
	s.mu.Unlock()
}

func (s *Session) setFeedback(f *types.AnswerFeedback) {
	s.mu.Lock()
	s.feedback = f
	s.mu.Unlock()
}

// SaveAllReady commits every ready pending record, returning the first
// error. Used by the UI's save-all key.
func (s *Session) SaveAllReady(ctx context.Context) error {
	var firstErr error
	for _, rec := range s.Content.Pending() {
		if rec.Status != types.StatusReady {
			continue
		}
		if err := s.Content.Save(ctx, rec.ID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
