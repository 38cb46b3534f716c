package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// fakeBackend scripts per-endpoint streaming replies and records commits.
type fakeBackend struct {
	mu      sync.Mutex
	replies map[string]string
	commits []types.CommitContentRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{replies: make(map[string]string)}
}

func (f *fakeBackend) Stream(_ context.Context, endpoint string, _ types.ChatRequest, onChunk func(string)) error {
	f.mu.Lock()
	reply := f.replies[endpoint]
	f.mu.Unlock()
	onChunk(reply)
	return nil
}

func (f *fakeBackend) Commit(_ context.Context, req types.CommitContentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits = append(f.commits, req)
	return nil
}

func sendIn(t *testing.T, s *Session, modeID, text string) {
	t.Helper()
	controller, err := s.Manager.Activate(modeID)
	require.NoError(t, err)
	require.NoError(t, controller.SendMessage(context.Background(), text))
}

func TestSession_ResumeInterpreterAcceptsDocument(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/resume-gen"] = `Here is your resume:
{"contactInfo":{"name":"Jane Doe"},"experience":[{"title":"Engineer","company":"Acme","startDate":"2020-01","bullets":["Shipped things"]}],"skills":{"technical":["Go"]},"education":[{"degree":"BSc","institution":"State"}]}`
	s := NewSession(backend, nil)

	sendIn(t, s, types.ModeResumeGen, "generate my resume")

	doc, warnings := s.Resume()
	require.NotNil(t, doc)
	assert.Equal(t, "Jane Doe", doc.ContactInfo.Name)
	assert.Empty(t, warnings)
}

func TestSession_ResumeSchemaWarningsAreAdvisory(t *testing.T) {
	backend := newFakeBackend()
	// Experience entry with no bullets: accepted by the interpreter, flagged
	// by the schema.
	backend.replies["/api/interview/resume-gen"] = `{"contactInfo":{"name":"Jane Doe"},"experience":[{"title":"Engineer","company":"Acme","startDate":"2020-01","bullets":[]}],"skills":{},"education":[]}`
	s := NewSession(backend, nil)

	sendIn(t, s, types.ModeResumeGen, "generate")

	doc, warnings := s.Resume()
	require.NotNil(t, doc)
	assert.NotEmpty(t, warnings)
}

func TestSession_ResumeKeptWhenReplyHasNoDocument(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/resume-gen"] = `{"contactInfo":{"name":"Jane Doe"},"experience":[],"skills":{},"education":[]}`
	s := NewSession(backend, nil)
	sendIn(t, s, types.ModeResumeGen, "generate")

	backend.mu.Lock()
	backend.replies["/api/interview/resume-gen"] = "Sure, what would you like to change?"
	backend.mu.Unlock()
	sendIn(t, s, types.ModeResumeGen, "make it shorter")

	doc, _ := s.Resume()
	require.NotNil(t, doc)
	assert.Equal(t, "Jane Doe", doc.ContactInfo.Name)
}

func TestSession_OutlineRecomputedEachTurn(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/copilot"] = "📌 Payment Outage @ Acme\nS: Checkout was failing during peak traffic\nA: Led the rollback and added circuit breakers"
	s := NewSession(backend, nil)

	sendIn(t, s, types.ModeCopilot, "tell me about a time you handled an outage")
	outline := s.Outline()
	require.NotNil(t, outline)
	assert.Equal(t, "Payment Outage", outline.Title)

	// A reply with no STAR structure wipes the outline rather than showing a
	// stale one.
	backend.mu.Lock()
	backend.replies["/api/interview/copilot"] = "ok"
	backend.mu.Unlock()
	sendIn(t, s, types.ModeCopilot, "thanks")

	assert.Nil(t, s.Outline())
}

func TestSession_FeedbackRetainedAcrossFollowUps(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/practice"] = `{"overall_score":7.5,"structure":8,"relevance":7,"clarity":7,"strengths":["clear"],"improvements":["quantify"],"suggestions":[],"used_star_method":true}`
	s := NewSession(backend, nil)

	sendIn(t, s, types.ModePractice, "here is my answer")
	fb := s.Feedback()
	require.NotNil(t, fb)
	assert.Equal(t, "B+", fb.Grade())

	backend.mu.Lock()
	backend.replies["/api/interview/practice"] = "Happy to elaborate on the structure point."
	backend.mu.Unlock()
	sendIn(t, s, types.ModePractice, "what do you mean by quantify?")

	require.NotNil(t, s.Feedback())
	assert.InDelta(t, 7.5, s.Feedback().OverallScore, 0.001)
}

func TestSession_ContentProposalsFlowIntoManager(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/content-builder"] = `{"proposals":[{"type":"skill","data":{"name":"Go"}},{"type":"project","data":{"name":"CLI"}}]}`
	s := NewSession(backend, nil)

	sendIn(t, s, types.ModeContentBuilder, "I know Go and built a CLI")

	pending := s.Content.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, types.StatusReady, pending[0].Status)
	// The project is missing its description, so it stays draft.
	assert.Equal(t, types.StatusDraft, pending[1].Status)

	require.NoError(t, s.SaveAllReady(context.Background()))
	require.Len(t, backend.commits, 1)
	assert.Equal(t, types.ContentSkill, backend.commits[0].Type)
	assert.Len(t, s.Content.Pending(), 1)
	assert.Len(t, s.Content.Saved(), 1)
}

func TestSession_ClearChatResetsArtifact(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/practice"] = `{"overall_score":9,"structure":9,"relevance":9,"clarity":9,"strengths":[],"improvements":[],"suggestions":[],"used_star_method":true}`
	s := NewSession(backend, nil)

	sendIn(t, s, types.ModePractice, "my answer")
	require.NotNil(t, s.Feedback())

	s.Manager.Active().ClearChat()
	assert.Nil(t, s.Feedback())
}

func TestSession_ModeCycling(t *testing.T) {
	s := NewSession(newFakeBackend(), nil)

	assert.Equal(t, types.ModeChat, s.Manager.ActiveID())
	assert.Equal(t, types.ModePractice, s.NextMode())
	assert.Equal(t, types.ModeCopilot, s.PrevMode())

	_, err := s.Manager.Activate(s.NextMode())
	require.NoError(t, err)
	assert.Equal(t, types.ModePractice, s.Manager.ActiveID())
}
