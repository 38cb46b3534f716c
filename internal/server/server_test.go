package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonkmatsumo/interview-agent/internal/cms"
	"github.com/jonkmatsumo/interview-agent/internal/config"
	"github.com/jonkmatsumo/interview-agent/internal/db"
	"github.com/jonkmatsumo/interview-agent/internal/llm"
	"github.com/jonkmatsumo/interview-agent/internal/transport"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// fakeModel scripts LLM responses for handler tests.
type fakeModel struct {
	chunks []string
	err    error
}

func (f *fakeModel) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeModel) StreamConversation(_ context.Context, _ string, _ []types.Message, _ llm.ModelTier, onChunk func(string) error) error {
	for _, chunk := range f.chunks {
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeModel) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeModel) Close() error                  { return nil }

type fakeSnapshots struct {
	snap *cms.ContextSnapshot
	err  error
}

func (f *fakeSnapshots) FetchSnapshot(context.Context) (*cms.ContextSnapshot, error) {
	return f.snap, f.err
}

type fakeContentStore struct {
	saved    []types.CommitContentRequest
	existing *db.ContentRecord
	saveErr  error
}

func (f *fakeContentStore) SaveContent(_ context.Context, contentType types.ContentType, data map[string]any) (uuid.UUID, error) {
	if f.saveErr != nil {
		return uuid.Nil, f.saveErr
	}
	f.saved = append(f.saved, types.CommitContentRequest{Type: contentType, Data: data})
	return uuid.New(), nil
}

func (f *fakeContentStore) FindSimilar(context.Context, types.ContentType, string) (*db.ContentRecord, error) {
	return f.existing, nil
}

func testSnapshots() *fakeSnapshots {
	return &fakeSnapshots{snap: &cms.ContextSnapshot{Identity: cms.Identity{Name: "Jane Doe"}}}
}

func chatBody(t *testing.T, content string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(types.ChatRequest{Messages: []types.Message{
		types.NewMessage(types.RoleUser, content),
	}})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestHandleInterview_StreamsSSE(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{chunks: []string{"hello ", "there"}})

	req := httptest.NewRequest(http.MethodPost, "/api/interview/chat", chatBody(t, "hi"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: chunk")
	assert.Contains(t, body, `{"text":"hello "}`)
	assert.Contains(t, body, `{"text":"there"}`)
	assert.Contains(t, body, "event: done")
	assert.NotContains(t, body, "event: error")
}

func TestHandleInterview_ModelFailureEmitsErrorEvent(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{
		chunks: []string{"partial"},
		err:    errors.New("provider exploded"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/interview/chat", chatBody(t, "hi"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, `{"text":"partial"}`)
	assert.Contains(t, body, "event: error")
	// Provider details must not leak to the client.
	assert.NotContains(t, body, "provider exploded")
	assert.NotContains(t, body, "event: done")
}

func TestHandleInterview_UnknownMode(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{})

	req := httptest.NewRequest(http.MethodPost, "/api/interview/fortune-teller", chatBody(t, "hi"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleInterview_EmptyMessages(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{})

	body, _ := json.Marshal(types.ChatRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/interview/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInterview_CMSDownIsBadGateway(t *testing.T) {
	s := newServer(nil, &fakeSnapshots{err: errors.New("cms down")}, &fakeModel{})

	req := httptest.NewRequest(http.MethodPost, "/api/interview/chat", chatBody(t, "hi"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleModes(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{})

	req := httptest.NewRequest(http.MethodGet, "/api/modes", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Modes []types.ChatMode `json:"modes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Modes, 5)
}

func TestHandleHealth(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCommitContent(t *testing.T) {
	store := &fakeContentStore{}
	s := newServer(store, testSnapshots(), &fakeModel{})

	body, _ := json.Marshal(types.CommitContentRequest{
		Type: types.ContentSkill,
		Data: map[string]any{"name": "Go"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/content", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.saved, 1)
	assert.Equal(t, types.ContentSkill, store.saved[0].Type)

	var resp commitContentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.DuplicateWarning)
}

func TestHandleCommitContent_DuplicateWarnsButSaves(t *testing.T) {
	store := &fakeContentStore{existing: &db.ContentRecord{Type: types.ContentSkill}}
	s := newServer(store, testSnapshots(), &fakeModel{})

	body, _ := json.Marshal(types.CommitContentRequest{
		Type: types.ContentSkill,
		Data: map[string]any{"name": "Go"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/content", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.saved, 1)

	var resp commitContentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.DuplicateWarning, "already exists")
}

func TestHandleCommitContent_InvalidType(t *testing.T) {
	s := newServer(&fakeContentStore{}, testSnapshots(), &fakeModel{})

	body, _ := json.Marshal(map[string]any{"type": "hobby", "data": map[string]any{"name": "x"}})
	req := httptest.NewRequest(http.MethodPost, "/api/content", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCommitContent_NoStore(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{})

	body, _ := json.Marshal(types.CommitContentRequest{
		Type: types.ContentSkill,
		Data: map[string]any{"name": "Go"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/content", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuth_EnforcedOnAPIRoutes(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{chunks: []string{"hello"}})
	s.jwtService = NewJWTService(&config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour})

	// No token: rejected before the handler runs.
	req := httptest.NewRequest(http.MethodPost, "/api/interview/chat", chatBody(t, "hi"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Health stays open for probes.
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// A token minted by the same service passes through to the handler.
	token, err := s.jwtService.GenerateToken("operator")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/interview/chat", chatBody(t, "hi"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "event: done")
}

func TestAuth_TokenSignedWithWrongSecretRejected(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{chunks: []string{"hello"}})
	s.jwtService = NewJWTService(&config.JWTConfig{Secret: "server-secret", TokenTTL: time.Hour})

	other := NewJWTService(&config.JWTConfig{Secret: "someone-elses-secret", TokenTTL: time.Hour})
	token, err := other.GenerateToken("intruder")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/interview/chat", chatBody(t, "hi"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// End-to-end: the streaming client consumes the server's SSE framing.
func TestStreamRoundTrip(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{chunks: []string{"I have ", "ten years"}})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := transport.New(ts.URL)
	var got string
	err := client.Stream(context.Background(), "/api/interview/chat", types.ChatRequest{
		Messages: []types.Message{types.NewMessage(types.RoleUser, "experience?")},
	}, func(chunk string) {
		got += chunk
	})

	require.NoError(t, err)
	assert.Equal(t, "I have ten years", got)
}

func TestStreamRoundTrip_ErrorEvent(t *testing.T) {
	s := newServer(nil, testSnapshots(), &fakeModel{err: errors.New("boom")})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := transport.New(ts.URL)
	err := client.Stream(context.Background(), "/api/interview/chat", types.ChatRequest{
		Messages: []types.Message{types.NewMessage(types.RoleUser, "hi")},
	}, func(string) {})

	require.Error(t, err)
	var streamErr *transport.StreamError
	assert.ErrorAs(t, err, &streamErr)
}

func TestCommitRoundTrip(t *testing.T) {
	store := &fakeContentStore{}
	s := newServer(store, testSnapshots(), &fakeModel{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := transport.New(ts.URL)
	err := client.Commit(context.Background(), types.CommitContentRequest{
		Type: types.ContentSkill,
		Data: map[string]any{"name": "Kubernetes"},
	})

	require.NoError(t, err)
	require.Len(t, store.saved, 1)
}
