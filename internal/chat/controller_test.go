package chat

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonkmatsumo/interview-agent/internal/persist"
	"github.com/jonkmatsumo/interview-agent/internal/transport"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// fakeStreamer scripts a streaming exchange for controller tests.
type fakeStreamer struct {
	chunks []string
	err    error

	// When set, Stream blocks between emitting chunks and lateChunks until
	// released, letting tests interleave other operations mid-stream.
	gate       chan struct{}
	lateChunks []string

	calls   int32
	lastReq types.ChatRequest
	reqMu   sync.Mutex
}

func (f *fakeStreamer) Stream(ctx context.Context, endpoint string, req types.ChatRequest, onChunk func(string)) error {
	atomic.AddInt32(&f.calls, 1)
	f.reqMu.Lock()
	f.lastReq = req
	f.reqMu.Unlock()

	for _, chunk := range f.chunks {
		onChunk(chunk)
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
		}
		for _, chunk := range f.lateChunks {
			onChunk(chunk)
		}
	}
	return f.err
}

func (f *fakeStreamer) request() types.ChatRequest {
	f.reqMu.Lock()
	defer f.reqMu.Unlock()
	return f.lastReq
}

func testMode() types.ChatMode {
	mode, _ := ModeByID(types.ModeChat)
	return mode
}

func TestSendMessage_AppendsUserTurnAndStreamsReply(t *testing.T) {
	streamer := &fakeStreamer{chunks: []string{"I have ", "ten years ", "of experience."}}
	c := NewController(testMode(), streamer)

	err := c.SendMessage(context.Background(), "Tell me about your experience")
	require.NoError(t, err)

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, types.RoleUser, messages[0].Role)
	assert.Equal(t, "Tell me about your experience", messages[0].Content)
	assert.Equal(t, types.RoleAssistant, messages[1].Role)
	assert.Equal(t, "I have ten years of experience.", messages[1].Content)
	assert.False(t, c.Loading())
	assert.Empty(t, c.Err())

	// The request payload carried the user's turn.
	req := streamer.request()
	require.NotEmpty(t, req.Messages)
	assert.Equal(t, "Tell me about your experience", req.Messages[len(req.Messages)-1].Content)
}

func TestSendMessage_BlankInputIsNoOp(t *testing.T) {
	streamer := &fakeStreamer{chunks: []string{"hi"}}
	c := NewController(testMode(), streamer)

	require.NoError(t, c.SendMessage(context.Background(), ""))
	require.NoError(t, c.SendMessage(context.Background(), "   \n\t"))

	assert.Zero(t, c.store.Len())
	assert.Zero(t, atomic.LoadInt32(&streamer.calls))
}

func TestSendMessage_SecondConcurrentSendIsDropped(t *testing.T) {
	gate := make(chan struct{})
	streamer := &fakeStreamer{chunks: []string{"thinking..."}, gate: gate}
	c := NewController(testMode(), streamer)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "first question") }()

	// Wait until the first send is visibly in flight.
	require.Eventually(t, func() bool { return c.Loading() }, 2*time.Second, time.Millisecond)

	// The overlapping send must be silently ignored, not queued.
	require.NoError(t, c.SendMessage(context.Background(), "second question"))

	close(gate)
	require.NoError(t, <-done)

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "first question", messages[0].Content)
	assert.Equal(t, int32(1), atomic.LoadInt32(&streamer.calls))
}

func TestSendMessage_EarlierMessagesStayImmutable(t *testing.T) {
	streamer := &fakeStreamer{chunks: []string{"answer"}}
	c := NewController(testMode(), streamer)

	require.NoError(t, c.SendMessage(context.Background(), "turn one"))
	afterFirst := c.Messages()

	require.NoError(t, c.SendMessage(context.Background(), "turn two"))
	afterSecond := c.Messages()

	require.Len(t, afterSecond, 4)
	for i, msg := range afterFirst {
		assert.Equal(t, msg.ID, afterSecond[i].ID)
		assert.Equal(t, msg.Content, afterSecond[i].Content)
		assert.Equal(t, msg.Timestamp, afterSecond[i].Timestamp)
	}
}

func TestSendMessage_TransportFailureKeepsUserMessage(t *testing.T) {
	streamer := &fakeStreamer{err: &transport.ConnectError{Endpoint: "/api/interview/chat"}}
	c := NewController(testMode(), streamer)

	err := c.SendMessage(context.Background(), "hello?")
	require.Error(t, err)

	messages := c.Messages()
	// The empty assistant placeholder is discarded; the user turn survives
	// so retry is a plain re-send.
	require.Len(t, messages, 1)
	assert.Equal(t, types.RoleUser, messages[0].Role)
	assert.NotEmpty(t, c.Err())
	assert.False(t, c.Loading())
}

func TestSendMessage_MidStreamFailureRetainsPartial(t *testing.T) {
	streamer := &fakeStreamer{
		chunks: []string{"partial "},
		err:    &transport.StreamError{Endpoint: "/api/interview/chat", Message: "connection lost"},
	}
	c := NewController(testMode(), streamer)

	err := c.SendMessage(context.Background(), "hello?")
	require.Error(t, err)

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "partial ", messages[1].Content)
	assert.NotEmpty(t, c.Err())
}

func TestClearChat_IsTotal(t *testing.T) {
	store := persist.NewMemoryStore()
	key := SnapshotKey(types.ModeResumeGen)
	cleared := false

	mode, _ := ModeByID(types.ModeResumeGen)
	c := NewController(mode, &fakeStreamer{chunks: []string{"resume text"}},
		WithPersistence(store, key),
		WithClearHook(func() { cleared = true }),
	)

	require.NoError(t, c.SendMessage(context.Background(), "make me a resume"))
	require.NotEmpty(t, persist.LoadSnapshot(context.Background(), store, key).Messages)

	c.ClearChat()

	assert.Zero(t, c.store.Len())
	assert.Empty(t, persist.LoadSnapshot(context.Background(), store, key).Messages)
	assert.True(t, cleared)
	assert.Empty(t, c.Err())
}

func TestController_LoadsPersistedHistory(t *testing.T) {
	store := persist.NewMemoryStore()
	key := SnapshotKey(types.ModeChat)
	snap := types.Snapshot{Messages: []types.Message{
		types.NewMessage(types.RoleUser, "earlier question"),
		types.NewMessage(types.RoleAssistant, "earlier answer"),
	}}
	persist.SaveSnapshot(context.Background(), store, key, snap)

	c := NewController(testMode(), &fakeStreamer{}, WithPersistence(store, key))

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "earlier question", messages[0].Content)
}

func TestSendMessage_RunsInterpreterOverFinalText(t *testing.T) {
	var interpreted string
	streamer := &fakeStreamer{chunks: []string{"part one ", "part two"}}
	c := NewController(testMode(), streamer,
		WithInterpreter(func(text string) { interpreted = text }),
	)

	require.NoError(t, c.SendMessage(context.Background(), "go"))
	assert.Equal(t, "part one part two", interpreted)
}

func TestAbandonedStreamCannotMutateStore(t *testing.T) {
	gate := make(chan struct{})
	streamer := &fakeStreamer{
		chunks:     []string{"early"},
		gate:       gate,
		lateChunks: []string{" late"},
	}
	var interpreted int32
	c := NewController(testMode(), streamer,
		WithInterpreter(func(string) { atomic.AddInt32(&interpreted, 1) }),
	)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "question") }()
	require.Eventually(t, func() bool { return c.store.LastContent() == "early" }, 2*time.Second, time.Millisecond)

	c.CancelInFlight()
	close(gate)
	require.NoError(t, <-done)

	// The late chunk from the abandoned stream must not land, and the
	// interpreter must not run over abandoned output.
	assert.Equal(t, "early", c.store.LastContent())
	assert.Zero(t, atomic.LoadInt32(&interpreted))
}

func TestClearDuringSendNeverRepersistsClearedKey(t *testing.T) {
	store := persist.NewMemoryStore()
	key := SnapshotKey(types.ModeChat)
	gate := make(chan struct{})
	streamer := &fakeStreamer{chunks: []string{"reply so far"}, gate: gate}

	var interpreted int32
	c := NewController(testMode(), streamer,
		WithPersistence(store, key),
		WithInterpreter(func(string) { atomic.AddInt32(&interpreted, 1) }),
	)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "question") }()
	require.Eventually(t, func() bool { return c.store.LastContent() == "reply so far" }, 2*time.Second, time.Millisecond)

	// The clear races the tail end of the send: whatever order the two
	// resolve in, the deleted key must stay deleted and no artifact may be
	// derived from the abandoned turn.
	c.ClearChat()
	close(gate)
	require.NoError(t, <-done)

	assert.Zero(t, c.store.Len())
	assert.Empty(t, persist.LoadSnapshot(context.Background(), store, key).Messages)
	assert.Zero(t, atomic.LoadInt32(&interpreted))
}

func TestJobContextFlowsIntoRequest(t *testing.T) {
	jc := NewJobContext(nil)
	jc.Set("Build distributed systems", "Staff Engineer", "Acme")

	streamer := &fakeStreamer{chunks: []string{"ok"}}
	mode, _ := ModeByID(types.ModeResumeGen)
	c := NewController(mode, streamer, WithJobContext(jc))

	require.NoError(t, c.SendMessage(context.Background(), "tailor my resume"))

	req := streamer.request()
	assert.Equal(t, "Build distributed systems", req.JobDescription)
	assert.Equal(t, "Staff Engineer", req.JobTitle)
	assert.Equal(t, "Acme", req.Company)
}
