package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jonkmatsumo/interview-agent/internal/persist"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// State is the controller's position in its send lifecycle.
type State string

const (
	StateIdle         State = "idle"
	StateSending      State = "sending"
	StateStreaming    State = "streaming"
	StateInterpreting State = "interpreting"
)

// Streamer issues one request per user turn and delivers response chunks in
// arrival order. Implemented by transport.Client.
type Streamer interface {
	Stream(ctx context.Context, endpoint string, req types.ChatRequest, onChunk func(string)) error
}

// Controller orchestrates one chat mode's conversation: optimistic user
// append, streaming assistant accumulation, persistence, and artifact
// interpretation. At most one send is in flight per controller; a second
// SendMessage while busy is silently ignored so two streams can never fight
// over the single mutable tail message.
type Controller struct {
	mode  types.ChatMode
	store *MessageStore

	streamer Streamer
	persist  persist.Store
	key      string

	jobCtx *JobContext

	// interpret runs over the finalized assistant text after a successful
	// turn. Nil for modes without a derived artifact.
	interpret func(text string)
	// onClear resets mode-specific derived state alongside the chat.
	onClear func()
	// onUpdate is poked whenever the message list changes, so a UI can
	// re-render. Called outside the controller lock.
	onUpdate func()

	mu         sync.Mutex
	state      State
	errMsg     string
	generation uint64
	cancel     context.CancelFunc
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithPersistence gives the controller a durable store and key. Without it
// the conversation lives purely in memory.
func WithPersistence(store persist.Store, key string) ControllerOption {
	return func(c *Controller) {
		c.persist = store
		c.key = key
	}
}

// WithInterpreter sets the hook run over finalized assistant text.
func WithInterpreter(fn func(text string)) ControllerOption {
	return func(c *Controller) { c.interpret = fn }
}

// WithClearHook sets the hook run when the chat is cleared.
func WithClearHook(fn func()) ControllerOption {
	return func(c *Controller) { c.onClear = fn }
}

// WithUpdateHook sets the hook run after message-list changes.
func WithUpdateHook(fn func()) ControllerOption {
	return func(c *Controller) { c.onUpdate = fn }
}

// WithJobContext injects the cross-mode job context.
func WithJobContext(jc *JobContext) ControllerOption {
	return func(c *Controller) { c.jobCtx = jc }
}

// NewController creates a controller for mode, loading any persisted history.
func NewController(mode types.ChatMode, streamer Streamer, opts ...ControllerOption) *Controller {
	c := &Controller{
		mode:     mode,
		store:    NewMessageStore(),
		streamer: streamer,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.persist != nil && c.key != "" {
		snap := persist.LoadSnapshot(context.Background(), c.persist, c.key)
		c.store.Reset(snap.Messages)
	}
	return c
}

// Mode returns the controller's mode definition.
func (c *Controller) Mode() types.ChatMode { return c.mode }

// Messages returns a copy of the conversation history.
func (c *Controller) Messages() []types.Message { return c.store.Messages() }

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether a send is in flight.
func (c *Controller) Loading() bool {
	return c.State() != StateIdle
}

// Err returns the user-visible error from the last failed send, if any.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// SendMessage runs one full conversation turn: append the user message,
// stream the assistant reply into a placeholder, persist, and interpret.
// Blank input and sends issued while another is in flight are no-ops. The
// returned error is the user-visible transport failure, already recorded on
// the controller; the user's message stays in history so retry is a re-send.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return nil
	}
	c.state = StateSending
	c.errMsg = ""
	gen := c.generation
	streamCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	// Optimistic append: the user sees their message before any network
	// round trip.
	c.store.Append(types.NewMessage(types.RoleUser, text))
	c.notify()

	req := c.buildRequest()

	// Placeholder assistant message; its content is the only thing a stream
	// may mutate.
	c.store.Append(types.NewMessage(types.RoleAssistant, ""))
	c.notify()

	c.setState(gen, StateStreaming)
	received := false
	err := c.streamer.Stream(streamCtx, c.mode.APIEndpoint, req, func(chunk string) {
		if !c.currentGeneration(gen) {
			return
		}
		received = true
		c.store.AppendToLast(chunk)
		c.notify()
	})

	c.mu.Lock()
	if gen != c.generation {
		// The chat was cleared or the mode switched away mid-stream. The
		// store has been reset; nothing here may touch it.
		c.mu.Unlock()
		return nil
	}

	if err != nil {
		if !received {
			c.store.RemoveLast()
		}
		c.errMsg = userFacingError(err)
		c.state = StateIdle
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.state = StateInterpreting
	final := c.store.LastContent()
	snap := c.store.Snapshot()
	c.mu.Unlock()

	// A clear can land between releasing the lock and persisting; its key
	// deletion must win, so re-check the generation before writing anything
	// back or deriving artifacts from the finalized text.
	if c.currentGeneration(gen) {
		if c.persist != nil && c.key != "" {
			persist.SaveSnapshot(ctx, c.persist, c.key, snap)
		}
		if c.interpret != nil {
			c.interpret(final)
		}
	}

	c.setState(gen, StateIdle)
	c.notify()
	return nil
}

// ClearChat resets the conversation to empty: message list, persisted
// snapshot, derived artifacts, and error state. An in-flight stream is
// cancelled and its late chunks discarded.
func (c *Controller) ClearChat() {
	c.mu.Lock()
	c.generation++
	c.state = StateIdle
	c.errMsg = ""
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	c.store.Reset(nil)
	if c.persist != nil && c.key != "" {
		c.persist.Delete(context.Background(), c.key)
	}
	if c.onClear != nil {
		c.onClear()
	}
	c.notify()
}

// CancelInFlight aborts any active stream without clearing history. Late
// chunks from the aborted stream are discarded. Used when the UI switches
// away from this mode.
func (c *Controller) CancelInFlight() {
	c.mu.Lock()
	c.generation++
	c.state = StateIdle
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// buildRequest assembles the request payload: the full history ending with
// the just-appended user turn, plus any shared job context.
func (c *Controller) buildRequest() types.ChatRequest {
	req := types.ChatRequest{Messages: c.store.Messages()}
	if c.jobCtx != nil {
		req.JobDescription = c.jobCtx.Description()
		req.JobTitle = c.jobCtx.Title()
		req.Company = c.jobCtx.Company()
	}
	return req
}

func (c *Controller) currentGeneration(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.generation
}

// setState transitions state only if the controller hasn't moved on to a
// newer generation.
func (c *Controller) setState(gen uint64, s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation {
		c.state = s
	}
}

func (c *Controller) notify() {
	if c.onUpdate != nil {
		c.onUpdate()
	}
}

// userFacingError condenses transport failures into the short string shown
// in the conversation UI.
func userFacingError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Request cancelled."
	}
	return "Something went wrong talking to the assistant. Please try again."
}
