// Package chat implements the conversational core: the ordered message
// store, the per-mode conversation controller, the mode registry, and the
// shared job context.
package chat

import (
	"sync"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// MessageStore is an ordered, append-only log of conversation turns. The one
// permitted in-place mutation is growing the content of the most recent
// message while an assistant reply streams in; every other message is frozen
// once appended.
type MessageStore struct {
	mu       sync.RWMutex
	messages []types.Message
}

// NewMessageStore creates an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{messages: []types.Message{}}
}

// Append adds a message to the end of the log.
func (s *MessageStore) Append(msg types.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// AppendToLast grows the content of the last message. Chunks must be applied
// in arrival order; callers guarantee ordering by invoking this from a single
// consuming goroutine.
func (s *MessageStore) AppendToLast(chunk string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return
	}
	s.messages[len(s.messages)-1].Content += chunk
}

// RemoveLast drops the most recent message. Used to discard an assistant
// placeholder that never received any content.
func (s *MessageStore) RemoveLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return
	}
	s.messages = s.messages[:len(s.messages)-1]
}

// LastContent returns the content of the most recent message.
func (s *MessageStore) LastContent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].Content
}

// Messages returns a copy of the ordered log.
func (s *MessageStore) Messages() []types.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Reset replaces the whole log. Passing nil clears it.
func (s *MessageStore) Reset(messages []types.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if messages == nil {
		s.messages = []types.Message{}
		return
	}
	s.messages = make([]types.Message, len(messages))
	copy(s.messages, messages)
}

// Snapshot returns the log as a persistable snapshot.
func (s *MessageStore) Snapshot() types.Snapshot {
	return types.Snapshot{Messages: s.Messages()}
}
