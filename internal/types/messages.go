// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks a message written by the person being interviewed.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by the model.
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation. Messages are immutable once
// appended, except that the content of the most recent assistant message may
// grow while a response is streaming.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// Snapshot is the persisted form of a conversation: the ordered message list
// for one chat mode. Snapshots are written wholesale; there are no partial or
// merge updates.
type Snapshot struct {
	Messages []Message `json:"messages"`
}

// EmptySnapshot returns a snapshot with no messages.
func EmptySnapshot() Snapshot {
	return Snapshot{Messages: []Message{}}
}
