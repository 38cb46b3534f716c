// Package persist provides durable, key-scoped storage for conversation
// snapshots and content-builder artifact lists.
//
// Storage is deliberately forgiving: chat stays fully usable in memory even
// when the backing store is broken, so loads fall back to empty values on
// missing or corrupt data and saves are best-effort. Each chat mode writes
// under its own key, which keeps modes from ever reading each other's state.
package persist

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Store is a key-value store of JSON-serialized values. Implementations must
// treat Put and Delete as best-effort and never surface storage failures to
// conversation flow.
type Store interface {
	// Get returns the stored bytes for key and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Put stores value under key, overwriting any prior value wholesale.
	Put(ctx context.Context, key string, value []byte)
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string)
	// Close releases any resources held by the store.
	Close() error
}

// LoadSnapshot returns the conversation snapshot stored under key, or an
// empty snapshot on missing key, corrupt data, or any parse failure.
func LoadSnapshot(ctx context.Context, s Store, key string) types.Snapshot {
	data, ok := s.Get(ctx, key)
	if !ok || len(data) == 0 {
		return types.EmptySnapshot()
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("[persist] discarding corrupt snapshot for %q: %v", key, err)
		return types.EmptySnapshot()
	}
	if snap.Messages == nil {
		snap.Messages = []types.Message{}
	}
	return snap
}

// SaveSnapshot stores the snapshot under key. Failures are logged and
// swallowed.
func SaveSnapshot(ctx context.Context, s Store, key string, snap types.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("[persist] failed to marshal snapshot for %q: %v", key, err)
		return
	}
	s.Put(ctx, key, data)
}

// LoadJSON unmarshals the value stored under key into out. Returns false and
// leaves out untouched when the key is missing or the value is corrupt.
func LoadJSON(ctx context.Context, s Store, key string, out any) bool {
	data, ok := s.Get(ctx, key)
	if !ok || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[persist] discarding corrupt value for %q: %v", key, err)
		return false
	}
	return true
}

// SaveJSON marshals v and stores it under key, best-effort.
func SaveJSON(ctx context.Context, s Store, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[persist] failed to marshal value for %q: %v", key, err)
		return
	}
	s.Put(ctx, key, data)
}
