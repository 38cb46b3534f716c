// Package content tracks CMS records proposed by the content-builder mode
// through their confirmation lifecycle.
package content

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonkmatsumo/interview-agent/internal/persist"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Storage keys for the two artifact lists.
const (
	pendingKey = "content-builder-pending"
	savedKey   = "content-builder-saved"
)

// Committer writes one confirmed record to the CMS. Implemented by
// transport.Client against the content persistence endpoint.
type Committer interface {
	Commit(ctx context.Context, req types.CommitContentRequest) error
}

// Manager owns the pending and saved record lists. Status only moves forward
// (draft -> ready -> saved, or -> error); discarding removes a record
// outright, and saved records are immutable history.
type Manager struct {
	mu        sync.Mutex
	pending   []types.PendingContent
	saved     []types.PendingContent
	committer Committer
	store     persist.Store
}

// NewManager creates a manager, loading any persisted lists from store.
// A nil store keeps the lists in memory only.
func NewManager(committer Committer, store persist.Store) *Manager {
	m := &Manager{committer: committer, store: store}
	if store != nil {
		ctx := context.Background()
		persist.LoadJSON(ctx, store, pendingKey, &m.pending)
		persist.LoadJSON(ctx, store, savedKey, &m.saved)
	}
	return m
}

// Add appends interpreter-proposed records to the pending list.
func (m *Manager) Add(records ...types.PendingContent) {
	if len(records) == 0 {
		return
	}
	m.mu.Lock()
	m.pending = append(m.pending, records...)
	m.mu.Unlock()
	m.persistLists()
}

// Pending returns a copy of the pending list.
func (m *Manager) Pending() []types.PendingContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.PendingContent, len(m.pending))
	copy(out, m.pending)
	return out
}

// Saved returns a copy of the saved list.
func (m *Manager) Saved() []types.PendingContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.PendingContent, len(m.saved))
	copy(out, m.saved)
	return out
}

// Update merges new field values into a pending record's data and
// re-evaluates its readiness. Saved records cannot be updated.
func (m *Manager) Update(id string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("no pending record with id %s", id)
	}
	record := &m.pending[idx]
	for k, v := range data {
		record.Data[k] = v
	}
	if missing := record.MissingFields(); len(missing) > 0 {
		record.ClarificationNeeded = record.ClarificationQuestions()
	} else {
		record.ClarificationNeeded = nil
		if record.Status == types.StatusDraft {
			record.Status = types.StatusReady
		}
	}
	m.persistListsLocked()
	return nil
}

// Save commits a ready record to the CMS. On success the record moves to the
// saved list with status saved; on failure it stays pending with status
// error so the user can retry.
func (m *Manager) Save(ctx context.Context, id string) error {
	m.mu.Lock()
	idx := m.indexOf(id)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("no pending record with id %s", id)
	}
	record := m.pending[idx]
	if record.Status != types.StatusReady {
		m.mu.Unlock()
		return fmt.Errorf("record %s is %s, only ready records can be saved", id, record.Status)
	}
	m.mu.Unlock()

	err := m.committer.Commit(ctx, types.CommitContentRequest{Type: record.Type, Data: record.Data})

	m.mu.Lock()
	defer m.mu.Unlock()
	// The list may have shifted while the commit was on the wire.
	idx = m.indexOf(id)
	if idx < 0 {
		return err
	}

	if err != nil {
		m.pending[idx].Status = types.StatusError
		m.persistListsLocked()
		return err
	}

	saved := m.pending[idx]
	saved.Status = types.StatusSaved
	m.pending = append(m.pending[:idx], m.pending[idx+1:]...)
	m.saved = append(m.saved, saved)
	m.persistListsLocked()
	return nil
}

// Discard removes a pending record entirely. Discard is not a status; the
// record simply ceases to exist.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(id)
	if idx < 0 {
		return
	}
	m.pending = append(m.pending[:idx], m.pending[idx+1:]...)
	m.persistListsLocked()
}

// ClearAll drops every pending record. The saved list is history and is left
// alone.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = nil
	m.persistListsLocked()
}

// indexOf returns the pending index of id, or -1. Caller holds the lock.
func (m *Manager) indexOf(id string) int {
	for i := range m.pending {
		if m.pending[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) persistLists() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistListsLocked()
}

func (m *Manager) persistListsLocked() {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	persist.SaveJSON(ctx, m.store, pendingKey, m.pending)
	persist.SaveJSON(ctx, m.store, savedKey, m.saved)
}
