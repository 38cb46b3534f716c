package persist

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadSnapshot_MissingKeyIsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, store := range map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openTestSQLite(t),
	} {
		t.Run(name, func(t *testing.T) {
			snap := LoadSnapshot(ctx, store, "interview-chat-missing")
			assert.NotNil(t, snap.Messages)
			assert.Empty(t, snap.Messages)
		})
	}
}

func TestLoadSnapshot_CorruptDataIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Put(ctx, "interview-chat-chat", []byte("{not json"))

	snap := LoadSnapshot(ctx, store, "interview-chat-chat")
	assert.Empty(t, snap.Messages)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t)

	genMessage := rapid.Custom(func(t *rapid.T) types.Message {
		role := types.RoleUser
		if rapid.Bool().Draw(t, "assistant") {
			role = types.RoleAssistant
		}
		return types.Message{
			ID:        rapid.StringMatching(`[a-f0-9-]{8,36}`).Draw(t, "id"),
			Role:      role,
			Content:   rapid.StringN(0, 200, -1).Draw(t, "content"),
			Timestamp: time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "ts"), 0).UTC(),
		}
	})

	rapid.Check(t, func(t *rapid.T) {
		messages := rapid.SliceOfN(genMessage, 0, 20).Draw(t, "messages")
		snap := types.Snapshot{Messages: messages}
		if snap.Messages == nil {
			snap.Messages = []types.Message{}
		}

		SaveSnapshot(ctx, store, "interview-chat-practice", snap)
		loaded := LoadSnapshot(ctx, store, "interview-chat-practice")
		assert.Equal(t, snap.Messages, loaded.Messages)
	})
}

func TestDeleteClearsKey(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t)

	snap := types.Snapshot{Messages: []types.Message{types.NewMessage(types.RoleUser, "hello")}}
	SaveSnapshot(ctx, store, "interview-chat-chat", snap)
	store.Delete(ctx, "interview-chat-chat")

	assert.Empty(t, LoadSnapshot(ctx, store, "interview-chat-chat").Messages)
}

func TestModeKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	SaveSnapshot(ctx, store, "interview-chat-chat", types.Snapshot{
		Messages: []types.Message{types.NewMessage(types.RoleUser, "chat history")},
	})
	SaveSnapshot(ctx, store, "interview-chat-practice", types.Snapshot{
		Messages: []types.Message{types.NewMessage(types.RoleUser, "practice history")},
	})

	chat := LoadSnapshot(ctx, store, "interview-chat-chat")
	practice := LoadSnapshot(ctx, store, "interview-chat-practice")
	require.Len(t, chat.Messages, 1)
	require.Len(t, practice.Messages, 1)
	assert.Equal(t, "chat history", chat.Messages[0].Content)
	assert.Equal(t, "practice history", practice.Messages[0].Content)
}

func TestLoadJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	pending := []types.PendingContent{
		types.NewPendingContent(types.ContentSkill, map[string]any{"name": "Go"}),
	}
	SaveJSON(ctx, store, "content-builder-pending", pending)

	var loaded []types.PendingContent
	require.True(t, LoadJSON(ctx, store, "content-builder-pending", &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, pending[0].ID, loaded[0].ID)

	var absent []types.PendingContent
	assert.False(t, LoadJSON(ctx, store, "no-such-key", &absent))
}
