package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateRejectsDuplicate(t *testing.T) {
	store := NewStore(nil)

	require.NoError(t, store.Create("id-1"))
	assert.ErrorIs(t, store.Create("id-1"), ErrSessionExists)
}

func TestStoreGetAbsentIsNotAnError(t *testing.T) {
	store := NewStore(nil)

	sess, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Zero(t, sess)
}

func TestStoreWholeObjectReplace(t *testing.T) {
	store := NewStore(nil)
	require.NoError(t, store.Create("id-1"))

	s1 := json.RawMessage(`{"brake_bias":56.5,"wing":3}`)
	s2 := json.RawMessage(`{"fuel_load":80.0}`)
	require.NoError(t, store.ReplaceSetup("id-1", s1, "2025-01-01T00:00:00Z"))
	require.NoError(t, store.ReplaceSetup("id-1", s2, "2025-01-01T00:01:00Z"))

	sess, ok := store.Get("id-1")
	require.True(t, ok)
	// Exactly S2: no merge of S1's fields.
	assert.JSONEq(t, `{"fuel_load":80.0}`, string(sess.Setup))
	assert.Equal(t, "2025-01-01T00:01:00Z", sess.SetupTimestamp)
}

func TestStoreTelemetryReplaceStampsArrivalTime(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewStore(clock)
	require.NoError(t, store.Create("id-1"))

	require.NoError(t, store.ReplaceTelemetry("id-1", json.RawMessage(`{"lap":1}`)))
	first, _ := store.Get("id-1")

	clock.Advance(500 * time.Millisecond)
	require.NoError(t, store.ReplaceTelemetry("id-1", json.RawMessage(`{"lap":2}`)))
	second, _ := store.Get("id-1")

	assert.JSONEq(t, `{"lap":2}`, string(second.Telemetry))
	assert.True(t, second.LastUpdate.After(first.LastUpdate), "last_update must move forward in arrival order")
}

func TestStoreReplaceUnknownSession(t *testing.T) {
	store := NewStore(nil)

	assert.ErrorIs(t, store.ReplaceSetup("missing", json.RawMessage(`{}`), "ts"), ErrUnknownSession)
	assert.ErrorIs(t, store.ReplaceTelemetry("missing", json.RawMessage(`{}`)), ErrUnknownSession)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store := NewStore(nil)
	require.NoError(t, store.Create("id-1"))

	store.Delete("id-1")
	store.Delete("id-1")
	store.Delete("never-existed")

	_, ok := store.Get("id-1")
	assert.False(t, ok)
}

func TestStoreListIDs(t *testing.T) {
	store := NewStore(nil)
	require.NoError(t, store.Create("a"))
	require.NoError(t, store.Create("b"))

	assert.ElementsMatch(t, []string{"a", "b"}, store.ListIDs())
	assert.Equal(t, 2, store.Len())
}

func TestStoreCreatedAtIsImmutable(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewStore(clock)
	require.NoError(t, store.Create("id-1"))

	before, _ := store.Get("id-1")
	clock.Advance(time.Hour)
	require.NoError(t, store.ReplaceTelemetry("id-1", json.RawMessage(`{"lap":1}`)))

	after, _ := store.Get("id-1")
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}
