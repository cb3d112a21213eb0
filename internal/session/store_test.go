package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, "aw", time.Hour), mr
}

func TestSetGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", "slot", "value"))

	got, ok, err := store.Get(ctx, "s1", "slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestGetMissingSlot(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok, err := store.Get(context.Background(), "s1", "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTakeConsumesExactlyOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", "slot", "once"))

	got, ok, err := store.Take(ctx, "s1", "slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "once", got)

	_, ok, err = store.Take(ctx, "s1", "slot")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTakeDoesNotTouchOtherSlots(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", "a", "1"))
	require.NoError(t, store.Set(ctx, "s1", "b", "2"))

	_, _, err := store.Take(ctx, "s1", "a")
	require.NoError(t, err)

	got, ok, err := store.Get(ctx, "s1", "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", got)
}

func TestFlushRemovesEverySlot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", "a", "1"))
	require.NoError(t, store.Set(ctx, "s1", "b", "2"))

	require.NoError(t, store.Flush(ctx, "s1"))

	_, ok, err := store.Get(ctx, "s1", "a")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.Get(ctx, "s1", "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFlushIsScopedToOneSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", "slot", "mine"))
	require.NoError(t, store.Set(ctx, "s2", "slot", "theirs"))

	require.NoError(t, store.Flush(ctx, "s1"))

	got, ok, err := store.Get(ctx, "s2", "slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "theirs", got)
}

func TestSetRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", "slot", "value"))

	ttl := mr.TTL("aw:sess:s1")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestUnavailableBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := NewStore(rdb, "aw", time.Hour)

	mr.Close()

	err := store.Set(context.Background(), "s1", "slot", "value")
	assert.ErrorIs(t, err, ErrUnavailable)
}
