package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSelectClear(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	selected, err := store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, selected)

	require.NoError(t, store.Select(ctx, "s1", "shelter"))
	selected, err = store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "shelter", selected)

	// Switching overwrites; the old context is gone immediately.
	require.NoError(t, store.Select(ctx, "s1", "outreach"))
	selected, err = store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "outreach", selected)

	require.NoError(t, store.Clear(ctx, "s1"))
	selected, err = store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestMemoryStoreRejectsEmptyIDs(t *testing.T) {
	store := NewMemoryStore(0)
	assert.Error(t, store.Select(context.Background(), "", "p"))
	assert.Error(t, store.Select(context.Background(), "s", ""))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Select(ctx, "s1", "shelter"))
	time.Sleep(25 * time.Millisecond)

	selected, err := store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, selected, "an expired selection must read as no selection")
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "", time.Minute)
	ctx := context.Background()

	selected, err := store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, selected)

	require.NoError(t, store.Select(ctx, "s1", "shelter"))
	selected, err = store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "shelter", selected)

	// Selections are per session.
	selected, err = store.SelectedContext(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, selected)

	require.NoError(t, store.Clear(ctx, "s1"))
	selected, err = store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "", time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Select(ctx, "s1", "shelter"))
	mr.FastForward(2 * time.Minute)

	selected, err := store.SelectedContext(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, selected)
}
