package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(RedisConfig{
		URL:    "redis://" + mr.Addr(),
		Prefix: "test",
		TTL:    ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, 0)

	require.NoError(t, store.Set(ctx, KeyUser, `{"id":"u1"}`))

	got, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, got)
}

func TestRedisStoreMissingKey(t *testing.T) {
	store := newRedisStore(t, 0)

	_, err := store.Get(context.Background(), KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, 0)

	require.NoError(t, store.Set(ctx, KeySelectedOffice, "{}"))
	require.NoError(t, store.Remove(ctx, KeySelectedOffice))

	_, err := store.Get(ctx, KeySelectedOffice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreKeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(RedisConfig{URL: "redis://" + mr.Addr(), Prefix: "alpha"})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, KeyToken, "tok"))
	assert.True(t, mr.Exists("alpha:token"))
}

func TestRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{URL: "not-a-url"})
	assert.Error(t, err)
}
