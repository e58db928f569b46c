package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("fresh key returns true", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "feed:sup-1:abc", time.Hour)
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("repeated key returns false", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "feed:sup-2:abc", time.Hour)
		require.NoError(t, err)
		require.True(t, fresh)

		fresh, err = store.MarkProcessed(ctx, "feed:sup-2:abc", time.Hour)
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("key is fresh again after the TTL elapses", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "feed:sup-3:abc", 10*time.Millisecond)
		require.NoError(t, err)
		require.True(t, fresh)

		time.Sleep(20 * time.Millisecond)

		fresh, err = store.MarkProcessed(ctx, "feed:sup-3:abc", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, fresh)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("unknown key", func(t *testing.T) {
		processed, err := store.IsProcessed(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("marked key", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "seen", time.Hour)
		require.NoError(t, err)

		processed, err := store.IsProcessed(ctx, "seen")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired key counts as unprocessed", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "stale", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "stale")
		require.NoError(t, err)
		assert.False(t, processed)
	})
}

func TestInMemoryIdempotencyStore_Size(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	assert.Equal(t, 0, store.Size())

	_, _ = store.MarkProcessed(ctx, "a", time.Hour)
	_, _ = store.MarkProcessed(ctx, "b", time.Hour)
	assert.Equal(t, 2, store.Size())

	// remarking an existing key does not grow the store
	_, _ = store.MarkProcessed(ctx, "a", time.Hour)
	assert.Equal(t, 2, store.Size())
}

func TestInMemoryIdempotencyStore_EvictExpired(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, _ = store.MarkProcessed(ctx, "short-1", 10*time.Millisecond)
	_, _ = store.MarkProcessed(ctx, "short-2", 10*time.Millisecond)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	require.Equal(t, 3, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.evictExpired()

	assert.Equal(t, 1, store.Size())

	processed, err := store.IsProcessed(ctx, "long")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentMark(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	const workers = 100
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		go func() {
			fresh, err := store.MarkProcessed(ctx, "contended", time.Hour)
			results <- err == nil && fresh
		}()
	}

	freshCount := 0
	for i := 0; i < workers; i++ {
		if <-results {
			freshCount++
		}
	}

	assert.Equal(t, 1, freshCount, "exactly one caller wins the mark")
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
