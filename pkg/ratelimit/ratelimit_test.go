package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_memoryStore_Hit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	// The strict bucket admits ten requests, the eleventh is denied with a
	// retry hint close to the remaining window.
	for i := 0; i < Strict.MaxRequests; i++ {
		result, err := store.Hit(ctx, "1.2.3.4", Strict, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.True(t, result.Allowed)
		require.Equal(t, Strict.MaxRequests-i-1, result.Remaining)
	}

	result, err := store.Hit(ctx, "1.2.3.4", Strict, now.Add(11*time.Second))
	require.NoError(t, err)
	require.False(t, result.Allowed)
	require.Equal(t, 0, result.Remaining)
	require.Greater(t, result.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, result.RetryAfter, Strict.Window)

	// A denied request is not recorded: once the oldest hit leaves the
	// window, capacity comes back.
	result, err = store.Hit(ctx, "1.2.3.4", Strict, now.Add(Strict.Window+time.Second))
	require.NoError(t, err)
	require.True(t, result.Allowed)
}

func Test_memoryStore_IndependentKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	for i := 0; i < Strict.MaxRequests; i++ {
		_, err := store.Hit(ctx, "1.2.3.4", Strict, now)
		require.NoError(t, err)
	}

	denied, err := store.Hit(ctx, "1.2.3.4", Strict, now)
	require.NoError(t, err)
	require.False(t, denied.Allowed)

	other, err := store.Hit(ctx, "5.6.7.8", Strict, now)
	require.NoError(t, err)
	require.True(t, other.Allowed)
}

func Test_memoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Hit(ctx, "stale", Strict, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = store.Hit(ctx, "fresh", Strict, time.Now())
	require.NoError(t, err)

	require.NoError(t, store.Sweep(ctx, time.Hour))

	store.mutex.Lock()
	defer store.mutex.Unlock()
	require.NotContains(t, store.hits, "stale")
	require.Contains(t, store.hits, "fresh")
}
