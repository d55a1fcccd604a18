package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-safety/eventsync/internal/config"
)

func newTestLock(t *testing.T) *RunLock {
	t.Helper()
	mr := miniredis.RunT(t)

	lock, err := NewRunLock(context.Background(), &config.Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { lock.Close() })
	return lock
}

func TestRunLock_AcquireOncePerWindow(t *testing.T) {
	lock := newTestLock(t)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, "2024-01-15T06:00:01Z")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lock.Acquire(ctx, "2024-01-15T06:00:01Z")
	require.NoError(t, err)
	assert.False(t, ok)

	// A different window is independent.
	ok, err = lock.Acquire(ctx, "2024-01-16T06:00:01Z")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunLock_ReleaseAllowsRetry(t *testing.T) {
	lock := newTestLock(t)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, "2024-01-15T06:00:01Z")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, lock.Release(ctx, "2024-01-15T06:00:01Z"))

	ok, err = lock.Acquire(ctx, "2024-01-15T06:00:01Z")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRunLock_ConnectionFailure(t *testing.T) {
	_, err := NewRunLock(context.Background(), &config.Config{RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}
