package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet-safety/eventsync/internal/config"
)

// The lock outlives the window it guards so a late manual re-run is still
// refused, but not by much.
const runLockTTL = 48 * time.Hour

// RunLock guards against ingesting the same window twice: concurrent
// invocations, or a cron misfire re-running a day that already landed.
type RunLock struct {
	client *redis.Client
}

func NewRunLock(ctx context.Context, cfg *config.Config) (*RunLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RunLock{client: client}, nil
}

func (l *RunLock) Close() error {
	return l.client.Close()
}

// Acquire claims the window. Returns false when another run already holds it.
func (l *RunLock) Acquire(ctx context.Context, windowStart string) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey(windowStart), "1", runLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire run lock: %w", err)
	}
	return ok, nil
}

// Release frees the window after a failed run so a retry can claim it.
// A successful run keeps the lock until it expires.
func (l *RunLock) Release(ctx context.Context, windowStart string) error {
	return l.client.Del(ctx, lockKey(windowStart)).Err()
}

func lockKey(windowStart string) string {
	return fmt.Sprintf("eventsync:run:%s", windowStart)
}
