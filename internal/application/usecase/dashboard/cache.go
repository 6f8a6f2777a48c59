// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
)

// readThrough serves key from the cache or computes and stores it. Cache failures only
// cost a recomputation.
func readThrough[T any](
	ctx context.Context,
	cache adapter.ReadCache,
	userID uuid.UUID,
	key string,
	ttl time.Duration,
	load func() (T, error),
) (T, error) {
	var value T
	ok, err := cache.Get(ctx, userID, key, &value)
	if err != nil {
		slog.Warn("dashboard cache read failed", "user_id", userID, "key", key, "error", err)
	}
	if ok && err == nil {
		return value, nil
	}

	value, err = load()
	if err != nil {
		return value, err
	}
	if err := cache.Set(ctx, userID, key, value, ttl); err != nil {
		slog.Warn("dashboard cache write failed", "user_id", userID, "key", key, "error", err)
	}
	return value, nil
}
