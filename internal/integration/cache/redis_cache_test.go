package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type quickStats struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client).(*redisCache)
}

func TestRedisCache_GetSet(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	var got quickStats
	ok, err := c.Get(ctx, userID, "quick", &got)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := quickStats{Income: "3000.00", Expense: "250.00"}
	if err := c.Set(ctx, userID, "quick", want, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err = c.Get(ctx, userID, "quick", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	mr.FastForward(2 * time.Minute)
	if ok, _ := c.Get(ctx, userID, "quick", &got); ok {
		t.Error("expected entry to expire")
	}
}

func TestRedisCache_InvalidateUser(t *testing.T) {
	_, c := newTestCache(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, alice, key, key, time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := c.Set(ctx, bob, "a", "bob", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.InvalidateUser(ctx, alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var s string
	if ok, _ := c.Get(ctx, alice, "b", &s); ok {
		t.Error("expected alice's entries to be gone")
	}
	if ok, _ := c.Get(ctx, bob, "a", &s); !ok || s != "bob" {
		t.Errorf("expected bob's entry to survive, got ok=%v value=%q", ok, s)
	}

	if err := c.InvalidateUser(ctx, uuid.New()); err != nil {
		t.Errorf("invalidating an empty user should succeed, got %v", err)
	}
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()
	userID := uuid.New()

	if err := c.Set(ctx, userID, "k", 1, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var v int
	if ok, err := c.Get(ctx, userID, "k", &v); ok || err != nil {
		t.Errorf("expected miss, got ok=%v err=%v", ok, err)
	}
}
