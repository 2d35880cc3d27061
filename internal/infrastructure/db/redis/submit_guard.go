package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSubmitTTL = 10 * time.Second

// SubmitGuard de-duplicates form submissions with SETNX.
// Key format: submit:<action>:<subject>
type SubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitGuard creates a SubmitGuard holding locks for ttl.
func NewSubmitGuard(client *redis.Client, ttl time.Duration) *SubmitGuard {
	if ttl <= 0 {
		ttl = defaultSubmitTTL
	}
	return &SubmitGuard{client: client, ttl: ttl}
}

// Acquire reports whether the caller now owns the submission.
func (g *SubmitGuard) Acquire(ctx context.Context, action, subject string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(action, subject), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard: %w", err)
	}
	return ok, nil
}

// Release frees the submission before its TTL.
func (g *SubmitGuard) Release(ctx context.Context, action, subject string) error {
	return g.client.Del(ctx, g.key(action, subject)).Err()
}

func (g *SubmitGuard) key(action, subject string) string {
	return fmt.Sprintf("submit:%s:%s", action, subject)
}
