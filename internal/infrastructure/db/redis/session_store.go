package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/session"
)

// SessionStore persists sessions as JSON strings.
// Key format: campuscard.session:<browser_id>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore whose records expire after ttl
// (no expiry when ttl <= 0).
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Load returns the session of key and slides its expiry, so an active
// browser keeps its record for ttl after its last request.
func (s *SessionStore) Load(ctx context.Context, key string) (*domain.Session, error) {
	var cmd *redis.StringCmd
	if s.ttl > 0 {
		cmd = s.client.GetEx(ctx, s.key(key), s.ttl)
	} else {
		cmd = s.client.Get(ctx, s.key(key))
	}
	raw, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess, ok := session.Decode(raw)
	if !ok {
		// Heal the record; a failure here only delays the overwrite.
		_ = s.client.Del(ctx, s.key(key)).Err()
		return nil, nil
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, key string, sess *domain.Session) error {
	raw, err := session.Encode(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(browserID string) string {
	return session.StorageKey + ":" + browserID
}
