// Package memory provides process-local implementations of the storage
// ports, used in development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/session"
)

// SessionStore keeps encoded session records in a map.
type SessionStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewSessionStore() *SessionStore {
	return &SessionStore{records: make(map[string][]byte)}
}

func (s *SessionStore) Load(_ context.Context, key string) (*domain.Session, error) {
	s.mu.RLock()
	raw, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	sess, ok := session.Decode(raw)
	if !ok {
		s.mu.Lock()
		delete(s.records, key)
		s.mu.Unlock()
		return nil, nil
	}
	return sess, nil
}

func (s *SessionStore) Save(_ context.Context, key string, sess *domain.Session) error {
	raw, err := session.Encode(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

// PutRaw stores raw bytes under key, bypassing the codec.
func (s *SessionStore) PutRaw(key string, raw []byte) {
	s.mu.Lock()
	s.records[key] = raw
	s.mu.Unlock()
}

// Raw returns the stored bytes under key.
func (s *SessionStore) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.records[key]
	return raw, ok
}

// SubmitGuard is an in-process ports.SubmitGuard with expiring entries.
type SubmitGuard struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	locks map[string]time.Time
}

func NewSubmitGuard(ttl time.Duration) *SubmitGuard {
	return &SubmitGuard{ttl: ttl, now: time.Now, locks: make(map[string]time.Time)}
}

func (g *SubmitGuard) Acquire(_ context.Context, action, subject string) (bool, error) {
	key := action + ":" + subject
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()
	if until, ok := g.locks[key]; ok && now.Before(until) {
		return false, nil
	}
	g.locks[key] = now.Add(g.ttl)
	return true, nil
}

func (g *SubmitGuard) Release(_ context.Context, action, subject string) error {
	g.mu.Lock()
	delete(g.locks, action+":"+subject)
	g.mu.Unlock()
	return nil
}
