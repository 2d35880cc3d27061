package session

import (
	"context"
	"errors"
	"sync"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

type stubStore struct {
	mu      sync.Mutex
	records map[string][]byte
	loads   int
	saveErr error
	loadErr error
}

func newStubStore() *stubStore {
	return &stubStore{records: make(map[string][]byte)}
}

func (s *stubStore) Load(_ context.Context, key string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	raw, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	sess, ok := Decode(raw)
	if !ok {
		delete(s.records, key)
		return nil, nil
	}
	return sess, nil
}

func (s *stubStore) Save(_ context.Context, key string, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := Encode(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *stubStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

var errStoreDown = errors.New("store down")
