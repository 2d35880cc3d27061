package ports

import (
	"context"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// SessionStore persists one session record per browser key.
//
// Load never fails on malformed stored data: it reports the session as
// absent and removes the broken record. A non-nil error means the store
// itself could not be reached.
type SessionStore interface {
	Load(ctx context.Context, key string) (*domain.Session, error)
	Save(ctx context.Context, key string, s *domain.Session) error
	Clear(ctx context.Context, key string) error
}
