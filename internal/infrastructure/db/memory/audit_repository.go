package memory

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

const auditCapacity = 1024

// AuditRepository logs session events and keeps the most recent ones in
// memory. It backs the audit trail when MongoDB is not configured.
type AuditRepository struct {
	log zerolog.Logger

	mu     sync.Mutex
	events []domain.AuditEvent
}

func NewAuditRepository(log zerolog.Logger) *AuditRepository {
	return &AuditRepository{log: log}
}

func (r *AuditRepository) InsertSessionEvent(_ context.Context, event domain.AuditEvent) error {
	r.log.Info().
		Str("user_id", event.UserID).
		Str("role", string(event.Role)).
		Str("kind", string(event.Kind)).
		Str("browser_id", event.BrowserID).
		Time("at", event.At).
		Msg("session event")

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == auditCapacity {
		r.events = r.events[1:]
	}
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the retained events, oldest first.
func (r *AuditRepository) Events() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}
