package ports

import (
	"context"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// AuditRepository stores the trail of session changes.
type AuditRepository interface {
	InsertSessionEvent(ctx context.Context, event domain.AuditEvent) error
}

// SubmitGuard prevents the same action from being submitted twice within a
// short window.
type SubmitGuard interface {
	Acquire(ctx context.Context, action, subject string) (bool, error)
	Release(ctx context.Context, action, subject string) error
}
