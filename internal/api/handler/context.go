package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/campuscard/portal-gateway/internal/api/middleware"
	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/session"
)

// ctxSession returns the session the route guard authorised. Guarded routes
// always have one; its absence means the route was wired without a guard.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s := middleware.CurrentSession(c)
	if s == nil {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}

// ctxSessionContext returns the live session container of the browser.
func ctxSessionContext(c echo.Context) (*session.Context, error) {
	sc := middleware.SessionContext(c)
	if sc == nil {
		return nil, fmt.Errorf("%w: no session context on request", domain.ErrStoreUnavailable)
	}
	return sc, nil
}

// storeError classifies a failed session write.
func storeError(err error) error {
	if errors.Is(err, domain.ErrInvalidSession) {
		return fmt.Errorf("%w: %v", domain.ErrRemote, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
