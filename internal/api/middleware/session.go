package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/api/metrics"
	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/session"
)

const (
	sessionContextKey  = "session_context"
	sessionSnapshotKey = "session_snapshot"
)

// SessionConfig controls the browser identity cookie.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	// Now is used for token expiry checks; defaults to time.Now.
	Now func() time.Time
}

// Session resolves the browser identity cookie into its session.Context.
// Unknown or malformed cookies get a fresh random identity. A stale JWT is
// cleared before any guard sees it.
func Session(reg *session.Registry, cfg SessionConfig, log zerolog.Logger) echo.MiddlewareFunc {
	if cfg.CookieName == "" {
		cfg.CookieName = session.StorageKey
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			browserID := ""
			if ck, err := c.Cookie(cfg.CookieName); err == nil {
				if id, perr := uuid.Parse(ck.Value); perr == nil {
					browserID = id.String()
				}
			}
			if browserID == "" {
				browserID = uuid.NewString()
			}

			c.SetCookie(&http.Cookie{
				Name:     cfg.CookieName,
				Value:    browserID,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := c.Request().Context()
			sc, err := reg.Get(ctx, browserID)
			if err != nil {
				return err
			}
			metrics.LiveSessionContexts.Set(float64(reg.Len()))
			if expired, err := sc.ExpireIfStale(ctx, cfg.Now()); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
			} else if expired {
				log.Info().Str("browser_id", browserID).Msg("session token expired")
			}

			c.Set(sessionContextKey, sc)
			return next(c)
		}
	}
}

// SessionContext returns the session.Context attached by Session, or nil.
func SessionContext(c echo.Context) *session.Context {
	sc, _ := c.Get(sessionContextKey).(*session.Context)
	return sc
}

// CurrentSession returns the session the route guard authorised, falling back
// to the live session for unguarded routes.
func CurrentSession(c echo.Context) *domain.Session {
	if s, ok := c.Get(sessionSnapshotKey).(*domain.Session); ok {
		return s
	}
	if sc := SessionContext(c); sc != nil {
		return sc.Current()
	}
	return nil
}
