package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/api/metrics"
	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/guard"
)

// Guard evaluates g before the handler runs. A redirect outcome answers 302
// and the handler is never invoked.
func Guard(name string, g guard.Guard, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var s *domain.Session
			if sc := SessionContext(c); sc != nil {
				s = sc.Current()
			}

			out := g(s, c.Request().URL.Path)
			metrics.GuardDecisionsTotal.WithLabelValues(name, string(out.Decision), string(out.Reason)).Inc()

			if !out.Allowed() {
				log.Debug().
					Str("guard", name).
					Str("path", c.Request().URL.Path).
					Str("reason", string(out.Reason)).
					Str("target", out.Target).
					Msg("route guard redirect")
				return c.Redirect(http.StatusFound, out.Target)
			}

			c.Set(sessionSnapshotKey, s)
			return next(c)
		}
	}
}
