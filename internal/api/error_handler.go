package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/api/middleware"
	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/guard"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Clears the browser session and redirects to the login page when the
//     backend rejected the session credential.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			revokeSession(c, log)
			_ = c.Redirect(http.StatusSeeOther, guard.PathLogin)
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func revokeSession(c echo.Context, log zerolog.Logger) {
	sc := middleware.SessionContext(c)
	if sc == nil {
		return
	}
	// The visitor may already be gone; the clear must still happen.
	ctx := context.WithoutCancel(c.Request().Context())
	if err := sc.Clear(ctx, domain.ChangeRevoked); err != nil {
		log.Warn().Err(err).Str("browser_id", sc.BrowserID()).Msg("failed to clear revoked session")
		return
	}
	log.Info().Str("browser_id", sc.BrowserID()).Str("path", c.Request().URL.Path).Msg("session revoked by backend")
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("session store unavailable")
		return http.StatusServiceUnavailable, "session store unavailable"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRejectedContent):
		return http.StatusUnprocessableEntity, domain.ErrRejectedContent.Error()
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, domain.ErrDuplicateSubmission.Error()
	case errors.Is(err, domain.ErrRemote):
		log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("backend call failed")
		return http.StatusBadGateway, "registration service unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
