package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// Page is the view model handed to the screen renderer.
type Page struct {
	View    string       `json:"view"`
	Session *SessionView `json:"session,omitempty"`
	Data    any          `json:"data,omitempty"`
	Notice  string       `json:"notice,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SessionView is the part of a session that may be shown; the token never
// leaves the gateway.
type SessionView struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}

func sessionView(s *domain.Session) *SessionView {
	if s == nil {
		return nil
	}
	return &SessionView{UserID: s.UserID, Email: s.Email, Role: string(s.Role), Status: string(s.Status)}
}

// remoteFailure is implemented by backend client errors.
type remoteFailure interface {
	HTTPStatus() int
	UserMessage() string
}

func render(c echo.Context, code int, p Page) error {
	return c.JSON(code, p)
}

// renderError shows err inline on the view. An unauthorized credential is
// not a view concern and is returned to the central error handler.
func renderError(c echo.Context, p Page, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	code, msg := inlineError(err)
	p.Error = msg
	return render(c, code, p)
}

func inlineError(err error) (int, string) {
	var rf remoteFailure
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	case errors.Is(err, domain.ErrRejectedContent):
		return http.StatusUnprocessableEntity, "Update rejected: your content contains inappropriate language. Please remove it."
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, "This decision is already being processed."
	case errors.As(err, &rf):
		if st := rf.HTTPStatus(); st >= 400 && st < 500 {
			return st, rf.UserMessage()
		}
		return http.StatusBadGateway, rf.UserMessage()
	case errors.Is(err, domain.ErrRemote):
		return http.StatusBadGateway, "The registration service returned an unexpected answer."
	}
	return http.StatusInternalServerError, "Something went wrong."
}
