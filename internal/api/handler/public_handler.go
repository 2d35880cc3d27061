package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscard/portal-gateway/internal/api/middleware"
	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

// PublicHandler serves pages that need no session.
type PublicHandler struct {
	svc ports.PortalService
}

func NewPublicHandler(svc ports.PortalService) *PublicHandler {
	return &PublicHandler{svc: svc}
}

// Directory lists approved students with a public profile.
//
// @Summary      Student directory
// @Tags         public
// @Produce      json
// @Success      200  {object}  Page
// @Failure      502  {object}  Page
// @Router       /directory [get]
func (h *PublicHandler) Directory(c echo.Context) error {
	page := Page{View: "directory", Session: sessionView(middleware.CurrentSession(c))}

	students, err := h.svc.Directory(c.Request().Context())
	if err != nil {
		return renderError(c, page, err)
	}
	if students == nil {
		students = []domain.Record{}
	}
	page.Data = students
	return render(c, http.StatusOK, page)
}

// PublicProfile shows one public student profile.
//
// @Summary      Public profile
// @Tags         public
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Page
// @Failure      404     {object}  Page
// @Router       /directory/{userId} [get]
func (h *PublicHandler) PublicProfile(c echo.Context) error {
	page := Page{View: "public_profile", Session: sessionView(middleware.CurrentSession(c))}

	rec, err := h.svc.PublicProfile(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return renderError(c, page, err)
	}
	page.Data = rec
	return render(c, http.StatusOK, page)
}

// NotFound renders the not-found view for unknown portal paths.
func (h *PublicHandler) NotFound(c echo.Context) error {
	return render(c, http.StatusNotFound, Page{
		View:    "not_found",
		Session: sessionView(middleware.CurrentSession(c)),
		Error:   "Page not found",
	})
}
