package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

// StudentHandler serves the status page of any signed-in visitor and the
// profile of approved students.
type StudentHandler struct {
	svc    ports.PortalService
	logger zerolog.Logger
}

func NewStudentHandler(svc ports.PortalService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{svc: svc, logger: logger}
}

type profileUpdateRequest struct {
	Bio        string `json:"bio"        form:"bio"`
	Phone      string `json:"phone"      form:"phone"`
	LinkedIn   string `json:"linkedin"   form:"linkedin"`
	GitHub     string `json:"github"     form:"github"`
	Interests  string `json:"interests"  form:"interests"`
	Visibility string `json:"visibility" form:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

type statusData struct {
	Status  domain.AccountStatus `json:"status,omitempty"`
	Message string               `json:"message"`
}

func statusMessage(s *domain.Session) string {
	switch {
	case s.IsAdmin():
		return "You are signed in as an administrator."
	case s.Status == domain.StatusApproved:
		return "Your account is approved."
	case s.Status == domain.StatusRejected:
		return "Your application was rejected. Please contact the administration."
	default:
		return "Your account is not approved yet. Please complete required uploads and wait for admin approval."
	}
}

// Status renders the account status page.
//
// @Summary      Account status
// @Tags         student
// @Produce      json
// @Success      200  {object}  Page
// @Success      302  "Redirect to /login when signed out"
// @Router       /status [get]
func (h *StudentHandler) Status(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, Page{
		View:    "status",
		Session: sessionView(s),
		Data:    statusData{Status: s.Status, Message: statusMessage(s)},
	})
}

// StatusPhoto uploads a profile photo from the status page.
//
// @Summary      Upload profile photo while pending
// @Tags         student
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Profile photo (JPEG/PNG)"
// @Success      200  {object}  Page
// @Failure      400  {object}  Page
// @Router       /status/photo [post]
func (h *StudentHandler) StatusPhoto(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "status", Session: sessionView(s), Data: statusData{Status: s.Status, Message: statusMessage(s)}}

	photo, err := formUpload(c, "file")
	if err != nil {
		return renderError(c, page, err)
	}
	ack, err := h.svc.UploadPhoto(c.Request().Context(), s.Token, photo)
	if err != nil {
		return renderError(c, page, err)
	}

	page.Notice = ack.Message
	if page.Notice == "" {
		page.Notice = "Profile photo uploaded successfully."
	}
	return render(c, http.StatusOK, page)
}

// Profile renders the student's own profile.
//
// @Summary      Student profile
// @Tags         student
// @Produce      json
// @Success      200  {object}  Page
// @Failure      502  {object}  Page
// @Router       /me [get]
func (h *StudentHandler) Profile(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "profile", Session: sessionView(s)}

	rec, err := h.svc.Profile(c.Request().Context(), s.Token)
	if err != nil {
		return renderError(c, page, err)
	}
	page.Data = rec
	return render(c, http.StatusOK, page)
}

// UpdateProfile saves the editable profile fields.
//
// @Summary      Update profile
// @Tags         student
// @Accept       json
// @Produce      json
// @Param        body  body      profileUpdateRequest  true  "Profile fields"
// @Success      200   {object}  Page
// @Failure      400   {object}  Page
// @Failure      422   {object}  Page
// @Router       /me [put]
func (h *StudentHandler) UpdateProfile(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "profile", Session: sessionView(s)}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		page.Error = "invalid payload"
		return render(c, http.StatusBadRequest, page)
	}
	if err := c.Validate(&req); err != nil {
		return renderError(c, page, err)
	}

	rec, err := h.svc.UpdateProfile(c.Request().Context(), s.Token, domain.ProfileUpdate(req))
	if err != nil {
		return renderError(c, page, err)
	}
	page.Data = rec
	page.Notice = "Profile updated successfully."
	return render(c, http.StatusOK, page)
}

// ProfilePhoto replaces the student's photo.
//
// @Summary      Upload profile photo
// @Tags         student
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Profile photo (JPEG/PNG)"
// @Success      200  {object}  Page
// @Failure      400  {object}  Page
// @Router       /me/photo [post]
func (h *StudentHandler) ProfilePhoto(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "profile", Session: sessionView(s)}

	photo, err := formUpload(c, "file")
	if err != nil {
		return renderError(c, page, err)
	}
	if _, err := h.svc.UploadPhoto(c.Request().Context(), s.Token, photo); err != nil {
		return renderError(c, page, err)
	}

	rec, err := h.svc.Profile(c.Request().Context(), s.Token)
	if err != nil {
		return renderError(c, page, err)
	}
	page.Data = rec
	page.Notice = "Photo updated successfully!"
	return render(c, http.StatusOK, page)
}
