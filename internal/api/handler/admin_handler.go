package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/guard"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

// AdminHandler serves the review workflow. All routes sit behind
// RequireAdmin.
type AdminHandler struct {
	svc    ports.PortalService
	logger zerolog.Logger
}

func NewAdminHandler(svc ports.PortalService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

type decisionRequest struct {
	Approved        bool   `json:"approved"        form:"approved"`
	RejectionReason string `json:"rejectionReason" form:"rejectionReason"`
}

type verifyEmailRequest struct {
	Token string `json:"token" form:"token" validate:"required"`
}

type reviewData struct {
	User              domain.Record `json:"user,omitempty"`
	VerificationToken string        `json:"verificationToken,omitempty"`
}

// Dashboard renders the student population statistics.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Page
// @Failure      502  {object}  Page
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "admin_dashboard", Session: sessionView(s)}

	stats, err := h.svc.Dashboard(c.Request().Context(), s.Token)
	if err != nil {
		return renderError(c, page, err)
	}
	page.Data = stats
	return render(c, http.StatusOK, page)
}

// Pending lists the accounts waiting for review.
//
// @Summary      Pending accounts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Page
// @Failure      502  {object}  Page
// @Router       /admin/pending [get]
func (h *AdminHandler) Pending(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "admin_pending", Session: sessionView(s)}

	users, err := h.svc.PendingUsers(c.Request().Context(), s.Token)
	if err != nil {
		return renderError(c, page, err)
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	page.Data = users
	return render(c, http.StatusOK, page)
}

// Review shows one account with its documents.
//
// @Summary      Review account
// @Tags         admin
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Page
// @Failure      502     {object}  Page
// @Router       /admin/review/{userId} [get]
func (h *AdminHandler) Review(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "admin_review", Session: sessionView(s)}

	user, err := h.svc.User(c.Request().Context(), s.Token, c.Param("userId"))
	if err != nil {
		return renderError(c, page, err)
	}
	page.Data = reviewData{User: user}
	return render(c, http.StatusOK, page)
}

// Decide approves or rejects the account and returns to the pending list.
//
// @Summary      Approve or reject
// @Tags         admin
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        userId  path      string           true  "User id"
// @Param        body    body      decisionRequest  true  "Decision"
// @Success      303     "Redirect to /admin/pending"
// @Failure      400     {object}  Page
// @Failure      409     {object}  Page
// @Router       /admin/review/{userId}/decision [post]
func (h *AdminHandler) Decide(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	userID := c.Param("userId")
	page := Page{View: "admin_review", Session: sessionView(s)}

	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		page.Error = "invalid payload"
		return render(c, http.StatusBadRequest, page)
	}

	_, err = h.svc.Decide(c.Request().Context(), s.Token, domain.ReviewDecision{
		UserID:          userID,
		Approved:        req.Approved,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return renderError(c, page, err)
	}
	return c.Redirect(http.StatusSeeOther, guard.PathAdminPending)
}

// SendVerification asks the backend to mail a verification token.
//
// @Summary      Send verification email
// @Tags         admin
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Page
// @Failure      502     {object}  Page
// @Router       /admin/review/{userId}/send-verification [post]
func (h *AdminHandler) SendVerification(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "admin_review", Session: sessionView(s)}

	ack, err := h.svc.SendVerification(c.Request().Context(), s.Token, c.Param("userId"))
	if err != nil {
		return renderError(c, page, err)
	}
	page.Data = reviewData{VerificationToken: ack.VerificationToken}
	page.Notice = ack.Message
	if page.Notice == "" {
		page.Notice = "Verification email sent."
	}
	return render(c, http.StatusOK, page)
}

// VerifyEmail confirms the user's email with the token they received.
//
// @Summary      Verify email
// @Tags         admin
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        userId  path      string              true  "User id"
// @Param        body    body      verifyEmailRequest  true  "Verification token"
// @Success      200     {object}  Page
// @Failure      400     {object}  Page
// @Router       /admin/review/{userId}/verify-email [post]
func (h *AdminHandler) VerifyEmail(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	page := Page{View: "admin_review", Session: sessionView(s)}

	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		page.Error = "invalid payload"
		return render(c, http.StatusBadRequest, page)
	}
	if err := c.Validate(&req); err != nil {
		return renderError(c, page, err)
	}

	ack, err := h.svc.VerifyEmail(c.Request().Context(), s.Token, c.Param("userId"), req.Token)
	if err != nil {
		return renderError(c, page, err)
	}
	page.Notice = ack.Message
	if page.Notice == "" {
		page.Notice = "Email verified."
	}
	return render(c, http.StatusOK, page)
}
