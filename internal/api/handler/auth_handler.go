package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/api/middleware"
	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/guard"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

type AuthHandler struct {
	svc    ports.PortalService
	logger zerolog.Logger
}

func NewAuthHandler(svc ports.PortalService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Identifier string `json:"identifier" form:"identifier" validate:"required"`
	Password   string `json:"password"   form:"password"   validate:"required"`
}

type signupRequest struct {
	FirstName    string `form:"firstName"    validate:"required"`
	LastName     string `form:"lastName"     validate:"required"`
	DateOfBirth  string `form:"dateOfBirth"  validate:"required,datetime=2006-01-02"`
	Email        string `form:"email"        validate:"required,email"`
	Password     string `form:"password"     validate:"required,min=6"`
	NationalID   string `form:"nationalId"   validate:"required,len=14,numeric"`
	FacultyID    int    `form:"facultyId"    validate:"required,gt=0"`
	DepartmentID int    `form:"departmentId" validate:"required,gt=0"`
	Year         int    `form:"year"         validate:"required,gt=0"`
}

// LoginPage renders the login form.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Page
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, http.StatusOK, Page{View: "login", Session: sessionView(middleware.CurrentSession(c))})
}

// Login authenticates against the backend, stores the session for this
// browser and redirects to the role's landing page.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      303   "Redirect to the landing page of the role"
// @Failure      400   {object}  Page
// @Failure      401   {object}  Page
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  Page
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	page := Page{View: "login"}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		page.Error = "invalid payload"
		return render(c, http.StatusBadRequest, page)
	}
	if err := c.Validate(&req); err != nil {
		return renderError(c, page, err)
	}

	sc, err := ctxSessionContext(c)
	if err != nil {
		return err
	}

	sess, err := h.svc.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		h.logger.Info().Err(err).Str("identifier", req.Identifier).Msg("login failed")
		return renderError(c, page, err)
	}

	if err := sc.Set(c.Request().Context(), sess, domain.ChangeLogin); err != nil {
		return storeError(err)
	}
	return c.Redirect(http.StatusSeeOther, guard.Home(sess))
}

// Logout clears the session of this browser.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  "Redirect to /login"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sc, err := ctxSessionContext(c)
	if err != nil {
		return err
	}
	if err := sc.Clear(c.Request().Context(), domain.ChangeLogout); err != nil {
		return storeError(err)
	}
	return c.Redirect(http.StatusSeeOther, guard.PathLogin)
}

// SignupPage renders the signup form options.
//
// @Summary      Signup options
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Page
// @Router       /signup [get]
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return render(c, http.StatusOK, Page{View: "signup", Data: h.svc.SignupOptions()})
}

// Signup forwards a registration with its identity documents.
//
// @Summary      Signup
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        firstName       formData  string  true  "First name"
// @Param        lastName        formData  string  true  "Last name"
// @Param        dateOfBirth     formData  string  true  "YYYY-MM-DD"
// @Param        email           formData  string  true  "Faculty email"
// @Param        password        formData  string  true  "Password"
// @Param        nationalId      formData  string  true  "14 digit national id"
// @Param        facultyId       formData  int     true  "Faculty"
// @Param        departmentId    formData  int     true  "Department"
// @Param        year            formData  int     true  "Academic year"
// @Param        nationalIdScan  formData  file    true  "National id scan (JPEG/PNG)"
// @Param        profilePhoto    formData  file    true  "Profile photo (JPEG/PNG)"
// @Success      201  {object}  Page
// @Failure      400  {object}  Page
// @Failure      502  {object}  Page
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	page := Page{View: "signup", Data: h.svc.SignupOptions()}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		page.Error = "invalid payload"
		return render(c, http.StatusBadRequest, page)
	}
	if err := c.Validate(&req); err != nil {
		return renderError(c, page, err)
	}

	scan, err := formUpload(c, "nationalIdScan")
	if err != nil {
		return renderError(c, page, err)
	}
	photo, err := formUpload(c, "profilePhoto")
	if err != nil {
		return renderError(c, page, err)
	}

	ack, err := h.svc.Signup(c.Request().Context(), domain.SignupForm{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth,
		Email:          req.Email,
		Password:       req.Password,
		NationalID:     req.NationalID,
		FacultyID:      req.FacultyID,
		DepartmentID:   req.DepartmentID,
		Year:           req.Year,
		NationalIDScan: scan,
		ProfilePhoto:   photo,
	})
	if err != nil {
		return renderError(c, page, err)
	}

	page.Notice = ack.Message
	if page.Notice == "" {
		page.Notice = "Account created. Please wait for admin approval."
	}
	return render(c, http.StatusCreated, page)
}
