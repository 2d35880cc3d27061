package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscard/portal-gateway/internal/api/handler"
	"github.com/campuscard/portal-gateway/internal/core/guard"
)

// Guard names as they appear in logs and metrics.
const (
	guardAuth            = "require_auth"
	guardApprovedStudent = "require_approved_student"
	guardAdmin           = "require_admin"
)

var guards = map[string]guard.Guard{
	guardAuth:            guard.RequireAuth,
	guardApprovedStudent: guard.RequireApprovedStudent,
	guardAdmin:           guard.RequireAdmin,
}

// route is one entry of the portal route table.
type route struct {
	method  string
	path    string
	guard   string
	handler echo.HandlerFunc
	// loginAttempt routes are rate limited per client IP.
	loginAttempt bool
}

type portalHandlers struct {
	auth    *handler.AuthHandler
	student *handler.StudentHandler
	admin   *handler.AdminHandler
	public  *handler.PublicHandler
}

func portalRoutes(h portalHandlers) []route {
	return []route{
		{method: http.MethodGet, path: "/", handler: h.auth.LoginPage},
		{method: http.MethodGet, path: guard.PathLogin, handler: h.auth.LoginPage},
		{method: http.MethodPost, path: guard.PathLogin, handler: h.auth.Login, loginAttempt: true},
		{method: http.MethodPost, path: "/logout", handler: h.auth.Logout},
		{method: http.MethodGet, path: "/signup", handler: h.auth.SignupPage},
		{method: http.MethodPost, path: "/signup", handler: h.auth.Signup},

		{method: http.MethodGet, path: guard.PathStatus, guard: guardAuth, handler: h.student.Status},
		{method: http.MethodPost, path: guard.PathStatus + "/photo", guard: guardAuth, handler: h.student.StatusPhoto},

		{method: http.MethodGet, path: guard.PathProfile, guard: guardApprovedStudent, handler: h.student.Profile},
		{method: http.MethodPut, path: guard.PathProfile, guard: guardApprovedStudent, handler: h.student.UpdateProfile},
		{method: http.MethodPost, path: guard.PathProfile + "/photo", guard: guardApprovedStudent, handler: h.student.ProfilePhoto},

		{method: http.MethodGet, path: guard.PathAdmin, guard: guardAdmin, handler: h.admin.Dashboard},
		{method: http.MethodGet, path: guard.PathAdminPending, guard: guardAdmin, handler: h.admin.Pending},
		{method: http.MethodGet, path: "/admin/review/:userId", guard: guardAdmin, handler: h.admin.Review},
		{method: http.MethodPost, path: "/admin/review/:userId/decision", guard: guardAdmin, handler: h.admin.Decide},
		{method: http.MethodPost, path: "/admin/review/:userId/send-verification", guard: guardAdmin, handler: h.admin.SendVerification},
		{method: http.MethodPost, path: "/admin/review/:userId/verify-email", guard: guardAdmin, handler: h.admin.VerifyEmail},

		{method: http.MethodGet, path: "/directory", handler: h.public.Directory},
		{method: http.MethodGet, path: "/directory/:userId", handler: h.public.PublicProfile},
	}
}
