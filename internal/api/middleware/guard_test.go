package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/guard"
	"github.com/campuscard/portal-gateway/internal/infrastructure/db/memory"
)

func guardedRequest(t *testing.T, seed *domain.Session, path string, g guard.Guard) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	store := memory.NewSessionStore()
	if seed != nil {
		if err := store.Save(context.Background(), testBrowserID, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	sessionMW := Session(newRegistry(t, store), SessionConfig{TTL: time.Hour}, zerolog.Nop())
	guardMW := Guard("test", g, zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: "campuscard.session", Value: testBrowserID})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := sessionMW(guardMW(func(c echo.Context) error {
		called = true
		if CurrentSession(c) == nil && seed != nil {
			t.Fatalf("handler must see the authorised session")
		}
		return c.NoContent(http.StatusOK)
	}))
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuard_Allows(t *testing.T) {
	admin := &domain.Session{Token: "t", UserID: "1", Email: "a", Role: domain.RoleAdmin}

	rec, called := guardedRequest(t, admin, "/admin/review/42", guard.RequireAdmin)
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_RedirectsAnonymous(t *testing.T) {
	rec, called := guardedRequest(t, nil, "/admin/pending", guard.RequireAdmin)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected /login, got %q", loc)
	}
}

func TestGuard_RedirectsPendingStudentToStatus(t *testing.T) {
	pending := &domain.Session{Token: "t", UserID: "2", Email: "s", Role: domain.RoleStudent, Status: domain.StatusPending}

	rec, called := guardedRequest(t, pending, "/me", guard.RequireApprovedStudent)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if loc := rec.Header().Get("Location"); loc != "/status" {
		t.Fatalf("expected /status, got %q", loc)
	}
}
