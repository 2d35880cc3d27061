// Package guard holds the route authorization predicates of the portal.
//
// A Guard is a pure function of the current session and the requested path.
// It never performs I/O and never renders: it either allows the view or
// names the page the visitor must be sent to instead.
package guard

import "github.com/campuscard/portal-gateway/internal/core/domain"

const (
	PathLogin        = "/login"
	PathStatus       = "/status"
	PathProfile      = "/me"
	PathAdmin        = "/admin"
	PathAdminPending = "/admin/pending"
)

// Guard decides whether a session may reach path.
type Guard func(s *domain.Session, path string) domain.Outcome

// RequireAuth allows any session.
func RequireAuth(s *domain.Session, _ string) domain.Outcome {
	if s == nil {
		return domain.Redirect(PathLogin, domain.ReasonAuthAbsent)
	}
	return domain.Allow()
}

// RequireApprovedStudent allows only students whose account is approved.
func RequireApprovedStudent(s *domain.Session, _ string) domain.Outcome {
	if s == nil {
		return domain.Redirect(PathLogin, domain.ReasonAuthAbsent)
	}
	if !s.IsApprovedStudent() {
		return domain.Redirect(Home(s), domain.ReasonAuthInsufficient)
	}
	return domain.Allow()
}

// RequireAdmin allows only administrators.
func RequireAdmin(s *domain.Session, _ string) domain.Outcome {
	if s == nil {
		return domain.Redirect(PathLogin, domain.ReasonAuthAbsent)
	}
	if !s.IsAdmin() {
		return domain.Redirect(Home(s), domain.ReasonAuthInsufficient)
	}
	return domain.Allow()
}

// Chain evaluates guards left to right; the first redirect wins.
func Chain(guards ...Guard) Guard {
	return func(s *domain.Session, path string) domain.Outcome {
		for _, g := range guards {
			if out := g(s, path); !out.Allowed() {
				return out
			}
		}
		return domain.Allow()
	}
}

// Home is the landing page of a session. It is the post-login redirect
// target and the destination of visitors who lack the privilege a page
// requires.
func Home(s *domain.Session) string {
	switch {
	case s == nil:
		return PathLogin
	case s.IsAdmin():
		return PathAdminPending
	case s.IsApprovedStudent():
		return PathProfile
	default:
		return PathStatus
	}
}
