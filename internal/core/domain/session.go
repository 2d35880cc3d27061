package domain

import (
	"fmt"
	"strings"
)

// Role is the authorization role of a portal account.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// AccountStatus is the approval state of a student account.
type AccountStatus string

const (
	StatusPending  AccountStatus = "PENDING"
	StatusApproved AccountStatus = "APPROVED"
	StatusRejected AccountStatus = "REJECTED"
)

// ParseRole normalises a role as returned by the backend ("ADMIN",
// "ROLE_ADMIN", "student", ...). The second value reports whether the role is
// known.
func ParseRole(s string) (Role, bool) {
	r := strings.ToLower(strings.TrimSpace(s))
	r = strings.TrimPrefix(r, "role_")
	switch Role(r) {
	case RoleStudent, RoleAdmin:
		return Role(r), true
	}
	return Role(r), false
}

// ParseStatus normalises an account status to its upper-case form.
func ParseStatus(s string) (AccountStatus, bool) {
	st := AccountStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, true
	}
	return st, false
}

// Session is the authenticated identity of one browser. It is either absent
// (nil) or fully populated; it is replaced as a whole, never patched.
type Session struct {
	Token  string        `json:"token"`
	UserID string        `json:"userId"`
	Email  string        `json:"email"`
	Role   Role          `json:"role"`
	Status AccountStatus `json:"status"`
}

// Validate reports whether every required attribute is present. Status is
// mandatory for students and optional for admins.
func (s *Session) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil session", ErrInvalidSession)
	}
	switch {
	case s.Token == "":
		return fmt.Errorf("%w: missing token", ErrInvalidSession)
	case s.UserID == "":
		return fmt.Errorf("%w: missing user id", ErrInvalidSession)
	case s.Email == "":
		return fmt.Errorf("%w: missing email", ErrInvalidSession)
	}

	switch s.Role {
	case RoleStudent, RoleAdmin:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidSession, s.Role)
	}

	if s.Status == "" && s.Role == RoleAdmin {
		return nil
	}
	switch s.Status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidSession, s.Status)
	}
	return nil
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// IsApprovedStudent reports whether the session may reach the profile view.
func (s *Session) IsApprovedStudent() bool {
	return s != nil && s.Role == RoleStudent && s.Status == StatusApproved
}

// Clone returns an independent copy, or nil for an absent session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
