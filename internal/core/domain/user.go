package domain

import "strings"

// Record is an opaque JSON object returned by the backend (profile, user
// details). The gateway forwards it to the renderer unchanged.
type Record map[string]any

// UserSummary is one row of the admin user lists.
type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Faculty   string `json:"faculty,omitempty"`
}

// IsAdmin reports whether the row describes an administrator account. The
// backend is inconsistent about casing and prefixes.
func (u UserSummary) IsAdmin() bool {
	r, _ := ParseRole(u.Role)
	return r == RoleAdmin
}

// NormalizedStatus returns the upper-case status of the row.
func (u UserSummary) NormalizedStatus() AccountStatus {
	st, _ := ParseStatus(u.Status)
	return st
}

// FullName joins first and last names.
func (u UserSummary) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
