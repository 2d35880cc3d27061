package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

func student(status domain.AccountStatus) *domain.Session {
	return &domain.Session{Token: "t", UserID: "7", Email: "s@eng.psu.edu.eg", Role: domain.RoleStudent, Status: status}
}

func admin() *domain.Session {
	return &domain.Session{Token: "t", UserID: "1", Email: "a@eng.psu.edu.eg", Role: domain.RoleAdmin}
}

var (
	studentStatuses = []domain.AccountStatus{domain.StatusPending, domain.StatusApproved, domain.StatusRejected}
	adminPaths      = []string{"/admin", "/admin/pending", "/admin/review/42", "/admin/review/abc"}
)

func TestRequireAuth(t *testing.T) {
	for _, path := range []string{"/status", "/anything"} {
		out := RequireAuth(nil, path)
		assert.Equal(t, domain.Redirect(PathLogin, domain.ReasonAuthAbsent), out)

		assert.True(t, RequireAuth(admin(), path).Allowed())
		for _, st := range studentStatuses {
			assert.True(t, RequireAuth(student(st), path).Allowed(), "status %s", st)
		}
	}
}

func TestRequireApprovedStudent(t *testing.T) {
	out := RequireApprovedStudent(nil, PathProfile)
	assert.Equal(t, PathLogin, out.Target)
	assert.Equal(t, domain.ReasonAuthAbsent, out.Reason)

	assert.True(t, RequireApprovedStudent(student(domain.StatusApproved), PathProfile).Allowed())

	for _, st := range []domain.AccountStatus{domain.StatusPending, domain.StatusRejected} {
		out := RequireApprovedStudent(student(st), PathProfile)
		assert.False(t, out.Allowed(), "status %s", st)
		assert.Equal(t, PathStatus, out.Target, "status %s", st)
		assert.Equal(t, domain.ReasonAuthInsufficient, out.Reason)
	}

	out = RequireApprovedStudent(admin(), PathProfile)
	assert.False(t, out.Allowed())
	assert.Equal(t, PathAdminPending, out.Target)
}

func TestRequireAdmin(t *testing.T) {
	for _, path := range adminPaths {
		assert.True(t, RequireAdmin(admin(), path).Allowed(), path)
		assert.Equal(t, PathLogin, RequireAdmin(nil, path).Target, path)

		for _, st := range studentStatuses {
			out := RequireAdmin(student(st), path)
			assert.False(t, out.Allowed(), "%s as %s", path, st)
			assert.NotEqual(t, PathLogin, out.Target)
		}
	}

	assert.Equal(t, PathProfile, RequireAdmin(student(domain.StatusApproved), "/admin").Target)
	assert.Equal(t, PathStatus, RequireAdmin(student(domain.StatusPending), "/admin").Target)
}

func TestChain_FirstRedirectWins(t *testing.T) {
	g := Chain(RequireAuth, RequireAdmin)

	assert.Equal(t, PathLogin, g(nil, "/admin").Target)
	assert.Equal(t, PathStatus, g(student(domain.StatusPending), "/admin").Target)
	assert.True(t, g(admin(), "/admin").Allowed())
	assert.True(t, Chain()(nil, "/").Allowed())
}

func TestHome(t *testing.T) {
	cases := []struct {
		name string
		s    *domain.Session
		want string
	}{
		{"anonymous", nil, PathLogin},
		{"admin", admin(), PathAdminPending},
		{"approved", student(domain.StatusApproved), PathProfile},
		{"pending", student(domain.StatusPending), PathStatus},
		{"rejected", student(domain.StatusRejected), PathStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Home(tc.s))
		})
	}
}
