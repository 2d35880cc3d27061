package service

import "github.com/campuscard/portal-gateway/internal/core/domain"

const unknownFaculty = "Unknown Faculty"

// ComputeDashboard aggregates the user list into dashboard totals. Admin
// accounts are excluded and status comparison ignores case.
func ComputeDashboard(users []domain.UserSummary) *domain.DashboardStats {
	stats := &domain.DashboardStats{ByFaculty: make(map[string]int)}

	for _, u := range users {
		if u.IsAdmin() {
			continue
		}
		stats.TotalStudents++

		switch u.NormalizedStatus() {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusApproved:
			stats.Approved++
		case domain.StatusRejected:
			stats.Rejected++
		}

		faculty := u.Faculty
		if faculty == "" {
			faculty = unknownFaculty
		}
		stats.ByFaculty[faculty]++
	}
	return stats
}
