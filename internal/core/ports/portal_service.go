package ports

import (
	"context"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// SignupOptions lists what the signup form may offer.
type SignupOptions struct {
	Faculties   []domain.Faculty    `json:"faculties"`
	Departments []domain.Department `json:"departments"`
	EmailDomain string              `json:"emailDomain"`
	MaxUpload   int64               `json:"maxUploadBytes"`
}

// PortalService defines the use cases behind the portal views.
type PortalService interface {
	Login(ctx context.Context, identifier, password string) (*domain.Session, error)
	SignupOptions() SignupOptions
	Signup(ctx context.Context, form domain.SignupForm) (*domain.Ack, error)

	Profile(ctx context.Context, token string) (domain.Record, error)
	UpdateProfile(ctx context.Context, token string, in domain.ProfileUpdate) (domain.Record, error)
	UploadPhoto(ctx context.Context, token string, photo domain.Upload) (*domain.Ack, error)

	Dashboard(ctx context.Context, token string) (*domain.DashboardStats, error)
	PendingUsers(ctx context.Context, token string) ([]domain.UserSummary, error)
	User(ctx context.Context, token, userID string) (domain.Record, error)
	Decide(ctx context.Context, token string, d domain.ReviewDecision) (*domain.Ack, error)
	SendVerification(ctx context.Context, token, userID string) (*domain.Ack, error)
	VerifyEmail(ctx context.Context, token, userID, verificationToken string) (*domain.Ack, error)

	Directory(ctx context.Context) ([]domain.Record, error)
	PublicProfile(ctx context.Context, userID string) (domain.Record, error)
}
