package ports

import (
	"context"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// PortalAPI is the remote registration backend. Methods taking a token are
// authorised calls; a rejected credential surfaces as domain.ErrUnauthorized.
type PortalAPI interface {
	Login(ctx context.Context, identifier, password string) (*domain.LoginResult, error)
	Signup(ctx context.Context, form domain.SignupForm) (*domain.Ack, error)

	GetProfile(ctx context.Context, token string) (domain.Record, error)
	UpdateProfile(ctx context.Context, token string, in domain.ProfileUpdate) (domain.Record, error)
	UploadProfilePhoto(ctx context.Context, token string, photo domain.Upload) (*domain.Ack, error)

	ListUsers(ctx context.Context, token string) ([]domain.UserSummary, error)
	ListPendingUsers(ctx context.Context, token string) ([]domain.UserSummary, error)
	GetUser(ctx context.Context, token, userID string) (domain.Record, error)
	ApproveReject(ctx context.Context, token string, d domain.ReviewDecision) (*domain.Ack, error)
	SendVerification(ctx context.Context, token, userID string) (*domain.Ack, error)
	VerifyEmail(ctx context.Context, token, userID, verificationToken string) (*domain.Ack, error)

	PublicStudents(ctx context.Context) ([]domain.Record, error)
	PublicProfile(ctx context.Context, userID string) (domain.Record, error)
}
