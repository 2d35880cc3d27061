package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

// EmailDomain is the only address suffix accepted at signup.
const EmailDomain = "@eng.psu.edu.eg"

const reviewAction = "review"

var _ ports.PortalService = (*PortalService)(nil)

// PortalService implements the portal use cases on top of the backend API.
type PortalService struct {
	api       ports.PortalAPI
	submits   ports.SubmitGuard
	catalog   *Catalog
	moderator *Moderator
	logger    zerolog.Logger
}

func NewPortalService(api ports.PortalAPI, submits ports.SubmitGuard, logger zerolog.Logger) *PortalService {
	return &PortalService{
		api:       api,
		submits:   submits,
		catalog:   DefaultCatalog(),
		moderator: NewModerator(),
		logger:    logger,
	}
}

// Login authenticates against the backend and maps the answer into a Session.
func (s *PortalService) Login(ctx context.Context, identifier, password string) (*domain.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	res, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	sess, err := res.Session()
	if err != nil {
		s.logger.Warn().Err(err).Str("email", res.Email).Msg("backend returned an unusable login")
		return nil, fmt.Errorf("%w: login response incomplete", domain.ErrRemote)
	}
	return sess, nil
}

func (s *PortalService) SignupOptions() ports.SignupOptions {
	return ports.SignupOptions{
		Faculties:   s.catalog.Faculties(),
		Departments: s.catalog.Departments(),
		EmailDomain: EmailDomain,
		MaxUpload:   MaxUploadBytes,
	}
}

// Signup checks the parts of a registration the backend cannot be trusted to
// reject cleanly, then forwards it.
func (s *PortalService) Signup(ctx context.Context, form domain.SignupForm) (*domain.Ack, error) {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	if !strings.HasSuffix(form.Email, EmailDomain) || len(form.Email) == len(EmailDomain) {
		return nil, fmt.Errorf("%w: email must end with %s", domain.ErrValidation, EmailDomain)
	}
	if err := s.catalog.Check(form.FacultyID, form.DepartmentID, form.Year); err != nil {
		return nil, err
	}

	var err error
	if form.NationalIDScan, err = CheckImage("national id scan", form.NationalIDScan); err != nil {
		return nil, err
	}
	if form.ProfilePhoto, err = CheckImage("profile photo", form.ProfilePhoto); err != nil {
		return nil, err
	}

	ack, err := s.api.Signup(ctx, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", form.Email).Int("faculty_id", form.FacultyID).Msg("signup submitted")
	return ack, nil
}

func (s *PortalService) Profile(ctx context.Context, token string) (domain.Record, error) {
	return s.api.GetProfile(ctx, token)
}

// UpdateProfile refuses moderated content before any backend call.
func (s *PortalService) UpdateProfile(ctx context.Context, token string, in domain.ProfileUpdate) (domain.Record, error) {
	if err := s.moderator.CheckProfile(in); err != nil {
		return nil, err
	}
	return s.api.UpdateProfile(ctx, token, in)
}

func (s *PortalService) UploadPhoto(ctx context.Context, token string, photo domain.Upload) (*domain.Ack, error) {
	photo, err := CheckImage("photo", photo)
	if err != nil {
		return nil, err
	}
	return s.api.UploadProfilePhoto(ctx, token, photo)
}

func (s *PortalService) Dashboard(ctx context.Context, token string) (*domain.DashboardStats, error) {
	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}
	return ComputeDashboard(users), nil
}

func (s *PortalService) PendingUsers(ctx context.Context, token string) ([]domain.UserSummary, error) {
	return s.api.ListPendingUsers(ctx, token)
}

func (s *PortalService) User(ctx context.Context, token, userID string) (domain.Record, error) {
	return s.api.GetUser(ctx, token, userID)
}

// Decide approves or rejects an account. Concurrent or repeated submissions
// for the same user are refused while the first one holds the review lock;
// a failed call releases it so the admin can retry.
func (s *PortalService) Decide(ctx context.Context, token string, d domain.ReviewDecision) (*domain.Ack, error) {
	d.RejectionReason = strings.TrimSpace(d.RejectionReason)
	if err := d.Validate(); err != nil {
		return nil, err
	}

	locked := false
	if s.submits != nil {
		ok, err := s.submits.Acquire(ctx, reviewAction, d.UserID)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("user_id", d.UserID).Msg("review lock unavailable, continuing without it")
		case !ok:
			return nil, domain.ErrDuplicateSubmission
		default:
			locked = true
		}
	}

	ack, err := s.api.ApproveReject(ctx, token, d)
	if err != nil {
		if locked {
			if rerr := s.submits.Release(context.WithoutCancel(ctx), reviewAction, d.UserID); rerr != nil {
				s.logger.Warn().Err(rerr).Str("user_id", d.UserID).Msg("release review lock")
			}
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", d.UserID).Bool("approved", d.Approved).Msg("review decision recorded")
	return ack, nil
}

func (s *PortalService) SendVerification(ctx context.Context, token, userID string) (*domain.Ack, error) {
	return s.api.SendVerification(ctx, token, userID)
}

func (s *PortalService) VerifyEmail(ctx context.Context, token, userID, verificationToken string) (*domain.Ack, error) {
	if strings.TrimSpace(verificationToken) == "" {
		return nil, fmt.Errorf("%w: verification token is required", domain.ErrValidation)
	}
	return s.api.VerifyEmail(ctx, token, userID, verificationToken)
}

func (s *PortalService) Directory(ctx context.Context) ([]domain.Record, error) {
	return s.api.PublicStudents(ctx)
}

func (s *PortalService) PublicProfile(ctx context.Context, userID string) (domain.Record, error) {
	return s.api.PublicProfile(ctx, userID)
}

// IsInputError reports whether err was caused by the visitor's input rather
// than by the backend.
func IsInputError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrRejectedContent) ||
		errors.Is(err, domain.ErrDuplicateSubmission)
}
