package handler

import (
	"context"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

// stubService is a configurable ports.PortalService.
type stubService struct {
	session *domain.Session
	err     error
	record  domain.Record
	users   []domain.UserSummary
	ack     *domain.Ack

	lastSignup   domain.SignupForm
	lastUpdate   domain.ProfileUpdate
	lastDecision domain.ReviewDecision
	lastToken    string
	lastUserID   string
	calls        int
}

func (s *stubService) Login(_ context.Context, _, _ string) (*domain.Session, error) {
	s.calls++
	return s.session, s.err
}

func (s *stubService) SignupOptions() ports.SignupOptions {
	return ports.SignupOptions{EmailDomain: "@eng.psu.edu.eg"}
}

func (s *stubService) Signup(_ context.Context, f domain.SignupForm) (*domain.Ack, error) {
	s.calls++
	s.lastSignup = f
	return s.ack, s.err
}

func (s *stubService) Profile(_ context.Context, token string) (domain.Record, error) {
	s.calls++
	s.lastToken = token
	return s.record, s.err
}

func (s *stubService) UpdateProfile(_ context.Context, token string, in domain.ProfileUpdate) (domain.Record, error) {
	s.calls++
	s.lastToken = token
	s.lastUpdate = in
	return s.record, s.err
}

func (s *stubService) UploadPhoto(_ context.Context, token string, _ domain.Upload) (*domain.Ack, error) {
	s.calls++
	s.lastToken = token
	return s.ack, s.err
}

func (s *stubService) Dashboard(_ context.Context, token string) (*domain.DashboardStats, error) {
	s.calls++
	s.lastToken = token
	if s.err != nil {
		return nil, s.err
	}
	return &domain.DashboardStats{TotalStudents: len(s.users), ByFaculty: map[string]int{}}, nil
}

func (s *stubService) PendingUsers(_ context.Context, token string) ([]domain.UserSummary, error) {
	s.calls++
	s.lastToken = token
	return s.users, s.err
}

func (s *stubService) User(_ context.Context, token, userID string) (domain.Record, error) {
	s.calls++
	s.lastToken, s.lastUserID = token, userID
	return s.record, s.err
}

func (s *stubService) Decide(_ context.Context, token string, d domain.ReviewDecision) (*domain.Ack, error) {
	s.calls++
	s.lastToken = token
	s.lastDecision = d
	return s.ack, s.err
}

func (s *stubService) SendVerification(_ context.Context, token, userID string) (*domain.Ack, error) {
	s.calls++
	s.lastToken, s.lastUserID = token, userID
	return s.ack, s.err
}

func (s *stubService) VerifyEmail(_ context.Context, token, userID, _ string) (*domain.Ack, error) {
	s.calls++
	s.lastToken, s.lastUserID = token, userID
	return s.ack, s.err
}

func (s *stubService) Directory(_ context.Context) ([]domain.Record, error) {
	s.calls++
	if s.record == nil {
		return nil, s.err
	}
	return []domain.Record{s.record}, s.err
}

func (s *stubService) PublicProfile(_ context.Context, userID string) (domain.Record, error) {
	s.calls++
	s.lastUserID = userID
	return s.record, s.err
}

// remoteErr mimics a backend client error.
type remoteErr struct {
	status int
	msg    string
}

func (e remoteErr) Error() string       { return e.msg }
func (e remoteErr) Unwrap() error       { return domain.ErrRemote }
func (e remoteErr) HTTPStatus() int     { return e.status }
func (e remoteErr) UserMessage() string { return e.msg }
