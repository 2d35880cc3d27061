package service

import (
	"context"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// stubAPI records calls and returns canned answers.
type stubAPI struct {
	login     *domain.LoginResult
	users     []domain.UserSummary
	err       error
	calls     map[string]int
	lastForm  domain.SignupForm
	lastPhoto domain.Upload
	decisions []domain.ReviewDecision
}

func newStubAPI() *stubAPI { return &stubAPI{calls: make(map[string]int)} }

func (a *stubAPI) Login(_ context.Context, _, _ string) (*domain.LoginResult, error) {
	a.calls["login"]++
	return a.login, a.err
}

func (a *stubAPI) Signup(_ context.Context, f domain.SignupForm) (*domain.Ack, error) {
	a.calls["signup"]++
	a.lastForm = f
	if a.err != nil {
		return nil, a.err
	}
	return &domain.Ack{Message: "ok"}, nil
}

func (a *stubAPI) GetProfile(_ context.Context, _ string) (domain.Record, error) {
	a.calls["profile"]++
	return domain.Record{"bio": "hello"}, a.err
}

func (a *stubAPI) UpdateProfile(_ context.Context, _ string, in domain.ProfileUpdate) (domain.Record, error) {
	a.calls["update"]++
	return domain.Record{"bio": in.Bio}, a.err
}

func (a *stubAPI) UploadProfilePhoto(_ context.Context, _ string, p domain.Upload) (*domain.Ack, error) {
	a.calls["photo"]++
	a.lastPhoto = p
	return &domain.Ack{}, a.err
}

func (a *stubAPI) ListUsers(_ context.Context, _ string) ([]domain.UserSummary, error) {
	a.calls["users"]++
	return a.users, a.err
}

func (a *stubAPI) ListPendingUsers(_ context.Context, _ string) ([]domain.UserSummary, error) {
	a.calls["pending"]++
	return a.users, a.err
}

func (a *stubAPI) GetUser(_ context.Context, _, id string) (domain.Record, error) {
	a.calls["user"]++
	return domain.Record{"id": id}, a.err
}

func (a *stubAPI) ApproveReject(_ context.Context, _ string, d domain.ReviewDecision) (*domain.Ack, error) {
	a.calls["decide"]++
	a.decisions = append(a.decisions, d)
	if a.err != nil {
		return nil, a.err
	}
	return &domain.Ack{Message: "done"}, nil
}

func (a *stubAPI) SendVerification(_ context.Context, _, _ string) (*domain.Ack, error) {
	a.calls["send"]++
	return &domain.Ack{VerificationToken: "vt"}, a.err
}

func (a *stubAPI) VerifyEmail(_ context.Context, _, _, _ string) (*domain.Ack, error) {
	a.calls["verify"]++
	return &domain.Ack{}, a.err
}

func (a *stubAPI) PublicStudents(_ context.Context) ([]domain.Record, error) {
	a.calls["public"]++
	return []domain.Record{{"id": 1}}, a.err
}

func (a *stubAPI) PublicProfile(_ context.Context, id string) (domain.Record, error) {
	a.calls["public_profile"]++
	return domain.Record{"id": id}, a.err
}
