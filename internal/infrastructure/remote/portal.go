package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

var _ ports.PortalAPI = (*Client)(nil)

// flexString accepts both JSON strings and numbers; the backend serialises
// ids as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// numericOrString sends numeric ids as JSON numbers, as the backend expects.
func numericOrString(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

type loginBody struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token  string     `json:"token"`
	ID     flexString `json:"id"`
	Email  string     `json:"email"`
	Role   string     `json:"role"`
	Status string     `json:"status"`
}

// Login exchanges credentials for a bearer token. A 401 here is a wrong
// password, not a revoked session.
func (c *Client) Login(ctx context.Context, identifier, password string) (*domain.LoginResult, error) {
	var resp loginResponse
	err := c.Do(ctx, Request{
		Endpoint: "login",
		Method:   http.MethodPost,
		Path:     "/api/login",
		JSON:     loginBody{Identifier: identifier, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{
		Token:  resp.Token,
		ID:     string(resp.ID),
		Email:  resp.Email,
		Role:   resp.Role,
		Status: resp.Status,
	}, nil
}

// Signup submits a registration with its identity documents.
func (c *Client) Signup(ctx context.Context, f domain.SignupForm) (*domain.Ack, error) {
	form := &Form{
		Fields: [][2]string{
			{"firstName", f.FirstName},
			{"lastName", f.LastName},
			{"dateOfBirth", f.DateOfBirth},
			{"email", f.Email},
			{"password", f.Password},
			{"nationalId", f.NationalID},
			{"facultyId", strconv.Itoa(f.FacultyID)},
			{"departmentId", strconv.Itoa(f.DepartmentID)},
			{"year", strconv.Itoa(f.Year)},
		},
	}
	f.NationalIDScan.Field = "nationalIdScan"
	f.ProfilePhoto.Field = "profilePhoto"
	for _, u := range []domain.Upload{f.NationalIDScan, f.ProfilePhoto} {
		if len(u.Data) > 0 {
			form.Files = append(form.Files, toFile(u))
		}
	}

	var ack domain.Ack
	err := c.Do(ctx, Request{Endpoint: "signup", Method: http.MethodPost, Path: "/api/signup", Form: form}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) GetProfile(ctx context.Context, token string) (domain.Record, error) {
	var rec domain.Record
	err := c.Do(ctx, Request{Endpoint: "profile_get", Method: http.MethodGet, Path: "/api/profile", Auth: true, Token: token}, &rec)
	return rec, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in domain.ProfileUpdate) (domain.Record, error) {
	var rec domain.Record
	err := c.Do(ctx, Request{Endpoint: "profile_update", Method: http.MethodPut, Path: "/api/profile", JSON: in, Auth: true, Token: token}, &rec)
	return rec, err
}

func (c *Client) UploadProfilePhoto(ctx context.Context, token string, photo domain.Upload) (*domain.Ack, error) {
	photo.Field = "file"
	var ack domain.Ack
	err := c.Do(ctx, Request{
		Endpoint: "profile_photo",
		Method:   http.MethodPost,
		Path:     "/api/profile/photo",
		Form:     &Form{Files: []File{toFile(photo)}},
		Auth:     true,
		Token:    token,
	}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.UserSummary, error) {
	return c.userList(ctx, "admin_users", "/api/admin/users", token)
}

func (c *Client) ListPendingUsers(ctx context.Context, token string) ([]domain.UserSummary, error) {
	return c.userList(ctx, "admin_pending", "/api/admin/users/pending", token)
}

func (c *Client) GetUser(ctx context.Context, token, userID string) (domain.Record, error) {
	var rec domain.Record
	err := c.Do(ctx, Request{
		Endpoint: "admin_user",
		Method:   http.MethodGet,
		Path:     "/api/admin/users/" + url.PathEscape(userID),
		Auth:     true,
		Token:    token,
	}, &rec)
	return rec, err
}

type approveRejectBody struct {
	UserID          any    `json:"userId"`
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

func (c *Client) ApproveReject(ctx context.Context, token string, d domain.ReviewDecision) (*domain.Ack, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	body := approveRejectBody{UserID: numericOrString(d.UserID), Approved: d.Approved}
	if !d.Approved {
		body.RejectionReason = d.RejectionReason
	}

	var ack domain.Ack
	err := c.Do(ctx, Request{
		Endpoint: "admin_approve_reject",
		Method:   http.MethodPost,
		Path:     "/api/admin/users/approve-reject",
		JSON:     body,
		Auth:     true,
		Token:    token,
	}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) SendVerification(ctx context.Context, token, userID string) (*domain.Ack, error) {
	var ack domain.Ack
	err := c.Do(ctx, Request{
		Endpoint: "admin_send_verification",
		Method:   http.MethodPost,
		Path:     "/api/admin/users/" + url.PathEscape(userID) + "/send-verification",
		Auth:     true,
		Token:    token,
	}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) VerifyEmail(ctx context.Context, token, userID, verificationToken string) (*domain.Ack, error) {
	var ack domain.Ack
	err := c.Do(ctx, Request{
		Endpoint: "admin_verify_email",
		Method:   http.MethodPost,
		Path:     "/api/admin/users/" + url.PathEscape(userID) + "/verify-email/" + url.PathEscape(verificationToken),
		Auth:     true,
		Token:    token,
	}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) PublicStudents(ctx context.Context) ([]domain.Record, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, Request{Endpoint: "public_students", Method: http.MethodGet, Path: "/api/profile/public-students"}, &raw); err != nil {
		return nil, err
	}
	var out []domain.Record
	if err := unwrapList(raw, &out); err != nil {
		return nil, &Error{Endpoint: "public_students", Status: http.StatusOK, Message: "invalid response body", Cause: err}
	}
	return out, nil
}

func (c *Client) PublicProfile(ctx context.Context, userID string) (domain.Record, error) {
	var rec domain.Record
	err := c.Do(ctx, Request{Endpoint: "public_profile", Method: http.MethodGet, Path: "/api/profile/" + url.PathEscape(userID)}, &rec)
	return rec, err
}

type userRow struct {
	ID        flexString `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Faculty   string     `json:"faculty"`
}

func (c *Client) userList(ctx context.Context, endpoint, path, token string) ([]domain.UserSummary, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, Request{Endpoint: endpoint, Method: http.MethodGet, Path: path, Auth: true, Token: token}, &raw); err != nil {
		return nil, err
	}

	var rows []userRow
	if err := unwrapList(raw, &rows); err != nil {
		return nil, &Error{Endpoint: endpoint, Status: http.StatusOK, Message: "invalid response body", Cause: err}
	}

	out := make([]domain.UserSummary, len(rows))
	for i, r := range rows {
		out[i] = domain.UserSummary{
			ID:        string(r.ID),
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Role:      r.Role,
			Status:    r.Status,
			Faculty:   r.Faculty,
		}
	}
	return out, nil
}

// unwrapList decodes a list that may come bare, wrapped in "data", or as a
// paged "content" object.
func unwrapList(raw json.RawMessage, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '[' {
		return json.Unmarshal(raw, out)
	}

	var wrapper struct {
		Data    json.RawMessage `json:"data"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return err
	}
	switch {
	case len(wrapper.Data) > 0 && wrapper.Data[0] == '[':
		return json.Unmarshal(wrapper.Data, out)
	case len(wrapper.Content) > 0 && wrapper.Content[0] == '[':
		return json.Unmarshal(wrapper.Content, out)
	}
	return fmt.Errorf("unexpected list shape")
}

func toFile(u domain.Upload) File {
	return File{Field: u.Field, Filename: u.Filename, ContentType: u.ContentType, Data: u.Data}
}
