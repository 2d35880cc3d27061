package domain

import "fmt"

// LoginResult is the backend answer to a successful login.
type LoginResult struct {
	Token  string
	ID     string
	Email  string
	Role   string
	Status string
}

// Session maps the login answer into a fully populated Session.
func (r LoginResult) Session() (*Session, error) {
	role, ok := ParseRole(r.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidSession, r.Role)
	}
	var status AccountStatus
	if r.Status != "" {
		status, _ = ParseStatus(r.Status)
	}

	s := &Session{
		Token:  r.Token,
		UserID: r.ID,
		Email:  r.Email,
		Role:   role,
		Status: status,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// SignupForm carries the identity fields and documents of a registration.
type SignupForm struct {
	FirstName      string
	LastName       string
	DateOfBirth    string
	Email          string
	Password       string
	NationalID     string
	FacultyID      int
	DepartmentID   int
	Year           int
	NationalIDScan Upload
	ProfilePhoto   Upload
}

// ProfileUpdate holds the editable fields of a student profile.
type ProfileUpdate struct {
	Bio        string `json:"bio"`
	Phone      string `json:"phone"`
	LinkedIn   string `json:"linkedin"`
	GitHub     string `json:"github"`
	Interests  string `json:"interests"`
	Visibility string `json:"visibility"`
}

// ReviewDecision approves or rejects a pending account.
type ReviewDecision struct {
	UserID          string
	Approved        bool
	RejectionReason string
}

// Validate enforces that rejections carry a reason.
func (d ReviewDecision) Validate() error {
	if d.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if !d.Approved && d.RejectionReason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	return nil
}

// Ack is the generic acknowledgement returned by backend actions.
type Ack struct {
	Message           string `json:"message,omitempty"`
	VerificationToken string `json:"verificationToken,omitempty"`
}

// DashboardStats summarises the student population for the admin dashboard.
type DashboardStats struct {
	TotalStudents int            `json:"totalStudents"`
	Pending       int            `json:"pending"`
	Approved      int            `json:"approved"`
	Rejected      int            `json:"rejected"`
	ByFaculty     map[string]int `json:"byFaculty"`
}
