package domain

import "time"

// ChangeReason describes why the session of a browser changed.
type ChangeReason string

const (
	ChangeLogin   ChangeReason = "login"
	ChangeLogout  ChangeReason = "logout"
	ChangeExpired ChangeReason = "expired"
	ChangeRevoked ChangeReason = "revoked"
)

// SessionChange is delivered to session listeners after a Set or Clear took
// effect. Previous and Current are copies.
type SessionChange struct {
	BrowserID string
	Previous  *Session
	Current   *Session
	Reason    ChangeReason
	At        time.Time
}

// AuditEvent is the persisted trace of a session change.
type AuditEvent struct {
	UserID    string       `json:"user_id" bson:"user_id"`
	Email     string       `json:"email" bson:"email"`
	Role      Role         `json:"role" bson:"role"`
	Kind      ChangeReason `json:"kind" bson:"kind"`
	BrowserID string       `json:"browser_id" bson:"browser_id"`
	At        time.Time    `json:"at" bson:"at"`
}

// AuditEventFromChange builds the audit record for a change. The subject is
// the current session on login and the previous one otherwise.
func AuditEventFromChange(ch SessionChange) (AuditEvent, bool) {
	subject := ch.Current
	if subject == nil {
		subject = ch.Previous
	}
	if subject == nil {
		return AuditEvent{}, false
	}
	return AuditEvent{
		UserID:    subject.UserID,
		Email:     subject.Email,
		Role:      subject.Role,
		Kind:      ch.Reason,
		BrowserID: ch.BrowserID,
		At:        ch.At.UTC(),
	}, true
}
