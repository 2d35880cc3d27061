// Package session keeps the authentication session of each browser: the
// shared JSON codec used by every store, the reactive per-browser Context and
// the Registry that hands Contexts out to requests.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// StorageKey is the name of the stored session record.
const StorageKey = "campuscard.session"

// Encode serialises a fully populated session.
func Encode(s *domain.Session) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return b, nil
}

// Decode parses a stored record. Anything that is not a complete session
// (bad JSON, null, missing fields, unknown role) decodes as absent.
func Decode(raw []byte) (*domain.Session, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	if s.Validate() != nil {
		return nil, false
	}
	return &s, true
}

// TokenExpiry reads the exp claim of a JWT bearer token without verifying
// its signature; the backend remains the authority on validity. Opaque
// tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the session's token carries an exp claim that is
// not after now.
func Expired(s *domain.Session, now time.Time) bool {
	if s == nil {
		return false
	}
	exp, ok := TokenExpiry(s.Token)
	return ok && !exp.After(now)
}
