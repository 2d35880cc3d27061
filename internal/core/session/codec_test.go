package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

func approvedStudent() *domain.Session {
	return &domain.Session{
		Token:  "opaque-token",
		UserID: "42",
		Email:  "student@eng.psu.edu.eg",
		Role:   domain.RoleStudent,
		Status: domain.StatusApproved,
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42", "exp": exp.Unix()})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	sessions := []*domain.Session{
		approvedStudent(),
		{Token: "t", UserID: "1", Email: "admin@eng.psu.edu.eg", Role: domain.RoleAdmin},
		{Token: "t", UserID: "9", Email: "p@eng.psu.edu.eg", Role: domain.RoleStudent, Status: domain.StatusPending},
	}
	for _, want := range sessions {
		raw, err := Encode(want)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, ok := Decode(raw)
		if !ok {
			t.Fatalf("decode failed for %s", raw)
		}
		if *got != *want {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
		}
	}
}

func TestEncode_Layout(t *testing.T) {
	raw, err := Encode(approvedStudent())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"token":"opaque-token","userId":"42","email":"student@eng.psu.edu.eg","role":"student","status":"APPROVED"}`
	if string(raw) != want {
		t.Fatalf("unexpected layout:\n got %s\nwant %s", raw, want)
	}
}

func TestEncode_RejectsPartialSession(t *testing.T) {
	s := approvedStudent()
	s.Token = ""
	if _, err := Encode(s); err == nil {
		t.Fatalf("expected error for session without token")
	}
}

func TestDecode_MalformedIsAbsent(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"null",
		"[]",
		`"a string"`,
		`{"token":"t"}`,
		`{"token":"t","userId":"1","email":"e","role":"guest","status":"APPROVED"}`,
		`{"token":"t","userId":"1","email":"e","role":"student"}`,
		`{"token":"t","userId":"1","email":"e","role":"student","status":"MAYBE"}`,
	}
	for _, in := range inputs {
		if s, ok := Decode([]byte(in)); ok || s != nil {
			t.Fatalf("expected %q to decode as absent, got %+v", in, s)
		}
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := TokenExpiry(signedToken(t, exp))
	if !ok {
		t.Fatalf("expected exp claim")
	}
	if !got.Equal(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}

	if _, ok := TokenExpiry("opaque-token"); ok {
		t.Fatalf("opaque token should have no expiry")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	s := approvedStudent()

	if Expired(s, now) {
		t.Fatalf("opaque token must never expire locally")
	}
	if Expired(nil, now) {
		t.Fatalf("absent session cannot expire")
	}

	s.Token = signedToken(t, now.Add(-time.Minute))
	if !Expired(s, now) {
		t.Fatalf("expected past exp to be expired")
	}

	s.Token = signedToken(t, now.Add(time.Minute))
	if Expired(s, now) {
		t.Fatalf("expected future exp to be valid")
	}
}
