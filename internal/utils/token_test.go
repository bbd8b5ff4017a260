package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	st, err := NewSessionToken(testSecret, 42, 60)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if st.Token == "" {
		t.Fatal("issued token is empty")
	}
	if until := time.Until(st.Exp); until < 59*time.Minute || until > 61*time.Minute {
		t.Errorf("expiry should be ~1h out, got %v", until)
	}

	uid, err := ParseSessionToken(testSecret, st.Token, 0)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if uid != 42 {
		t.Errorf("subject = %d, want 42", uid)
	}
}

func TestParseSessionTokenRejects(t *testing.T) {
	st, err := NewSessionToken(testSecret, 7, 60)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Alter the claims segment; the signature no longer matches.
	parts := strings.SplitN(st.Token, ".", 3)
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", st.Token)
	}
	tampered := parts[0] + "." + "x" + parts[1][1:] + "." + parts[2]

	// A token signed without any algorithm must not pass the HMAC check.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": 7, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	// A token with no subject claim is malformed for our purposes.
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"wrong secret", "other-secret", st.Token},
		{"tampered signature", testSecret, tampered},
		{"garbage", testSecret, "not.a.jwt"},
		{"empty", testSecret, ""},
		{"alg none", testSecret, unsigned},
		{"missing subject", testSecret, noSub},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSessionToken(tc.secret, tc.raw, 0); err == nil {
				t.Error("expected verification to fail")
			}
		})
	}
}

func TestParseSessionTokenExpiry(t *testing.T) {
	// Negative TTL yields a token that expired one minute ago.
	st, err := NewSessionToken(testSecret, 9, -1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseSessionToken(testSecret, st.Token, 0); err == nil {
		t.Error("expired token should be rejected without leeway")
	}
	// With a leeway larger than the elapsed time past expiry, the same
	// token is still acceptable.
	uid, err := ParseSessionToken(testSecret, st.Token, 2*time.Minute)
	if err != nil {
		t.Fatalf("leeway should admit a just-expired token: %v", err)
	}
	if uid != 9 {
		t.Errorf("subject = %d, want 9", uid)
	}
}
