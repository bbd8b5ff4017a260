package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by ParseSessionToken when a token is
// malformed, carries a bad signature, uses an unexpected algorithm, or has
// expired.  Callers treat every one of these cases the same way: the
// request is not authenticated.
var ErrInvalidToken = errors.New("invalid token")

// SessionToken represents a signed session token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Session tokens are short-lived, stateless and
// sent in the authorization header when calling protected endpoints; logout
// is simply the client discarding its copy.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID and a TTL in minutes, and returns a
// SessionToken containing the signed token and its expiration time.  The
// JWT includes standard claims: subject (sub), expiration (exp) and issued
// at (iat).
func NewSessionToken(secret string, userID uint64, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a raw token string against the signing secret
// and returns the user ID carried in the subject claim.  Expiry is checked
// by the library with the given leeway so that small clock differences
// between issuer and verifier do not reject otherwise valid tokens.  Any
// failure is reported as ErrInvalidToken; the caller gains nothing from
// distinguishing a forged signature from a stale expiry.
func ParseSessionToken(secret, raw string, leeway time.Duration) (uint64, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything other than HMAC.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    }, jwt.WithLeeway(leeway))
    if err != nil || !tok.Valid {
        return 0, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, ErrInvalidToken
    }
    // Numeric JSON values decode as float64.
    sub, ok := claims["sub"].(float64)
    if !ok || sub < 0 {
        return 0, ErrInvalidToken
    }
    return uint64(sub), nil
}
