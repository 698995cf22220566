package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// Token verification failures. Both surface to clients as authentication
// failures, but they are distinct values so callers (and logs/tests) can tell
// an expired session apart from a forged or corrupt token.
var (
	// ErrTokenExpired is returned when the token signature is valid but the
	// embedded expiry has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for any other verification failure:
	// bad signature, wrong algorithm, malformed payload, or missing claims.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the payload carried by a session token: the principal's identity
// and role, plus the registered expiry.
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-SHA256 signed session tokens. It is
// constructed once with the shared secret and token lifetime; the clock is a
// seam so expiry behavior is testable.
//
// TokenManager is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a TokenManager signing with secret and issuing
// tokens valid for ttl. A ttl <= 0 falls back to 24 hours.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Issue mints a signed token for the given principal identity. The expiry is
// issue time plus the configured TTL.
func (m *TokenManager) Issue(userID, email string, role domain.Role) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify re-validates the signature and expiry of a token and returns its
// claims. It returns ErrTokenExpired for valid-but-stale tokens and
// ErrTokenInvalid for everything else (including tokens signed with a
// different key or algorithm).
func (m *TokenManager) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
