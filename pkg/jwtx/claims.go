package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime for issued tokens. Short-lived for
// security - typical range is 15m to 1h.
const DefaultTokenTTL = 15 * time.Minute

// Claims is the payload carried inside a signed token. Tokens carry identity
// (sub, username) but not authority; roles are resolved against the user
// store on every request so deactivation and demotion take effect without
// revocation machinery.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user
	Username string `json:"username,omitempty"`
}

// NewClaims builds minimally-correct claims for a freshly authenticated
// subject. It enforces the invariant that expiry is strictly after issue.
func NewClaims(
	subject, username string,
	issuer string,
	audience []string,
	ttl time.Duration,
	now time.Time,
) (Claims, error) {
	if subject == "" {
		return Claims{}, ErrMissingClaim
	}
	if ttl <= 0 {
		return Claims{}, errors.New("jwtx: token ttl must be positive")
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: username,
	}, nil
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. There
// might be a better way of doing this, but I'm being lazy and using random.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateRequired ensures the claims a decoder must never accept without
// are present: a subject and an expiry. A structurally valid, correctly
// signed token missing either is still a decode failure.
func (c *Claims) ValidateRequired() error {
	if c.Subject == "" {
		return ErrMissingClaim
	}
	if c.ExpiresAt == nil {
		return ErrMissingClaim
	}
	return nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiryWithLeeway checks exp/nbf with a small grace period for
// clock skew. Because time sync is never perfect.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
