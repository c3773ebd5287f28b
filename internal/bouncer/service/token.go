package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store"
	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/aussiebroadwan/bouncer/pkg/jwtx"
	"github.com/aussiebroadwan/bouncer/pkg/slogx"
)

// Token failure kinds surfaced by Authenticate. Every decode failure
// (malformed, bad signature, expired, missing claim) collapses to
// ErrTokenInvalid; the specific reason only ever appears in logs.
var (
	ErrTokenInvalid       = errors.New("token_invalid")
	ErrAccountUnavailable = errors.New("account_unavailable")
)

// RevocationChecker is the optional hook for external revocation storage.
// When set, tokens carrying a jti are checked before the subject lookup.
// No implementation ships with the service.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenService issues tokens for authenticated users and resolves presented
// tokens back into request principals.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Store    store.Store

	Issuer   string
	Audience []string
	TokenTTL time.Duration

	// Revocations is consulted when non-nil; nil means no revocation check.
	Revocations RevocationChecker
}

// Issue builds and signs claims for a freshly authenticated user. This is
// the only place claims are constructed; everything else just consumes them.
func (s *TokenService) Issue(ctx context.Context, user domain.User) (string, jwtx.Claims, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims, err := jwtx.NewClaims(user.ID, user.Username, s.Issuer, s.Audience, ttl, time.Now().UTC())
	if err != nil {
		return "", jwtx.Claims{}, err
	}

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", jwtx.Claims{}, err
	}

	slogx.FromContext(ctx).Info("token issued",
		"user_id", user.ID,
		"jti", claims.ID,
		"expires_at", claims.ExpiresAt.Time,
	)

	return token, claims, nil
}

// Authenticate verifies a presented token and re-resolves its subject
// against the user store. The store lookup on every request is what makes
// deactivation (and role demotion) effective without revocation machinery:
// a valid signature never overrides current account state.
func (s *TokenService) Authenticate(ctx context.Context, rawToken string) (domain.Principal, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(rawToken)
	if err != nil {
		// Log the specific decode failure with a fingerprint, never the token.
		l.Warn("token verification failed",
			"err", err,
			"token_fp", cryptox.FingerprintToken(rawToken),
		)
		return domain.Principal{}, ErrTokenInvalid
	}

	if s.Revocations != nil && claims.ID != "" {
		revoked, err := s.Revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Fail closed: an unreachable revocation store must not admit tokens.
			l.Error("revocation check failed", "err", err, "jti", claims.ID)
			return domain.Principal{}, ErrTokenInvalid
		}
		if revoked {
			l.Warn("revoked token presented", "jti", claims.ID, "user_id", claims.Subject)
			return domain.Principal{}, ErrTokenInvalid
		}
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		l.Warn("token subject no longer exists", "user_id", claims.Subject)
		return domain.Principal{}, ErrAccountUnavailable
	}
	if err != nil {
		return domain.Principal{}, err
	}

	if !user.Active {
		l.Warn("token presented for deactivated account", "user_id", user.ID)
		return domain.Principal{}, ErrAccountUnavailable
	}

	// Roles come fresh from the store; the token carries identity, not authority.
	return domain.Principal{
		UserID:        user.ID,
		Username:      user.Username,
		Roles:         user.Roles,
		Authenticated: true,
	}, nil
}
