package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store"
	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/aussiebroadwan/bouncer/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// Credential failure kinds. The taxonomy exists for logs; every one of them
// crosses the HTTP boundary as the same generic 401 so responses can't be
// used to enumerate usernames.
var (
	ErrUnknownUser     = errors.New("unknown_user")
	ErrBadPassword     = errors.New("bad_password")
	ErrInactiveAccount = errors.New("inactive_account")
	ErrTOTPRequired    = errors.New("totp_required")
	ErrBadTOTP         = errors.New("bad_totp")
)

// IsCredentialFailure reports whether err is one of the failure kinds the
// login handler must collapse into the generic response.
func IsCredentialFailure(err error) bool {
	return errors.Is(err, ErrUnknownUser) ||
		errors.Is(err, ErrBadPassword) ||
		errors.Is(err, ErrInactiveAccount) ||
		errors.Is(err, ErrTOTPRequired) ||
		errors.Is(err, ErrBadTOTP)
}

var (
	fakeHashOnce sync.Once
	fakeHash     string
)

// timingEqualizerHash is a throwaway argon2 hash compared against when the
// username doesn't exist, so unknown usernames cost the same as bad
// passwords.
func timingEqualizerHash() string {
	fakeHashOnce.Do(func() {
		fakeHash, _ = cryptox.HashPassword("bouncer-timing-equalizer")
	})
	return fakeHash
}

// CredentialService verifies username/password (and, for enrolled accounts,
// TOTP) pairs against the user store.
type CredentialService struct {
	Store store.Store
}

// Authenticate resolves credentials to the stored user record. Credentials
// are transient: they are never persisted and never logged.
func (s *CredentialService) Authenticate(
	ctx context.Context,
	username, password, otp string,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		_ = cryptox.VerifyPassword(password, timingEqualizerHash())
		l.Info("credential authentication failed", "reason", "unknown_user", "username", username)
		return domain.User{}, ErrUnknownUser
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("credential authentication failed", "reason", "bad_password", "user_id", user.ID)
		return domain.User{}, ErrBadPassword
	}

	if !user.Active {
		l.Info("credential authentication failed", "reason", "inactive_account", "user_id", user.ID)
		return domain.User{}, ErrInactiveAccount
	}

	// Accounts with an enrolled TOTP secret must supply a valid code.
	if user.TOTPSecret != nil {
		if otp == "" {
			l.Info("credential authentication failed", "reason", "totp_required", "user_id", user.ID)
			return domain.User{}, ErrTOTPRequired
		}
		if !totp.Validate(otp, *user.TOTPSecret) {
			l.Info("credential authentication failed", "reason", "bad_totp", "user_id", user.ID)
			return domain.User{}, ErrBadTOTP
		}
	}

	return user, nil
}
