package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store"
	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/aussiebroadwan/bouncer/pkg/idx"
	"github.com/pquerna/otp/totp"
)

var ErrInvalidUsername = errors.New("invalid_username")

// UserService covers account reads for the HTTP surface and account
// provisioning for the CLI. There is deliberately no HTTP admin surface for
// mutations; provisioning goes through bouncerctl against the store.
type UserService struct {
	Store store.Store
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.Store.Users().CountUsers(ctx)
}

// CreateUser provisions an account. The password is hashed here; the
// plaintext is discarded as soon as this returns.
func (s *UserService) CreateUser(
	ctx context.Context,
	username, password string,
	roles domain.Roles,
	active bool,
) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, ErrInvalidUsername
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
		Active:       active,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SetActive enables or disables an account by username. Disabling takes
// effect on the next request for any outstanding token.
func (s *UserService) SetActive(ctx context.Context, username string, active bool) error {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.Store.Users().SetUserActive(ctx, user.ID, active)
}

// SetPassword replaces the stored hash for an account.
func (s *UserService) SetPassword(ctx context.Context, username, password string) error {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash)
}

// EnrollTOTP generates and stores a TOTP secret for an account and returns
// the otpauth provisioning URL for the operator to hand to the user.
func (s *UserService) EnrollTOTP(ctx context.Context, issuer, username string) (secret, url string, err error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: username,
	})
	if err != nil {
		return "", "", err
	}

	sec := key.Secret()
	if err := s.Store.Users().UpdateTOTPSecret(ctx, user.ID, &sec); err != nil {
		return "", "", err
	}
	return sec, key.URL(), nil
}
