package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store/drivers/sqlite"
	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	s, err := sqlite.NewStore("file::memory:?_busy_timeout=5000")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// seedUser provisions an account through UserService so the stored hash goes
// through the real password pipeline.
func seedUser(t *testing.T, st store.Store, username, password string, roles domain.Roles, active bool) domain.User {
	t.Helper()

	users := &UserService{Store: st}
	u, err := users.CreateUser(context.Background(), username, password, roles, active)
	require.NoError(t, err)
	return u
}

func TestCredentialAuthenticateSuccess(t *testing.T) {
	st := newTestStore(t)
	seeded := seedUser(t, st, "alice", "hunter2hunter2", domain.Roles{domain.RoleUser}, true)

	creds := &CredentialService{Store: st}
	user, err := creds.Authenticate(context.Background(), "alice", "hunter2hunter2", "")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.Equal(t, "alice", user.Username)
}

func TestCredentialAuthenticateUnknownUser(t *testing.T) {
	st := newTestStore(t)
	creds := &CredentialService{Store: st}

	_, err := creds.Authenticate(context.Background(), "nobody", "whatever", "")
	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestCredentialAuthenticateBadPassword(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "alice", "hunter2hunter2", domain.Roles{domain.RoleUser}, true)

	creds := &CredentialService{Store: st}
	_, err := creds.Authenticate(context.Background(), "alice", "wrong", "")
	require.ErrorIs(t, err, ErrBadPassword)
}

func TestCredentialAuthenticateInactiveAccount(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "disabled", "hunter2hunter2", domain.Roles{domain.RoleUser}, false)

	creds := &CredentialService{Store: st}
	_, err := creds.Authenticate(context.Background(), "disabled", "hunter2hunter2", "")
	require.ErrorIs(t, err, ErrInactiveAccount)
}

// Password is checked before the active flag, so a disabled account with the
// wrong password reports bad_password in logs, not inactive_account.
func TestCredentialAuthenticateInactiveWrongPassword(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "disabled", "hunter2hunter2", domain.Roles{domain.RoleUser}, false)

	creds := &CredentialService{Store: st}
	_, err := creds.Authenticate(context.Background(), "disabled", "wrong", "")
	require.ErrorIs(t, err, ErrBadPassword)
}

func TestCredentialAuthenticateTOTP(t *testing.T) {
	st := newTestStore(t)
	seeded := seedUser(t, st, "alice", "hunter2hunter2", domain.Roles{domain.RoleUser}, true)

	users := &UserService{Store: st}
	secret, url, err := users.EnrollTOTP(context.Background(), "bouncer", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, secret)
	require.Contains(t, url, "otpauth://totp/")

	creds := &CredentialService{Store: st}

	t.Run("missing code", func(t *testing.T) {
		_, err := creds.Authenticate(context.Background(), "alice", "hunter2hunter2", "")
		require.ErrorIs(t, err, ErrTOTPRequired)
	})

	t.Run("bad code", func(t *testing.T) {
		_, err := creds.Authenticate(context.Background(), "alice", "hunter2hunter2", "000000")
		require.ErrorIs(t, err, ErrBadTOTP)
	})

	t.Run("valid code", func(t *testing.T) {
		code, err := totp.GenerateCode(secret, time.Now())
		require.NoError(t, err)

		user, err := creds.Authenticate(context.Background(), "alice", "hunter2hunter2", code)
		require.NoError(t, err)
		require.Equal(t, seeded.ID, user.ID)
	})
}

func TestIsCredentialFailure(t *testing.T) {
	for _, err := range []error{ErrUnknownUser, ErrBadPassword, ErrInactiveAccount, ErrTOTPRequired, ErrBadTOTP} {
		require.True(t, IsCredentialFailure(err), "%v", err)
	}
	require.False(t, IsCredentialFailure(context.Canceled))
	require.False(t, IsCredentialFailure(nil))
}
