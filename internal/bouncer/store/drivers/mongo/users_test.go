package mongo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store"
	"github.com/aussiebroadwan/bouncer/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var mongoURI string

// TestMain starts one MongoDB container shared by all driver tests. Each
// test gets its own database so they can run in parallel.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForLog("Waiting for connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve container host: %v\n", err)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve mapped port: %v\n", err)
		os.Exit(1)
	}

	mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	exitCode := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(exitCode)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbName := "bouncer_test_" + strings.ToLower(idx.New().String())
	s, err := NewStore(context.Background(), mongoURI, dbName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser(username string, roles ...domain.Role) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Roles:        roles,
		Active:       true,
	}
}

func TestUsersCreateAndGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	users := s.Users()

	u := testUser("alice", domain.RoleAdmin, domain.RoleUser)
	require.NoError(t, users.CreateUser(ctx, u))

	byID, err := users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)
	require.Equal(t, domain.Roles{domain.RoleAdmin, domain.RoleUser}, byID.Roles)
	require.True(t, byID.Active)
	require.Nil(t, byID.TOTPSecret)
	require.False(t, byID.CreatedAt.IsZero())

	byName, err := users.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)
}

func TestUsersNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByUsername(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Users().SetUserActive(ctx, "missing", false), store.ErrNotFound)
	require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, "missing", "h"), store.ErrNotFound)
	require.ErrorIs(t, s.Users().UpdateTOTPSecret(ctx, "missing", nil), store.ErrNotFound)
}

func TestUsersDuplicateUsername(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, testUser("bob", domain.RoleUser)))
	err := s.Users().CreateUser(ctx, testUser("bob", domain.RoleUser))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsersListAndCount(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, s.Users().CreateUser(ctx, testUser("first", domain.RoleUser)))
	require.NoError(t, s.Users().CreateUser(ctx, testUser("second", domain.RoleAdmin)))

	count, err = s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	list, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first", list[0].Username)
	require.Equal(t, "second", list[1].Username)
}

func TestUsersSetActive(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("carol", domain.RoleUser)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().SetUserActive(ctx, u.ID, false))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
}

func TestUsersUpdatePasswordHash(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("dave", domain.RoleUser)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	newHash := "$argon2id$v=19$m=19456,t=2,p=1$bmV3c2FsdA$bmV3aGFzaA"
	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, newHash))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, newHash, got.PasswordHash)
	require.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestUsersUpdateTOTPSecret(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("erin", domain.RoleUser)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	secret := "JBSWY3DPEHPK3PXP"
	require.NoError(t, s.Users().UpdateTOTPSecret(ctx, u.ID, &secret))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TOTPSecret)
	require.Equal(t, secret, *got.TOTPSecret)

	require.NoError(t, s.Users().UpdateTOTPSecret(ctx, u.ID, nil))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.TOTPSecret)
}
