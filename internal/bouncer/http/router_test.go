package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store/drivers/sqlite"
	"github.com/aussiebroadwan/bouncer/pkg/bouncersdk"
	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/aussiebroadwan/bouncer/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	router *Router
	store  store.Store
	tokens *service.TokenService
}

// newTestEnv builds a full router over an in-memory store seeded with the
// three demo accounts: an admin, a regular user, and a disabled user.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore("file::memory:?_busy_timeout=5000")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	users := &service.UserService{Store: st}
	ctx := context.Background()
	_, err = users.CreateUser(ctx, "admin", "password", domain.Roles{domain.RoleAdmin, domain.RoleUser}, true)
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, "user", "password", domain.Roles{domain.RoleUser}, true)
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, "disabled", "password", domain.Roles{domain.RoleUser}, false)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerHS256("test-key", testSecret)
	require.NoError(t, err)

	tokens := &service.TokenService{
		Signer: signer,
		Verifier: jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{
			Issuer: "bouncer-test",
		}),
		Store:    st,
		Issuer:   "bouncer-test",
		TokenTTL: 15 * time.Minute,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(signer, "", "test", st, logger)
	router.TokenService = tokens
	router.CredentialService = &service.CredentialService{Store: st}
	router.UserService = users
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, username, password string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	body, err := json.Marshal(bouncersdk.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)

	rec := e.do(t, http.MethodPost, "/api/auth", "", string(body))
	if rec.Code != http.StatusOK {
		return "", rec
	}

	var resp bouncersdk.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, rec
}

func TestLoginIssuesUsableToken(t *testing.T) {
	env := newTestEnv(t)

	token, _ := env.login(t, "admin", "password")

	rec := env.do(t, http.MethodGet, "/api/userinfo", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info bouncersdk.UserInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, "admin", info.Username)
	require.ElementsMatch(t, []string{"ADMIN", "USER"}, info.Roles)
}

// Every credential failure must produce a byte-identical response so the
// body can't be used to tell a wrong password from a nonexistent or
// disabled account.
func TestLoginFailuresIndistinguishable(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string][2]string{
		"wrong password": {"admin", "nope"},
		"unknown user":   {"ghost", "password"},
		"disabled user":  {"disabled", "password"},
	}

	var bodies []string
	for name, creds := range cases {
		_, rec := env.login(t, creds[0], creds[1])
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
		require.JSONEq(t, `{"message":"invalid username or password"}`, rec.Body.String(), name)
		bodies = append(bodies, rec.Body.String())
	}

	for i := 1; i < len(bodies); i++ {
		require.Equal(t, bodies[0], bodies[i], "failure bodies must be byte-identical")
	}
}

func TestLoginMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth", "", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGreetingPublic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/greeting", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Hello, stranger."}`, rec.Body.String())
}

func TestGreetingGreetsAuthenticated(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.login(t, "user", "password")

	rec := env.do(t, http.MethodGet, "/api/greeting", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Hello, user."}`, rec.Body.String())
}

// A presented token is always checked, even on routes that don't require
// authentication. Garbage must not degrade to anonymous.
func TestInvalidTokenRejectedOnPublicRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/greeting", "garbage", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var apiErr bouncersdk.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, bouncersdk.ErrorCodeInvalidToken, apiErr.Code)
}

func TestUserinfoRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/userinfo", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var apiErr bouncersdk.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, bouncersdk.ErrorCodeMissingAuth, apiErr.Code)
}

func TestUsersAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.login(t, "admin", "password")
	userToken, _ := env.login(t, "user", "password")

	t.Run("admin can list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/users", adminToken, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp bouncersdk.UsersResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 3)
		for _, u := range resp.Users {
			require.NotEmpty(t, u.UserID)
			require.NotEmpty(t, u.Username)
		}
	})

	// Authenticated but unauthorized is 403, not 401.
	t.Run("non-admin gets 403", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/users", userToken, "")
		require.Equal(t, http.StatusForbidden, rec.Code)

		var apiErr bouncersdk.APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
		require.Equal(t, bouncersdk.ErrorCodeInsufficientRole, apiErr.Code)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/users", "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// Malformed, tampered, expired and orphaned tokens must all produce the
// same 401 body.
func TestTokenFailureBodiesIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.login(t, "user", "password")

	expiredClaims, err := jwtx.NewClaims("someone", "someone", "bouncer-test", nil, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	expired, err := env.tokens.Signer.Sign(expiredClaims)
	require.NoError(t, err)

	cases := map[string]string{
		"malformed": "not-a-token",
		"tampered":  token[:len(token)-2] + "xx",
		"expired":   expired,
	}

	var bodies []string
	for name, raw := range cases {
		rec := env.do(t, http.MethodGet, "/api/userinfo", raw, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
		bodies = append(bodies, rec.Body.String())
	}
	for i := 1; i < len(bodies); i++ {
		require.Equal(t, bodies[0], bodies[i], "token failure bodies must be byte-identical")
	}
}

// Deactivating an account invalidates its outstanding tokens on the next
// request; no revocation list involved.
func TestDeactivationTakesEffectImmediately(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.login(t, "user", "password")

	rec := env.do(t, http.MethodGet, "/api/userinfo", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := env.store.Users().GetUserByUsername(context.Background(), "user")
	require.NoError(t, err)
	require.NoError(t, env.store.Users().SetUserActive(context.Background(), user.ID, false))

	rec = env.do(t, http.MethodGet, "/api/userinfo", token, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var apiErr bouncersdk.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, bouncersdk.ErrorCodeInvalidToken, apiErr.Code)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("livez", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/livez", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var health bouncersdk.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		require.Equal(t, "ok", health.Status)
	})

	t.Run("readyz", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/readyz", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var health bouncersdk.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		require.Equal(t, "ok", health.Status)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
		require.Equal(t, "ok", health.Checks.Signer)
	})
}
