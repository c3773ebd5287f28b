package bouncer_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/bouncer/pkg/bouncersdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for bouncer end-to-end tests.
 * This includes container setup, login helpers, and assertions.
 */

const (
	testImageName = "bouncer-test:latest"

	// Demo accounts seeded by BOUNCER_SEED_DEMO_USERS
	adminUsername    = "admin"
	userUsername     = "user"
	disabledUsername = "disabled"
	demoPassword     = "password"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building bouncer Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up bouncer Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/bouncer/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupBouncerContainer starts the service in a container with the demo
// accounts seeded and relaxed rate limits, and returns the base URL.
func setupBouncerContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOUNCER_DATABASE_FILE":    "/bouncer.db",
			"BOUNCER_PEPPER_FILE":      "/pepper",
			"BOUNCER_SIGNING_KEY_FILE": "/signing.key",
			"BOUNCER_ISSUER":           "bouncer",
			"BOUNCER_ALGORITHM":        "EdDSA",
			"BOUNCER_SEED_DEMO_USERS":  "true",
			"ENV":                      "test",
			"LOG_LEVEL":                "info",
			"LOG_FORMAT":               "json",
			// Increase rate limits so rapid test requests don't trip the
			// strict production limits
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// performLogin authenticates and returns a client carrying the token.
func performLogin(t *testing.T, baseURL, username, password string) *bouncersdk.Client {
	t.Helper()

	client := bouncersdk.NewClient(baseURL)
	resp, err := client.Login(t.Context(), username, password, "")
	require.NoError(t, err, "Login should succeed")
	require.NotEmpty(t, resp.Token)

	return client
}

// assertLoginRejected verifies a login failed with the generic 401.
func assertLoginRejected(t *testing.T, baseURL, username, password string) {
	t.Helper()

	client := bouncersdk.NewClient(baseURL)
	_, err := client.Login(t.Context(), username, password, "")
	require.Error(t, err)

	var apiErr *bouncersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
	require.Equal(t, "invalid username or password", apiErr.Message)
}
