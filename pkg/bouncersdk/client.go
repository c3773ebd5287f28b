package bouncersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a small client for the bouncer service. Zero value is not
// usable; construct with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is attached as a Bearer credential when non-empty. Login sets
	// it automatically; set it directly to resume a prior session.
	Token string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with username/password (and optional TOTP code) and
// stores the returned token on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password, otp string) (*LoginResponse, error) {
	body, err := json.Marshal(LoginRequest{
		Username: username,
		Password: password,
		OTP:      otp,
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}

	c.Token = out.Token
	return &out, nil
}

// Greeting calls the public demo endpoint. Works with or without a token.
func (c *Client) Greeting(ctx context.Context) (*GreetingResponse, error) {
	var out GreetingResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/greeting", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserInfo returns the identity of the authenticated caller.
func (c *Client) UserInfo(ctx context.Context) (*UserInfoResponse, error) {
	var out UserInfoResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/userinfo", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all accounts. Requires the ADMIN role.
func (c *Client) ListUsers(ctx context.Context) (*UsersResponse, error) {
	var out UsersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez checks if the service is alive.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz checks if the service and its dependencies are ready.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs a request, maps non-2xx responses to *APIError, and
// decodes the success body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
