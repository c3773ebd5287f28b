package bouncersdk

import "time"

// LoginRequest is the body for POST /api/auth.
type LoginRequest struct {
	// Username of the account to authenticate
	Username string `json:"username"`

	// Password in plaintext. Sent once, never stored.
	Password string `json:"password"`

	// OTP is the current TOTP code, required only for enrolled accounts
	OTP string `json:"otp,omitempty"`
}

// LoginResponse is the success body for POST /api/auth.
type LoginResponse struct {
	// Token is the signed bearer token to present on subsequent requests
	Token string `json:"token"`
}

// GreetingResponse is the body of the public demo endpoint.
type GreetingResponse struct {
	Message string `json:"message"`
}

// UserInfoResponse describes the authenticated caller.
type UserInfoResponse struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// UserSummary is one account in the admin user listing. No password hash,
// no TOTP secret.
type UserSummary struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UsersResponse is the body of GET /api/users.
type UsersResponse struct {
	Users []UserSummary `json:"users"`
}

// HealthChecks reports per-dependency status for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
