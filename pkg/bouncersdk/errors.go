package bouncersdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/bouncer/pkg/httpx"
)

const (
	// Error codes returned in JSON error bodies. Deliberately coarse: the
	// fine-grained failure taxonomy lives in server logs, not responses.
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeInvalidToken     = "invalid_token"
	ErrorCodeMissingAuth      = "missing_auth"
	ErrorCodeInsufficientRole = "insufficient_role"
	ErrorCodeServerError      = "server_error"
)

// APIError is the error body shape the service writes and the SDK client
// parses. It implements the error interface so client code can errors.As on
// it and inspect StatusCode/Code.
type APIError struct {
	// StatusCode is the HTTP status for this error. Not serialized.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code. Omitted from the login
	// failure body so that response stays a bare message.
	Code string `json:"code,omitempty"`

	// Message is a human-readable description of the error.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, e)
}

var (
	// ErrInvalidCredentials is the single login failure response. Every
	// credential failure kind (unknown user, bad password, disabled account,
	// TOTP problems) maps here so the body never reveals which part failed.
	// Code is intentionally empty: the body is exactly
	// {"message":"invalid username or password"}.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid username or password",
	}

	// ErrInvalidToken is the single response for every failure of a
	// presented token: malformed, bad signature, expired, revoked, or
	// subject missing/deactivated. One body, no hints.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "the token is missing, invalid or expired",
	}

	// ErrMissingAuth is returned when a protected endpoint is hit with no
	// credentials at all.
	ErrMissingAuth = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeMissingAuth,
		Message:    "authentication required",
	}

	// ErrInsufficientRole is returned when an authenticated caller lacks a
	// required role. 403, never 401: authentication succeeded.
	ErrInsufficientRole = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeInsufficientRole,
		Message:    "you do not have the required role",
	}

	// ErrInvalidRequest is returned when the request body cannot be parsed
	// or required fields are missing.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	// ErrServerError is returned for unexpected failures (store outages and
	// the like). Details stay in logs.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
