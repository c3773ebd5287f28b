package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/aussiebroadwan/bouncer/pkg/bouncersdk"
	"github.com/aussiebroadwan/bouncer/pkg/httpx"
	"github.com/aussiebroadwan/bouncer/pkg/slogx"
)

type LoginHandler struct {
	CredentialService *service.CredentialService
	TokenService      *service.TokenService
}

// ServeHTTP handles the login endpoint.
//
//	@Summary		Authenticate with username and password
//	@Description	Exchanges a username/password pair (plus a TOTP code for enrolled accounts) for a signed bearer token.
//	@Description	All credential failures return the same 401 body; the response never reveals whether the username exists.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bouncersdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	bouncersdk.LoginResponse	"Signed bearer token"
//	@Failure		400		{object}	bouncersdk.APIError			"Malformed request body"
//	@Failure		401		{object}	bouncersdk.APIError			"Invalid username or password"
//	@Failure		500		{object}	bouncersdk.APIError			"Internal server error"
//	@Router			/api/auth [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req bouncersdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		bouncersdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// Empty fields go through the credential service like any other bad
	// credentials, so the failure response stays uniform.
	user, err := h.CredentialService.Authenticate(ctx, req.Username, req.Password, req.OTP)
	if err != nil {
		if service.IsCredentialFailure(err) {
			bouncersdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("credential check failed", "err", err)
		bouncersdk.ErrServerError.WriteError(w)
		return
	}

	token, _, err := h.TokenService.Issue(ctx, user)
	if err != nil {
		log.Error("token issuance failed", "user_id", user.ID, "err", err)
		bouncersdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, bouncersdk.LoginResponse{Token: token})
}
