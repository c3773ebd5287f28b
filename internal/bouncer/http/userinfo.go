package http

import (
	"net/http"

	"github.com/aussiebroadwan/bouncer/pkg/bouncersdk"
	"github.com/aussiebroadwan/bouncer/pkg/httpx"
)

type UserInfoHandler struct{}

// ServeHTTP handles the userinfo endpoint.
//
//	@Summary		Get caller identity
//	@Description	Returns the identity and roles of the authenticated caller. Roles reflect current store state, not the token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	bouncersdk.UserInfoResponse	"user_id, username, roles"
//	@Failure		401	{object}	bouncersdk.APIError			"Missing or invalid token"
//	@Router			/api/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFromContext(r.Context())
	if !p.Authenticated {
		bouncersdk.ErrMissingAuth.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, bouncersdk.UserInfoResponse{
		UserID:   p.UserID,
		Username: p.Username,
		Roles:    p.Roles.Strings(),
	})
}
