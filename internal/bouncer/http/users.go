package http

import (
	"net/http"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/aussiebroadwan/bouncer/pkg/bouncersdk"
	"github.com/aussiebroadwan/bouncer/pkg/httpx"
	"github.com/aussiebroadwan/bouncer/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles the admin user listing.
//
//	@Summary		List all user accounts
//	@Description	Returns every account with its roles and active flag. Requires the ADMIN role; authenticated non-admins get 403.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	bouncersdk.UsersResponse	"users"
//	@Failure		401	{object}	bouncersdk.APIError			"Missing or invalid token"
//	@Failure		403	{object}	bouncersdk.APIError			"Caller lacks the ADMIN role"
//	@Failure		500	{object}	bouncersdk.APIError			"Internal server error"
//	@Router			/api/users [get].
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "err", err)
		bouncersdk.ErrServerError.WriteError(w)
		return
	}

	resp := bouncersdk.UsersResponse{
		Users: make([]bouncersdk.UserSummary, 0, len(users)),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, bouncersdk.UserSummary{
			UserID:    u.ID,
			Username:  u.Username,
			Roles:     u.Roles.Strings(),
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}
