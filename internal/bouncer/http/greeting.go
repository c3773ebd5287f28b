package http

import (
	"net/http"

	"github.com/aussiebroadwan/bouncer/pkg/bouncersdk"
	"github.com/aussiebroadwan/bouncer/pkg/httpx"
)

// GreetingHandler godoc
//
//	@Summary		Public greeting
//	@Description	Demo endpoint reachable without credentials. Greets the caller by name when a valid token is presented.
//	@Tags			Demo
//	@Produce		json
//	@Success		200	{object}	bouncersdk.GreetingResponse	"message"
//	@Failure		401	{object}	bouncersdk.APIError			"A token was presented but is invalid"
//	@Router			/api/greeting [get].
func GreetingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message := "Hello, stranger."
		if p := PrincipalFromContext(r.Context()); p.Authenticated {
			message = "Hello, " + p.Username + "."
		}

		httpx.WriteJSON(w, http.StatusOK, bouncersdk.GreetingResponse{Message: message})
	}
}
