package httpx

import (
	"net/http"
	"strings"
)

// DefaultBearerScheme is the scheme keyword recognized in Authorization
// headers unless the service configures another one.
const DefaultBearerScheme = "Bearer"

// ExtractBearer pulls the bearer token out of the request's Authorization
// header. It recognizes exactly "Bearer <token>": case-sensitive scheme
// keyword, a single space, and a non-empty token. Anything else - another
// scheme, extra whitespace, a missing header - yields ok=false, which means
// the request proceeds as anonymous rather than failing here.
func ExtractBearer(r *http.Request) (string, bool) {
	return ExtractToken(r, DefaultBearerScheme)
}

// ExtractToken is ExtractBearer with a configurable scheme keyword.
func ExtractToken(r *http.Request, scheme string) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", false
	}

	token, found := strings.CutPrefix(authz, scheme+" ")
	if !found || token == "" {
		return "", false
	}

	// A single separating space only; tokens never contain whitespace.
	if strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}
