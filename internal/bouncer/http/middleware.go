package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/aussiebroadwan/bouncer/pkg/bouncersdk"
	"github.com/aussiebroadwan/bouncer/pkg/httpx"
	"github.com/aussiebroadwan/bouncer/pkg/slogx"
)

type ctxKey int

const principalKey ctxKey = iota

// PrincipalFromContext returns the principal the gate attached to this
// request. Requests that presented no token carry the anonymous principal.
func PrincipalFromContext(ctx context.Context) domain.Principal {
	if p, ok := ctx.Value(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Anonymous()
}

// TokenAuthenticator is the slice of the token service the gate needs.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, rawToken string) (domain.Principal, error)
}

// PrincipalMiddleware is the security gate. It runs on every route,
// public ones included:
//
//   - no token presented: the request continues with the anonymous principal
//   - valid token: the request continues with the resolved principal
//   - invalid token: 401, even on public routes; a presented credential
//     must never silently degrade to anonymous
//
// All token failures produce the same response body. Which check failed is
// a log-only detail.
func PrincipalMiddleware(tokens TokenAuthenticator, scheme string) httpx.Middleware {
	if scheme == "" {
		scheme = httpx.DefaultBearerScheme
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := httpx.ExtractToken(r, scheme)
			if !ok {
				next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, domain.Anonymous())))
				return
			}

			principal, err := tokens.Authenticate(ctx, raw)
			if err != nil {
				if errors.Is(err, service.ErrTokenInvalid) || errors.Is(err, service.ErrAccountUnavailable) {
					setInvalidTokenChallenge(w, scheme)
					bouncersdk.ErrInvalidToken.WriteError(w)
					return
				}
				slogx.FromContext(ctx).Error("token authentication failed", "err", err)
				bouncersdk.ErrServerError.WriteError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
		})
	}
}

func withPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// RFC 6750 challenge headers. A bare scheme means "no credentials were
// presented"; invalid_token means the presented ones failed.
func setBearerChallenge(w http.ResponseWriter, scheme string) {
	w.Header().Set("WWW-Authenticate", scheme)
}

func setInvalidTokenChallenge(w http.ResponseWriter, scheme string) {
	w.Header().Set("WWW-Authenticate", scheme+` error="invalid_token"`)
}

// Roles stand in for OAuth scopes in the insufficient_scope challenge.
func setInsufficientScopeChallenge(w http.ResponseWriter, required domain.Roles) {
	w.Header().Set("WWW-Authenticate",
		httpx.DefaultBearerScheme+` error="insufficient_scope", scope="`+strings.Join(required.Strings(), " ")+`"`)
}

// RequireAuthenticated rejects anonymous requests with 401. Run after
// PrincipalMiddleware.
func RequireAuthenticated() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !PrincipalFromContext(r.Context()).Authenticated {
				setBearerChallenge(w, httpx.DefaultBearerScheme)
				bouncersdk.ErrMissingAuth.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole rejects authenticated requests that hold none of the given
// roles with 403. Anonymous requests get 401: "who are you" comes before
// "you can't do that".
func RequireAnyRole(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if !p.Authenticated {
				setBearerChallenge(w, httpx.DefaultBearerScheme)
				bouncersdk.ErrMissingAuth.WriteError(w)
				return
			}

			for _, role := range roles {
				if p.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			slogx.FromContext(r.Context()).Warn("role check failed",
				"user_id", p.UserID,
				"required", domain.Roles(roles).Strings(),
				"held", p.Roles.Strings(),
			)
			setInsufficientScopeChallenge(w, roles)
			bouncersdk.ErrInsufficientRole.WriteError(w)
		})
	}
}

// RequireRole is RequireAnyRole with a single role.
func RequireRole(role domain.Role) httpx.Middleware {
	return RequireAnyRole(role)
}

// RateLimitByUser limits authenticated traffic per user ID, falling back to
// the client IP for anonymous requests. Must run after PrincipalMiddleware.
func RateLimitByUser(config httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitMiddleware(config, func(r *http.Request) string {
		if p := PrincipalFromContext(r.Context()); p.Authenticated {
			return "user:" + p.UserID
		}
		return "ip:" + httpx.IPKeyExtractor(r)
	})
}
