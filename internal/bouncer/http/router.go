package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/store"
	"github.com/aussiebroadwan/bouncer/pkg/httpx"
	"github.com/aussiebroadwan/bouncer/pkg/jwtx"
	"github.com/aussiebroadwan/bouncer/pkg/slogx"

	_ "github.com/aussiebroadwan/bouncer/api/bouncer" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	bearerScheme string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	TokenService      *service.TokenService
	CredentialService *service.CredentialService
	UserService       *service.UserService
}

func NewRouter(
	signer jwtx.Signer,
	bearerScheme, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		bearerScheme: bearerScheme,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	// Global chain. The gate runs on every route so a presented-but-invalid
	// token is rejected even where no authentication is required.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		PrincipalMiddleware(r.TokenService, r.bearerScheme),
	}

	r.registerAuth()
	r.registerDemo()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Bouncer Authentication Service API
//	@version		0.1.0
//	@description	Stateless token-based authentication and role-based authorization service.
//	@description
//	@description				Exchange a username/password pair at POST /api/auth for a signed JWT, then present it
//	@description				as a Bearer credential. Roles are resolved against the user store on every request, so
//	@description				deactivating an account takes effect immediately for already-issued tokens.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/bouncer
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT bearer token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{
		CredentialService: r.CredentialService,
		TokenService:      r.TokenService,
	}

	// POST /api/auth - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /api/auth",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /api/userinfo - authenticated, lenient rate limit by user
	r.Mux.Handle("GET /api/userinfo",
		httpx.Chain(&UserInfoHandler{},
			RequireAuthenticated(),
			RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDemo() {
	// GET /api/greeting - public, no authentication required
	r.Mux.Handle("GET /api/greeting",
		httpx.Chain(GreetingHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &UsersHandler{UserService: r.UserService}

	// GET /api/users - admin only, moderate rate limit by user
	r.Mux.Handle("GET /api/users",
		httpx.Chain(h,
			RequireRole(domain.RoleAdmin),
			RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
