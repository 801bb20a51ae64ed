package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/api/http/handler"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/api/http/middleware"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// Page prefixes the request gate classifies. Everything under /panel needs a
// valid session; the auth pages bounce authenticated users back to the panel.
var (
	protectedPrefixes = []string{"/panel"}
	authOnlyPrefixes  = []string{"/login", "/register"}
)

const (
	authEntryPath = "/login"
	landingPath   = "/panel"
)

// Router assembles the HTTP route tree for the portal's auth surface.
type Router struct {
	authService    handler.AuthService
	otpService     handler.OTPService
	db             handler.Pinger
	tokens         model.TokenManager
	contextManager model.ContextManager
	cookie         handler.CookieSettings
	exposeCodes    bool
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	otpService handler.OTPService,
	db handler.Pinger,
	tokens model.TokenManager,
	contextManager model.ContextManager,
	cookie handler.CookieSettings,
	exposeCodes bool,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		otpService:     otpService,
		db:             db,
		tokens:         tokens,
		contextManager: contextManager,
		cookie:         cookie,
		exposeCodes:    exposeCodes,
		logger:         logger,
	}
}

// Register builds the chi router with middleware and all auth routes.
func (r *Router) Register() chi.Router {
	logging := middleware.NewLogging(r.logger)
	gate := middleware.NewGate(r.tokens, r.cookie.Name, protectedPrefixes, authOnlyPrefixes, authEntryPath, landingPath, r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.cookie.Name, r.logger)

	authHandler := handler.NewAuth(r.authService, r.tokens, r.contextManager, r.cookie, r.logger)
	otpHandler := handler.NewOTP(r.otpService, r.exposeCodes, r.logger)
	healthHandler := handler.NewHealth(r.db, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(gate.Handle)

	mux.Get("/api/health", healthHandler.Check)

	mux.Route("/api/auth", func(api chi.Router) {
		api.Post("/login", authHandler.Login)
		api.Post("/logout", authHandler.Logout)
		api.Post("/otp/request", otpHandler.Request)
		api.Post("/otp/verify", otpHandler.Verify)

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.Handle)
			protected.Get("/verify", authHandler.Verify)
			protected.Post("/refresh", authHandler.Refresh)
		})
	})

	return mux
}
