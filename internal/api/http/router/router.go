package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/provider-server/internal/api/http/handler"
	"github.com/dtroode/provider-server/internal/api/http/middleware"
	"github.com/dtroode/provider-server/internal/logger"
	"github.com/dtroode/provider-server/internal/model"
)

// Router builds the HTTP route table and middleware chain.
type Router struct {
	authService     handler.AuthService
	providerService handler.ProviderService
	tokenParser     middleware.TokenParser
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	providerService handler.ProviderService,
	tokenParser middleware.TokenParser,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		providerService: providerService,
		tokenParser:     tokenParser,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register wires all routes and middleware.
//
// Registration, login and provider reads are public; provider writes sit
// behind bearer-token authentication. The delete-provider claim is enforced
// by the service, not here.
func (r *Router) Register() http.Handler {
	recovery := middleware.NewRecovery(r.logger)
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenParser, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	providerHandler := handler.NewProvider(r.providerService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(recovery.Handle)
	mux.Use(logging.Handle)

	mux.Post("/register", authHandler.Register)
	mux.Post("/login", authHandler.Login)

	mux.Get("/provider", providerHandler.List)
	mux.Get("/provider/{id}", providerHandler.Get)

	mux.Group(func(g chi.Router) {
		g.Use(authenticate.Handle)

		g.Post("/provider", providerHandler.Create)
		g.Put("/provider/{id}", providerHandler.Update)
		g.Delete("/provider/{id}", providerHandler.Delete)
	})

	return mux
}
