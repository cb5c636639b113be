package rest

import (
	"net/http"

	"accounts-backend/interfaces/http/rest/handlers"
	"accounts-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router creates and configures the HTTP router
type Router struct {
	classifier *middleware.ErrorClassifier
	capture    *middleware.Capture
	authn      *middleware.Authenticator
	users      *handlers.UserHandler
	auth       *handlers.AuthHandler
	health     *handlers.HealthHandler
}

// NewRouter creates a new router instance
func NewRouter(
	classifier *middleware.ErrorClassifier,
	capture *middleware.Capture,
	authn *middleware.Authenticator,
	users *handlers.UserHandler,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
) *Router {
	return &Router{
		classifier: classifier,
		capture:    capture,
		authn:      authn,
		users:      users,
		auth:       auth,
		health:     health,
	}
}

// Setup configures all routes and middleware. The per-route pipeline order
// is fixed and deliberate: correlation id at the edge, then classification,
// then authentication, then audit capture, then the handler. Authentication
// sits outside capture so the initial request record can name the caller.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.CorrelationID)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Probes stay outside the audit pipeline
	router.Get("/health", rt.health.Health)
	router.Get("/ready", rt.health.Ready)

	router.Post("/auth/login", rt.public(rt.auth.Login))

	router.Route("/users", func(r chi.Router) {
		r.Get("/", rt.admin(rt.users.GetAll))
		r.Get("/{id}", rt.admin(rt.users.GetByID))
		r.Post("/", rt.admin(rt.users.Add))
		r.Put("/{id}", rt.admin(rt.users.Update))
		r.Delete("/{id}", rt.admin(rt.users.Delete))
	})

	return router
}

// public wraps an unauthenticated handler with classification and audit
// capture.
func (rt *Router) public(h middleware.Handler) http.HandlerFunc {
	return rt.classifier.Wrap(rt.capture.Wrap(h)).ServeHTTP
}

// admin wraps a handler that requires an authenticated admin caller.
// Authentication and the role check run before capture; rejected callers
// produce an error trace but no request record.
func (rt *Router) admin(h middleware.Handler) http.HandlerFunc {
	return rt.classifier.Wrap(
		rt.authn.Authenticate(
			middleware.RequireAdmin(
				rt.capture.Wrap(h),
			),
		),
	).ServeHTTP
}
