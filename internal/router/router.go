package router

import (
	"net/http"
	"time"

	"food-fridge/internal/auth"
	"food-fridge/internal/handler"
	"food-fridge/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options carries the per-deployment settings of the HTTP surface.
type Options struct {
	AllowedOrigin  string
	RequestTimeout time.Duration
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	foodHandler *handler.FoodHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
	verifier auth.Verifier,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Order: RequestID -> RealIP -> Recovery -> Logging -> CORS -> Timeout
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.AllowedOrigin))
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	// Public reads
	r.Get("/foods", foodHandler.ListAll)
	r.Get("/foods/{id}", foodHandler.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(verifier, logger))

		r.Post("/foods", foodHandler.Create)
		r.Get("/user-foods", foodHandler.ListOwned)
		r.Put("/foods/{id}", foodHandler.Update)
		r.Delete("/foods/{id}", foodHandler.Delete)
	})

	return r
}
