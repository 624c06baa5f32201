// Package router wires handlers and middleware into the HTTP API.
package router

import (
	"context"
	"net/http"
	"time"

	"coffee-kart/internal/handler"
	"coffee-kart/internal/metrics"
	"coffee-kart/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	CartStream   *handler.CartStreamHandler
	Order        *handler.OrderHandler
	Notification *handler.NotificationHandler
	Profile      *handler.ProfileHandler
}

// HealthCheck reports whether a dependency is reachable. A nil HealthCheck is always healthy.
type HealthCheck func(ctx context.Context) error

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, health HealthCheck, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> APIKeyAuth
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(metrics.Middleware)
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", healthHandler(health, logger))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.Catalog.GetCatalog)
		r.Get("/products", h.Catalog.ListProducts)
		r.Get("/products/{id}", h.Catalog.GetProduct)

		// Fulfilment staff act on any order with the API key alone.
		r.Patch("/orders/{id}/status", h.Order.UpdateStatus)

		r.Group(func(r chi.Router) {
			r.Use(middleware.UserIdentity(logger))

			r.Get("/cart", h.Cart.Get)
			r.Delete("/cart", h.Cart.Clear)
			r.Get("/cart/stream", h.CartStream.Stream)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Patch("/cart/items/{id}", h.Cart.UpdateItem)
			r.Delete("/cart/items/{id}", h.Cart.RemoveItem)

			r.Post("/orders", h.Order.Checkout)
			r.Get("/orders", h.Order.List)
			r.Get("/orders/{id}", h.Order.GetByID)
			r.Post("/orders/{id}/confirm-transfer", h.Order.ConfirmTransfer)

			r.Get("/notifications", h.Notification.List)
			r.Post("/notifications/{id}/read", h.Notification.MarkRead)

			r.Get("/me", h.Profile.Get)
			r.Put("/me", h.Profile.Update)
		})
	})

	return r
}

func healthHandler(health HealthCheck, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := health(ctx); err != nil {
				logger.Error().Err(err).Msg("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status": "unhealthy"}`))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	}
}
