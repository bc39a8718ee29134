package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/safari-trip-api/internal/auth"
	"github.com/gdg-garage/safari-trip-api/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, logger *slog.Logger, allowedOrigins []string, authHandler *auth.AuthHandler, tripHandler *TripHandler, bookingHandler *BookingHandler) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(NewCORSHandler(allowedOrigins))
	r.Use(authHandler.RefreshSession)

	config := huma.DefaultConfig("Safari Trip API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	// Auth routes
	r.Get("/auth/login", authHandler.HandleLogin)
	r.Get("/auth/callback", authHandler.HandleCallback)
	r.Get("/auth/logout", authHandler.HandleLogout)

	Register(api, authHandler, tripHandler, bookingHandler)
}

// Register adds the huma operations to api.
func Register(api huma.API, authHandler *auth.AuthHandler, tripHandler *TripHandler, bookingHandler *BookingHandler) {
	cookieAuth := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	huma.Get(api, "/me", authHandler.HandleMe, cookieAuth)

	huma.Get(api, "/trips", tripHandler.HandleSearch)
	huma.Get(api, "/trips/search", tripHandler.HandleSearchStrict)
	huma.Get(api, "/trips/{id}", tripHandler.HandleGet)
	huma.Post(api, "/trips", tripHandler.HandleOffer, cookieAuth, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Post(api, "/trips/{id}/book", bookingHandler.HandleBook, cookieAuth)
}
