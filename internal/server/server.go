// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"campusnav/internal/adapter/events"
	"campusnav/internal/config"
	"campusnav/internal/domain/identity"
	"campusnav/internal/domain/location"
	"campusnav/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	campus config.CampusConfig,
	directory location.Service,
	auth identity.Service,
	bus *events.Bus,
	logger *zap.Logger,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	locationHandler := handlers.NewLocationHandler(directory)
	authHandler := handlers.NewAuthHandler(auth)
	transferHandler := handlers.NewTransferHandler(directory, campus.OrgName)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Auth API
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", authHandler.Login)
				r.Post("/logout", authHandler.Logout)
				r.With(authHandler.RequireAuth).Get("/me", authHandler.Me)
			})

			// Locations API
			r.Route("/locations", func(r chi.Router) {
				r.Get("/", locationHandler.ListLocations)
				r.Get("/categories", locationHandler.GetCategories)
				r.Get("/export", transferHandler.ExportLocations)
				r.Get("/{id}", locationHandler.GetLocation)

				// Mutations require an authenticated admin
				r.Group(func(r chi.Router) {
					r.Use(authHandler.RequireAuth)
					r.Post("/", locationHandler.CreateLocation)
					r.Put("/{id}", locationHandler.UpdateLocation)
					r.Delete("/{id}", locationHandler.DeleteLocation)
					r.Post("/import", transferHandler.ImportLocations)
				})
			})
		})
	})

	// WebSocket endpoint for the live map session
	router.Get("/ws/map", handlers.MapWebSocketHandler(directory, bus, auth, campus, logger))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
