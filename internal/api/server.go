// Package api provides the HTTP API server and handlers for the catalog server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/catalog-server/internal/config"
	"github.com/listenupapp/catalog-server/internal/ratelimit"
	"github.com/listenupapp/catalog-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	router      *chi.Mux
	api         huma.API
	rateLimiter *ratelimit.KeyedRateLimiter
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// A nil limiter disables rate limiting.
func NewServer(st store.Store, services *Services, cfg config.ServerConfig, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:       st,
		services:    services,
		router:      router,
		rateLimiter: limiter,
		logger:      logger,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Catalog API", "1.0.0")
	humaConfig.Info.Description = "Music catalog and playlist management"
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(cfg config.ServerConfig) {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(accessLog(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins(cfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if s.rateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
	}
}

// registerRoutes configures all HTTP routes.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerUserRoutes()
	s.registerArtistRoutes()
	s.registerAlbumRoutes()
	s.registerSongRoutes()
	s.registerPlaylistRoutes()
	s.registerPlaylistSongRoutes()
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
