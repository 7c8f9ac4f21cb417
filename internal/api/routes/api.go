package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"Postboard/internal/core/posts"
	"Postboard/internal/core/users"
)

// APIConfig carries the settings the JSON API needs beyond its services
type APIConfig struct {
	AllowedOrigins    []string
	TypeaheadDebounce time.Duration
}

// RegisterAPIRoutes mounts the JSON API under /api with CORS applied to every endpoint
func RegisterAPIRoutes(r chi.Router, postService posts.Service, userService users.UserService, cfg APIConfig) {
	r.Route("/api", func(api chi.Router) {
		// Mounted sub-router so preflight OPTIONS requests reach the CORS handler
		api.Use(corsMiddleware(cfg.AllowedOrigins))

		RegisterPostRoutes(api, postService)
		RegisterUserRoutes(api, userService, cfg.TypeaheadDebounce)
	})
}

// corsMiddleware creates a CORS middleware for the API with specific allowed origins
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-Id",
		},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
}
