package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers/user"
	"Postboard/internal/core/users"
)

// RegisterUserRoutes registers the author lookup endpoints on an /api router
func RegisterUserRoutes(r chi.Router, service users.UserService, typeaheadDebounce time.Duration) {
	listHandler := user.NewListHandler(service)
	getHandler := user.NewGetHandler(service)
	typeaheadHandler := user.NewTypeaheadHandler(service, typeaheadDebounce)

	r.Get("/users", listHandler.HandleList)
	r.Get("/users/search", listHandler.HandleList)

	// WebSocket: one search session per connection
	r.Get("/users/typeahead", typeaheadHandler.HandleTypeahead)

	r.Get("/users/{id}", getHandler.HandleGet)
}
