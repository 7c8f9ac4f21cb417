package routes

import (
	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers/post"
	"Postboard/internal/core/posts"
)

// RegisterPostRoutes registers the post listing endpoints on an /api router
func RegisterPostRoutes(r chi.Router, service posts.Service) {
	listHandler := post.NewListHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	// Keyset-paginated listing, optionally filtered by author
	r.Get("/posts", listHandler.HandleList)

	// Single-post delete by ?id=
	r.Delete("/posts", deleteHandler.HandleDelete)
}
