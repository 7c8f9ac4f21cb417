package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"Postboard/internal/core/posts"
	"Postboard/internal/core/users"
	"Postboard/internal/web"
)

// RegisterWebRoutes registers the server-rendered feed pages.
func RegisterWebRoutes(r chi.Router, postService posts.Service, userService users.UserService, store sessions.Store) error {
	templates, err := web.NewTemplates()
	if err != nil {
		return err
	}

	handlers := web.NewHandlers(templates, postService, userService, store)

	// Feed with load more (?pages=) and author filter (?userId=)
	r.Get("/", handlers.FeedHandler)

	// Delete flow: confirm dialog, then POST + redirect with a flash toast
	r.Get("/posts/{id}/delete", handlers.ConfirmDeleteHandler)
	r.Post("/posts/{id}/delete", handlers.DeleteSubmitHandler)

	return nil
}
