package user

import (
	"errors"
	"log"
	"net/http"

	"Postboard/internal/api/handlers"
	"Postboard/internal/core/users"
)

// handleServiceError maps user service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "UserNotFound", "User not found")

	case users.IsInvalidUserID(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		log.Printf("ERROR: %s: %v", fallback, err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", fallback)
	}
}
