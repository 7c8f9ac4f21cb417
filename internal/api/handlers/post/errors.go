package post

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Postboard/internal/core/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps service errors to HTTP responses.
// fallback is the client-facing message for unexpected failures.
func handleServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, posts.ErrNotFound):
		writeError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		// Don't leak storage details to clients
		log.Printf("ERROR: %s: %v", fallback, err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", fallback)
	}
}
