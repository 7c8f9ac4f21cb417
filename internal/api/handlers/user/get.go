package user

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/core/users"
)

// GetHandler serves a single user
type GetHandler struct {
	service users.UserService
}

// NewGetHandler creates a new get-user handler
func NewGetHandler(service users.UserService) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// UserOutput is the response body of the get endpoint
type UserOutput struct {
	User *users.UserSummary `json:"user"`
}

// HandleGet returns a user's public fields
// GET /api/users/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		handleServiceError(w, &users.InvalidUserIDError{Raw: rawID}, "Failed to fetch user")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch user")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(UserOutput{User: user.Summary()}); err != nil {
		log.Printf("Failed to encode user response: %v", err)
	}
}
