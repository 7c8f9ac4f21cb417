package user

import (
	"encoding/json"
	"log"
	"net/http"

	"Postboard/internal/core/users"
)

// ListHandler serves user listing and search
type ListHandler struct {
	service users.UserService
}

// NewListHandler creates a new user list handler
func NewListHandler(service users.UserService) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// UsersOutput is the response body of the list and search endpoints
type UsersOutput struct {
	Users []*users.UserSummary `json:"users"`
}

// HandleList returns up to five users ordered by name, filtered by a
// case-insensitive substring of name or username
// GET /api/users?search={text}
// GET /api/users/search?q={text}
// Both spellings of the parameter are accepted on both paths.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	term := query.Get("search")
	if term == "" {
		term = query.Get("q")
	}

	found, err := h.service.SearchUsers(r.Context(), term)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch users")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(UsersOutput{Users: found}); err != nil {
		log.Printf("Failed to encode users response: %v", err)
	}
}
