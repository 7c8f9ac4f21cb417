package post

import (
	"encoding/json"
	"log"
	"net/http"

	"Postboard/internal/core/posts"
)

// ListHandler handles paginated post listing
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList returns one page of posts, optionally filtered by author
// GET /api/posts?cursor={id}&userId={id}
//
// Both parameters are optional. Malformed or non-positive values are ignored
// rather than rejected, so a bad link still renders the unfiltered first page.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	req := posts.PageRequest{
		Cursor: posts.ParseOptionalID(query.Get("cursor")),
		UserID: posts.ParseOptionalID(query.Get("userId")),
	}

	page, err := h.service.GetPage(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch posts")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(page); err != nil {
		log.Printf("Failed to encode post page response: %v", err)
	}
}
