package post

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Postboard/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// DeletePostOutput is the success body of a delete
type DeletePostOutput struct {
	Success bool `json:"success"`
}

// HandleDelete removes a single post. The author is left untouched.
// DELETE /api/posts?id={id}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Post ID is required")
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Post ID must be an integer")
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		handleServiceError(w, err, "Failed to delete post")
		return
	}

	log.Printf("[POST-DELETE] Deleted post %d", id)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(DeletePostOutput{Success: true}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
