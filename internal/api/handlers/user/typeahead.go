package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"Postboard/internal/core/users"
)

const (
	// typeaheadReadLimit bounds a single client frame
	typeaheadReadLimit = 1024
	typeaheadWriteWait = 10 * time.Second
)

// TypeaheadHandler serves the author search box over a WebSocket.
// Each client frame is a new value of the box; the server answers only the
// latest one, so a slow search for "cl" can never overwrite results for "cle".
type TypeaheadHandler struct {
	service  users.UserService
	upgrader websocket.Upgrader
	debounce time.Duration
}

// NewTypeaheadHandler creates a typeahead handler with the given debounce delay
func NewTypeaheadHandler(service users.UserService, debounce time.Duration) *TypeaheadHandler {
	return &TypeaheadHandler{
		service:  service,
		debounce: debounce,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

type typeaheadRequest struct {
	Q string `json:"q"`
}

type typeaheadResponse struct {
	Q     string               `json:"q"`
	Users []*users.UserSummary `json:"users"`
}

type typeaheadError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Q       string `json:"q"`
}

// HandleTypeahead upgrades the request and runs one search session
// GET /api/users/typeahead (WebSocket)
//
// Client frames: {"q": "cle"}
// Server frames: {"q": "cle", "users": [{id, name, username}]} or
// {"error": "SearchFailed", "message": "...", "q": "cle"}
func (h *TypeaheadHandler) HandleTypeahead(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		log.Printf("[TYPEAHEAD] Upgrade failed: %v", err)
		return
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("WARN: failed to close typeahead connection: %v", closeErr)
		}
	}()

	connID := uuid.NewString()
	log.Printf("[TYPEAHEAD] Session %s opened from %s", connID, r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	typeahead := users.NewTypeahead(ctx, h.service, h.debounce)
	done := make(chan struct{})
	go h.writeLoop(conn, typeahead, connID, done)

	conn.SetReadLimit(typeaheadReadLimit)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[TYPEAHEAD] Session %s read error: %v", connID, err)
			}
			break
		}

		var req typeaheadRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			log.Printf("[TYPEAHEAD] Session %s sent malformed frame, ignoring: %v", connID, err)
			continue
		}
		typeahead.Input(req.Q)
	}

	typeahead.Close()
	<-done
	log.Printf("[TYPEAHEAD] Session %s closed", connID)
}

// writeLoop is the only goroutine that writes to conn
func (h *TypeaheadHandler) writeLoop(conn *websocket.Conn, typeahead *users.Typeahead, connID string, done chan<- struct{}) {
	defer close(done)

	for res := range typeahead.Results() {
		// Input may have moved on between delivery and now
		if res.Seq != typeahead.Latest() {
			continue
		}

		var frame interface{}
		if res.Err != nil {
			log.Printf("ERROR: typeahead search for %q failed (session %s): %v", res.Query, connID, res.Err)
			frame = typeaheadError{Error: "SearchFailed", Message: "Failed to search users", Q: res.Query}
		} else {
			frame = typeaheadResponse{Q: res.Query, Users: res.Users}
		}

		if err := conn.SetWriteDeadline(time.Now().Add(typeaheadWriteWait)); err != nil {
			log.Printf("[TYPEAHEAD] Session %s set deadline failed: %v", connID, err)
			return
		}
		if err := conn.WriteJSON(frame); err != nil {
			log.Printf("[TYPEAHEAD] Session %s write failed: %v", connID, err)
			return
		}
	}
}
