package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	flashSessionName = "postboard_flash"

	flashSuccess = "success"
	flashError   = "error"
)

// Toast is a one-shot notification shown on the next page render
type Toast struct {
	Kind    string
	Message string
}

// NewSessionStore creates the cookie store that carries flash toasts across redirects
func NewSessionStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// addFlash queues a toast for the next page render
func (h *Handlers) addFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	session, err := h.sessions.Get(r, flashSessionName)
	if err != nil {
		// A tampered or stale cookie yields a fresh session; keep going with it
		slog.Warn("flash: discarding unreadable session", "error", err)
	}
	session.AddFlash(message, kind)
	if err := session.Save(r, w); err != nil {
		slog.Error("flash: failed to save session", "error", err)
	}
}

// popFlashes drains queued toasts. Must run before the response is written.
func (h *Handlers) popFlashes(w http.ResponseWriter, r *http.Request) []Toast {
	session, err := h.sessions.Get(r, flashSessionName)
	if err != nil {
		slog.Warn("flash: discarding unreadable session", "error", err)
	}

	var toasts []Toast
	for _, kind := range []string{flashSuccess, flashError} {
		for _, f := range session.Flashes(kind) {
			if msg, ok := f.(string); ok {
				toasts = append(toasts, Toast{Kind: kind, Message: msg})
			}
		}
	}

	if len(toasts) > 0 {
		if err := session.Save(r, w); err != nil {
			slog.Error("flash: failed to save session", "error", err)
		}
	}
	return toasts
}
