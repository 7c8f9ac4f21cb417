package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"Postboard/internal/core/feed"
	"Postboard/internal/core/posts"
	"Postboard/internal/core/users"
)

// maxPages bounds how many pages one feed render may load
const maxPages = 50

// Handlers provides HTTP handlers for the feed web interface.
type Handlers struct {
	templates   *Templates
	postService posts.Service
	userService users.UserService
	sessions    sessions.Store
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(templates *Templates, postService posts.Service, userService users.UserService, store sessions.Store) *Handlers {
	return &Handlers{
		templates:   templates,
		postService: postService,
		userService: userService,
		sessions:    store,
	}
}

// FeedPageData holds data for the feed template.
type FeedPageData struct {
	Filter *FilterData
	// ReturnURL is this page's own URL, carried through the delete flow
	ReturnURL string
	// LoadMoreURL is empty when there is nothing left to load
	LoadMoreURL string
	Posts       []*posts.PostView
	Toasts      []Toast
	Empty       bool
	Ended       bool
}

// FilterData describes the active author filter
type FilterData struct {
	Name   string
	UserID int64
	// Known is false when the id matches no user; the feed is then simply empty
	Known bool
}

// ErrorPageData holds data for the error template.
type ErrorPageData struct {
	Title   string
	Message string
}

// ConfirmDeletePageData holds data for the delete confirmation template.
type ConfirmDeletePageData struct {
	Post      *posts.PostView
	ReturnURL string
}

// FeedHandler renders the post feed
// GET /?userId={id}&pages={n}
//
// pages is how many pages have been loaded so far. "Load more" links to the
// same URL with pages+1, and the list is rebuilt by replaying the cursor chain,
// so the page works without JavaScript and survives a reload.
func (h *Handlers) FeedHandler(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path - let other routes handle their own paths
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	query := r.URL.Query()
	filter := posts.ParseOptionalID(query.Get("userId"))
	pages := parsePages(query.Get("pages"))

	state := feed.New(filter)
	first, err := h.postService.GetPage(ctx, state.NextRequest())
	if err != nil {
		h.renderFeedError(w, err)
		return
	}
	state.Reset(filter, first)

	loaded := 1
	for loaded < pages && state.HasMore {
		page, err := h.postService.GetPage(ctx, state.NextRequest())
		if err != nil {
			h.renderFeedError(w, err)
			return
		}
		if err := state.Extend(page); err != nil {
			// Only reachable if the store changed under a cursor; show what we have
			slog.Warn("feed: stopped extending", "loaded", loaded, "error", err)
			break
		}
		loaded++
	}

	data := FeedPageData{
		Posts:     state.Posts,
		Empty:     state.Empty(),
		Ended:     state.Ended(),
		ReturnURL: feedURL(filter, loaded),
		Toasts:    h.popFlashes(w, r),
	}
	if state.HasMore {
		data.LoadMoreURL = feedURL(filter, loaded+1)
	}
	if filter != nil {
		data.Filter = h.describeFilter(r, *filter)
	}

	if err := h.templates.Render(w, "feed.html", data); err != nil {
		slog.Error("failed to render feed template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ConfirmDeleteHandler renders the delete confirmation dialog for one post
// GET /posts/{id}/delete
func (h *Handlers) ConfirmDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(chi.URLParam(r, "id"))
	if !ok {
		h.renderError(w, http.StatusNotFound, "Post not found", "That post does not exist.")
		return
	}

	post, err := h.postService.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "Post not found", "That post does not exist or was already deleted.")
			return
		}
		slog.Error("confirm delete: failed to load post", "post_id", id, "error", err)
		h.renderError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load the post.")
		return
	}

	data := ConfirmDeletePageData{
		Post:      post,
		ReturnURL: safeReturnURL(r.URL.Query().Get("return")),
	}
	if err := h.templates.Render(w, "confirm_delete.html", data); err != nil {
		slog.Error("failed to render confirm delete template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// DeleteSubmitHandler deletes a post and redirects back to the feed with a toast.
// On failure nothing changes except the error toast.
// POST /posts/{id}/delete
func (h *Handlers) DeleteSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Error("delete submit: failed to parse form", "error", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	returnURL := safeReturnURL(r.PostFormValue("return"))

	id, ok := parsePostID(chi.URLParam(r, "id"))
	if !ok {
		h.addFlash(w, r, flashError, "Failed to delete post")
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return
	}

	if err := h.postService.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			slog.Warn("delete submit: post already gone", "post_id", id)
		} else {
			slog.Error("delete submit: failed to delete post", "post_id", id, "error", err)
		}
		h.addFlash(w, r, flashError, "Failed to delete post")
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return
	}

	slog.Info("post deleted via web", "post_id", id)
	h.addFlash(w, r, flashSuccess, "Post deleted")
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (h *Handlers) describeFilter(r *http.Request, userID int64) *FilterData {
	filter := &FilterData{UserID: userID}

	user, err := h.userService.GetUser(r.Context(), userID)
	switch {
	case err == nil:
		filter.Name = user.Name
		filter.Known = true
	case errors.Is(err, users.ErrUserNotFound):
		// Unknown author: the feed is empty, not an error
	default:
		slog.Warn("feed: failed to resolve filter author", "user_id", userID, "error", err)
	}
	return filter
}

func (h *Handlers) renderFeedError(w http.ResponseWriter, err error) {
	slog.Error("feed: failed to fetch posts", "error", err)
	h.renderError(w, http.StatusInternalServerError, "Something went wrong", "Failed to fetch posts. Please try again.")
}

func (h *Handlers) renderError(w http.ResponseWriter, status int, title, message string) {
	data := ErrorPageData{Title: title, Message: message}
	if err := h.templates.RenderStatus(w, status, "error.html", data); err != nil {
		slog.Error("failed to render error template", "error", err)
		http.Error(w, message, status)
	}
}

func parsePages(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	if n > maxPages {
		return maxPages
	}
	return n
}

func parsePostID(raw string) (int64, bool) {
	id := posts.ParseOptionalID(raw)
	if id == nil {
		return 0, false
	}
	return *id, true
}

func feedURL(filter *int64, pages int) string {
	values := url.Values{}
	if filter != nil {
		values.Set("userId", strconv.FormatInt(*filter, 10))
	}
	if pages > 1 {
		values.Set("pages", strconv.Itoa(pages))
	}
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}

// safeReturnURL only allows local feed URLs, so the delete flow can't be used as an open redirect
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path != "/" {
		return "/"
	}
	return u.RequestURI()
}
