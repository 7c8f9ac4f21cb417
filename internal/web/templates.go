// Package web serves the server-rendered post feed: the card list with
// load-more and author filtering, the delete confirmation flow, and flash toasts.
package web

import (
	"embed"
	"fmt"
	"hash/fnv"
	"html/template"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed templates/*.html
var templatesFS embed.FS

// avatarPalette is the fixed set of avatar background colors
var avatarPalette = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#14b8a6", "#f97316", "#6366f1", "#84cc16",
}

// Templates holds the parsed HTML templates for the web interface.
type Templates struct {
	templates *template.Template
}

// NewTemplates creates a new Templates instance by parsing all embedded templates.
func NewTemplates() (*Templates, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"avatarInitial": AvatarInitial,
		"avatarColor":   AvatarColor,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Templates{templates: tmpl}, nil
}

// Render renders a named template with the provided data to the response writer.
// Returns an error if the template doesn't exist or rendering fails.
func (t *Templates) Render(w http.ResponseWriter, name string, data interface{}) error {
	return t.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus is Render with an explicit status code
func (t *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data interface{}) error {
	tmpl := t.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}

	// Execute into a buffer so a failed render never leaves a half-written page
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write([]byte(buf.String()))
	return err
}

// AvatarInitial returns the upper-cased first letter of a name, or "?" for an empty name
func AvatarInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// AvatarColor picks a palette color from the name, so an author keeps the same color everywhere
func AvatarColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}
