// Package view turns handler view models into rendered HTML pages. Pages are
// parsed once at startup from the embedded template set; every page shares
// the layout template.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// Renderer holds the parsed template set, one entry per page.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every embedded page template against the shared layout.
func New() (*Renderer, error) {
	pages, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		tmpl, err := template.ParseFS(files, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		templates[path.Base(page)] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// errorData is the view model for the generic error page.
type errorData struct {
	Title   string
	Status  int
	Message string
}

// Render executes the named page into a buffer and writes it with the given
// status. Buffering means a template failure never leaks a partial page; it
// degrades to a plain 500 instead.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := rd.templates[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render template", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "page", page, "error", err)
	}
}

// Error renders the generic error page.
func (rd *Renderer) Error(w http.ResponseWriter, status int, message string) {
	rd.Render(w, status, "error.html", errorData{
		Title:   "Error",
		Status:  status,
		Message: message,
	})
}
