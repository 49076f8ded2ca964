// Package handler contains one handler type per entity. Handlers orchestrate
// the form layer and the repositories, then hand a view model to the render
// collaborator or issue a redirect; they never produce markup themselves.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Renderer is the rendering collaborator handlers pass their view models to.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any)
	Error(w http.ResponseWriter, status int, message string)
}

const maxFormBytes = 1 << 20

// parseForm caps and parses a submitted form body.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.ParseForm()
}

// pathID extracts and parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
