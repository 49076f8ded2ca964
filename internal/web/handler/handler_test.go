package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// fakeRenderer records what the handler asked to render so tests can assert
// on pages and view models without the template engine.
type fakeRenderer struct {
	rendered   bool
	status     int
	page       string
	data       any
	errored    bool
	errStatus  int
	errMessage string
}

func (f *fakeRenderer) Render(w http.ResponseWriter, status int, page string, data any) {
	f.rendered = true
	f.status = status
	f.page = page
	f.data = data
	w.WriteHeader(status)
}

func (f *fakeRenderer) Error(w http.ResponseWriter, status int, message string) {
	f.errored = true
	f.errStatus = status
	f.errMessage = message
	w.WriteHeader(status)
}

// getRequest builds a GET request carrying the given {id} route parameter.
func getRequest(target, id string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if id != "" {
		req = withRouteID(req, id)
	}
	return req, httptest.NewRecorder()
}

// postForm builds a POST request with an URL-encoded form body.
func postForm(target, id string, values url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if id != "" {
		req = withRouteID(req, id)
	}
	return req, httptest.NewRecorder()
}

func withRouteID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
