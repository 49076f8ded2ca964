package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesEveryEmbeddedPage(t *testing.T) {
	t.Parallel()

	rd, err := New()
	require.NoError(t, err)

	for _, page := range []string{
		"index.html", "error.html",
		"team_list.html", "team_detail.html", "team_form.html", "team_delete.html",
		"user_list.html", "user_detail.html", "user_form.html", "user_delete.html",
		"ticket_list.html", "ticket_detail.html", "ticket_form.html", "ticket_delete.html",
	} {
		assert.Contains(t, rd.templates, page)
	}
	assert.NotContains(t, rd.templates, "layout.html")
}

func TestRender_WritesBufferedPage(t *testing.T) {
	t.Parallel()

	rd, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rd.Render(w, http.StatusOK, "index.html", struct {
		Title       string
		TeamCount   int64
		UserCount   int64
		TicketCount int64
	}{Title: "Dashboard", TeamCount: 2, UserCount: 5, TicketCount: 9})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Dashboard</title>")
	assert.Contains(t, body, "<strong>Teams:</strong> 2")
	assert.Contains(t, body, "<strong>Tickets:</strong> 9")
}

func TestRender_UnknownPageIsPlain500(t *testing.T) {
	t.Parallel()

	rd, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rd.Render(w, http.StatusOK, "nope.html", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
}

// A template failure mid-execute must not leak half a page to the client.
func TestRender_ExecuteFailureLeaksNothing(t *testing.T) {
	t.Parallel()

	rd, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	// index.html dereferences fields this value does not have.
	rd.Render(w, http.StatusOK, "index.html", struct{ Unrelated string }{})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
}

func TestError_RendersErrorPage(t *testing.T) {
	t.Parallel()

	rd, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rd.Error(w, http.StatusNotFound, "Team not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "404")
	assert.Contains(t, body, "Team not found")
}
