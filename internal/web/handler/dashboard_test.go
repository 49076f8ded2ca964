package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardIndex_Counts(t *testing.T) {
	t.Parallel()

	teams := &mockTeamRepo{countFn: func(ctx context.Context) (int64, error) { return 2, nil }}
	users := &mockUserRepo{countFn: func(ctx context.Context) (int64, error) { return 5, nil }}
	tickets := &mockTicketRepo{countFn: func(ctx context.Context) (int64, error) { return 9, nil }}
	view := &fakeRenderer{}
	h := NewDashboardHandler(teams, users, tickets, view)

	req, w := getRequest("/dashboard", "")
	h.Index(w, req)

	require.True(t, view.rendered)
	assert.Equal(t, "index.html", view.page)

	data := view.data.(dashboardData)
	assert.Equal(t, int64(2), data.TeamCount)
	assert.Equal(t, int64(5), data.UserCount)
	assert.Equal(t, int64(9), data.TicketCount)
}

func TestDashboardHome_RedirectsToDashboard(t *testing.T) {
	t.Parallel()

	view := &fakeRenderer{}
	h := NewDashboardHandler(&mockTeamRepo{}, &mockUserRepo{}, &mockTicketRepo{}, view)

	req, w := getRequest("/", "")
	h.Home(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
