package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/sidgdev/ticket-app/internal/team"
	"github.com/sidgdev/ticket-app/internal/ticket"
	"github.com/sidgdev/ticket-app/internal/user"
)

// DashboardHandler serves the index page with per-entity record counts.
type DashboardHandler struct {
	teams   team.Repository
	users   user.Repository
	tickets ticket.Repository
	view    Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(teams team.Repository, users user.Repository, tickets ticket.Repository, view Renderer) *DashboardHandler {
	return &DashboardHandler{teams: teams, users: users, tickets: tickets, view: view}
}

type dashboardData struct {
	Title       string
	TeamCount   int64
	UserCount   int64
	TicketCount int64
}

// Home handles GET /.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Index handles GET /dashboard. The three counts are independent, so they
// are fetched concurrently.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{Title: "Ticket Tracker"}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		data.TeamCount, err = h.teams.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.UserCount, err = h.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.TicketCount, err = h.tickets.Count(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to count records", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load the dashboard")
		return
	}

	h.view.Render(w, http.StatusOK, "index.html", data)
}
