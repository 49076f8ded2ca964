package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sidgdev/ticket-app/internal/form"
	"github.com/sidgdev/ticket-app/internal/team"
	"github.com/sidgdev/ticket-app/internal/ticket"
)

// TicketHandler serves the ticket pages and forms.
type TicketHandler struct {
	tickets ticket.Repository
	teams   team.Repository
	view    Renderer
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(tickets ticket.Repository, teams team.Repository, view Renderer) *TicketHandler {
	return &TicketHandler{tickets: tickets, teams: teams, view: view}
}

type ticketListData struct {
	Title   string
	Tickets []ticket.WithTeam
}

type ticketDetailData struct {
	Title  string
	Ticket *ticket.WithTeam
}

type ticketFormData struct {
	Title    string
	Action   string
	IsUpdate bool
	Values   map[string]string
	Errors   form.Errors
	Teams    []team.Team
}

type ticketDeleteData struct {
	Title  string
	Ticket *ticket.WithTeam
}

// List handles GET /tickets.
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.tickets.List(r.Context())
	if err != nil {
		slog.Error("failed to list tickets", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to list tickets")
		return
	}

	h.view.Render(w, http.StatusOK, "ticket_list.html", ticketListData{Title: "Ticket List", Tickets: tickets})
}

// Detail handles GET /ticket/{id}.
func (h *TicketHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "Ticket not found")
		return
	}

	t, err := h.tickets.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			h.view.Error(w, http.StatusNotFound, "Ticket not found")
			return
		}
		slog.Error("failed to load ticket", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load ticket")
		return
	}

	h.view.Render(w, http.StatusOK, "ticket_detail.html", ticketDetailData{Title: "Ticket Detail", Ticket: t})
}

// CreateForm handles GET /ticket/create. The team list populates the
// assignment selector.
func (h *TicketHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load form")
		return
	}

	h.view.Render(w, http.StatusOK, "ticket_form.html", ticketFormData{
		Title:  "Create Ticket",
		Action: "/ticket/create",
		Values: map[string]string{},
		Teams:  teams,
	})
}

// CreateSubmit handles POST /ticket/create. New tickets always start in the
// assigned status with the submission time as their date.
func (h *TicketHandler) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.view.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	cleaned, errs := form.Validate(r.PostForm, form.TicketCreateRules())

	if _, err := ticket.ParseLevel(cleaned["level"]); err != nil {
		errs["level"] = "Invalid level."
	}
	teamID, err := uuid.Parse(cleaned["team"])
	if err != nil {
		errs["team"] = "A team must be assigned."
	}

	if len(errs) > 0 {
		h.renderForm(w, r, ticketFormData{
			Title:  "Create Ticket",
			Action: "/ticket/create",
			Values: cleaned,
			Errors: errs,
		})
		return
	}

	// Advisory duplicate check only: concurrent creates with the same
	// ticket_id can both miss it and both insert.
	existing, err := h.tickets.GetByTicketID(r.Context(), cleaned["ticket_id"])
	if err == nil {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}
	if !errors.Is(err, ticket.ErrTicketNotFound) {
		slog.Error("failed to check ticket_id", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	t, err := ticket.New(ticket.NewParams{
		TicketID:     cleaned["ticket_id"],
		Description:  cleaned["description"],
		Level:        cleaned["level"],
		AssignedTeam: teamID,
	})
	if err != nil {
		slog.Error("failed to build ticket", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	if err := h.tickets.Create(r.Context(), t); err != nil {
		slog.Error("failed to create ticket", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	http.Redirect(w, r, t.URL(), http.StatusSeeOther)
}

// renderForm re-renders a ticket form after fetching the team list for the
// selector.
func (h *TicketHandler) renderForm(w http.ResponseWriter, r *http.Request, data ticketFormData) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load form")
		return
	}
	data.Teams = teams

	h.view.Render(w, http.StatusOK, "ticket_form.html", data)
}

// UpdateForm handles GET /ticket/{id}/update. The ticket record and the
// team list are independent fetches and run concurrently.
func (h *TicketHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "Ticket not found")
		return
	}

	var (
		t     *ticket.WithTeam
		teams []team.Team
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		t, err = h.tickets.GetByID(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		teams, err = h.teams.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			h.view.Error(w, http.StatusNotFound, "Ticket not found")
			return
		}
		slog.Error("failed to load ticket", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load ticket")
		return
	}

	h.view.Render(w, http.StatusOK, "ticket_form.html", ticketFormData{
		Title:    "Update Ticket",
		Action:   t.URL() + "/update",
		IsUpdate: true,
		Values: map[string]string{
			"status": string(t.Status),
			"level":  string(t.Level),
			"team":   t.AssignedTeam.String(),
		},
		Teams: teams,
	})
}

// UpdateSubmit handles POST /ticket/{id}/update. Status, level and team are
// overwritten; the worklog entry is appended, never replacing earlier ones.
func (h *TicketHandler) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "Ticket not found")
		return
	}

	if err := parseForm(w, r); err != nil {
		h.view.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	cleaned, errs := form.Validate(r.PostForm, form.TicketUpdateRules())

	status, err := ticket.ParseStatus(cleaned["status"])
	if err != nil {
		errs["status"] = "Invalid status."
	}
	level, err := ticket.ParseLevel(cleaned["level"])
	if err != nil {
		errs["level"] = "Invalid level."
	}
	teamID, err := uuid.Parse(cleaned["team"])
	if err != nil {
		errs["team"] = "A team must be assigned."
	}

	if len(errs) > 0 {
		h.renderForm(w, r, ticketFormData{
			Title:    "Update Ticket",
			Action:   "/ticket/" + id.String() + "/update",
			IsUpdate: true,
			Values:   cleaned,
			Errors:   errs,
		})
		return
	}

	t, err := h.tickets.Update(r.Context(), id, ticket.UpdateParams{
		Status:       status,
		Level:        level,
		AssignedTeam: teamID,
		WorklogEntry: cleaned["worklog"],
	})
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			h.view.Error(w, http.StatusNotFound, "Ticket not found")
			return
		}
		slog.Error("failed to update ticket", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to update ticket")
		return
	}

	http.Redirect(w, r, t.URL(), http.StatusSeeOther)
}

// DeleteForm handles GET /ticket/{id}/delete. A missing record silently
// redirects to the list rather than erroring.
func (h *TicketHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/tickets", http.StatusFound)
		return
	}

	t, err := h.tickets.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			http.Redirect(w, r, "/tickets", http.StatusFound)
			return
		}
		slog.Error("failed to load ticket", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load ticket")
		return
	}

	h.view.Render(w, http.StatusOK, "ticket_delete.html", ticketDeleteData{Title: "Delete Ticket", Ticket: t})
}

// DeleteSubmit handles POST /ticket/{id}/delete. Deletion is idempotent.
func (h *TicketHandler) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/tickets", http.StatusSeeOther)
		return
	}

	if err := h.tickets.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete ticket", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to delete ticket")
		return
	}

	http.Redirect(w, r, "/tickets", http.StatusSeeOther)
}
