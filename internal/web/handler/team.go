package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/sidgdev/ticket-app/internal/form"
	"github.com/sidgdev/ticket-app/internal/team"
	"github.com/sidgdev/ticket-app/internal/user"
)

// TeamHandler serves the team pages and forms.
type TeamHandler struct {
	teams team.Repository
	users user.Repository
	view  Renderer
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teams team.Repository, users user.Repository, view Renderer) *TeamHandler {
	return &TeamHandler{teams: teams, users: users, view: view}
}

type teamListData struct {
	Title string
	Teams []team.Team
}

type teamDetailData struct {
	Title string
	Team  *team.Team
	Users []user.User
}

type teamFormData struct {
	Title  string
	Action string
	Values map[string]string
	Errors form.Errors
}

type teamDeleteData struct {
	Title string
	Team  *team.Team
}

// List handles GET /teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	h.view.Render(w, http.StatusOK, "team_list.html", teamListData{Title: "Team List", Teams: teams})
}

// Detail handles GET /team/{id}. The team record and its member list are
// independent fetches and run concurrently.
func (h *TeamHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "Team not found")
		return
	}

	var (
		t       *team.Team
		members []user.User
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		t, err = h.teams.GetByID(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		members, err = h.users.ListByTeam(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			h.view.Error(w, http.StatusNotFound, "Team not found")
			return
		}
		slog.Error("failed to load team", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load team")
		return
	}

	h.view.Render(w, http.StatusOK, "team_detail.html", teamDetailData{
		Title: "Team Detail",
		Team:  t,
		Users: members,
	})
}

// CreateForm handles GET /team/create.
func (h *TeamHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "team_form.html", teamFormData{
		Title:  "Create Team",
		Action: "/team/create",
		Values: map[string]string{},
	})
}

// CreateSubmit handles POST /team/create.
func (h *TeamHandler) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.view.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	cleaned, errs := form.Validate(r.PostForm, form.TeamCreateRules())
	if len(errs) > 0 {
		h.view.Render(w, http.StatusOK, "team_form.html", teamFormData{
			Title:  "Create Team",
			Action: "/team/create",
			Values: cleaned,
			Errors: errs,
		})
		return
	}

	// Advisory duplicate check only: two concurrent creates with the same
	// name can both miss it and both insert.
	existing, err := h.teams.GetByName(r.Context(), cleaned["team_name"])
	if err == nil {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}
	if !errors.Is(err, team.ErrTeamNotFound) {
		slog.Error("failed to check team name", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	t, err := team.New(cleaned["team_name"], cleaned["description"])
	if err != nil {
		slog.Error("failed to build team", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	if err := h.teams.Create(r.Context(), t); err != nil {
		slog.Error("failed to create team", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	http.Redirect(w, r, t.URL(), http.StatusSeeOther)
}

// UpdateForm handles GET /team/{id}/update.
func (h *TeamHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "Team not found")
		return
	}

	t, err := h.teams.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			h.view.Error(w, http.StatusNotFound, "Team not found")
			return
		}
		slog.Error("failed to load team", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load team")
		return
	}

	h.view.Render(w, http.StatusOK, "team_form.html", teamFormData{
		Title:  "Update Team",
		Action: t.URL() + "/update",
		Values: map[string]string{
			"team_name":   t.TeamName,
			"description": t.Description,
		},
	})
}

// UpdateSubmit handles POST /team/{id}/update.
func (h *TeamHandler) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "Team not found")
		return
	}

	if err := parseForm(w, r); err != nil {
		h.view.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	cleaned, errs := form.Validate(r.PostForm, form.TeamUpdateRules())
	if len(errs) > 0 {
		h.view.Render(w, http.StatusOK, "team_form.html", teamFormData{
			Title:  "Update Team",
			Action: "/team/" + id.String() + "/update",
			Values: cleaned,
			Errors: errs,
		})
		return
	}

	t, err := h.teams.Update(r.Context(), id, team.UpdateParams{
		TeamName:    cleaned["team_name"],
		Description: cleaned["description"],
	})
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			h.view.Error(w, http.StatusNotFound, "Team not found")
			return
		}
		slog.Error("failed to update team", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to update team")
		return
	}

	http.Redirect(w, r, t.URL(), http.StatusSeeOther)
}

// DeleteForm handles GET /team/{id}/delete. A missing record silently
// redirects to the list rather than erroring.
func (h *TeamHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/teams", http.StatusFound)
		return
	}

	t, err := h.teams.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			http.Redirect(w, r, "/teams", http.StatusFound)
			return
		}
		slog.Error("failed to load team", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load team")
		return
	}

	h.view.Render(w, http.StatusOK, "team_delete.html", teamDeleteData{Title: "Delete Team", Team: t})
}

// DeleteSubmit handles POST /team/{id}/delete. Deletion is idempotent:
// removing an id that no longer resolves still redirects to the list.
func (h *TeamHandler) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/teams", http.StatusSeeOther)
		return
	}

	if err := h.teams.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete team", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to delete team")
		return
	}

	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}
