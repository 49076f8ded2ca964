package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/sidgdev/ticket-app/internal/form"
	"github.com/sidgdev/ticket-app/internal/team"
	"github.com/sidgdev/ticket-app/internal/user"
)

// UserHandler serves the user pages and forms.
type UserHandler struct {
	users      user.Repository
	teams      team.Repository
	view       Renderer
	bcryptCost int
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users user.Repository, teams team.Repository, view Renderer, bcryptCost int) *UserHandler {
	return &UserHandler{users: users, teams: teams, view: view, bcryptCost: bcryptCost}
}

type userListData struct {
	Title string
	Users []user.WithTeam
}

type userDetailData struct {
	Title string
	User  *user.WithTeam
}

type userFormData struct {
	Title    string
	Action   string
	IsUpdate bool
	Values   map[string]string
	Errors   form.Errors
	Teams    []team.Team
}

type userDeleteData struct {
	Title string
	User  *user.WithTeam
}

// parseTeamRef resolves an optional team form value into a reference. The
// empty string means "no team".
func parseTeamRef(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	h.view.Render(w, http.StatusOK, "user_list.html", userListData{Title: "User List", Users: users})
}

// Detail handles GET /user/{id}.
func (h *UserHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "User not found")
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			h.view.Error(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to load user", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	h.view.Render(w, http.StatusOK, "user_detail.html", userDetailData{Title: "User Detail", User: u})
}

// CreateForm handles GET /user/create. The team list populates the selector.
func (h *UserHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load form")
		return
	}

	h.view.Render(w, http.StatusOK, "user_form.html", userFormData{
		Title:  "Create User",
		Action: "/user/create",
		Values: map[string]string{},
		Teams:  teams,
	})
}

// CreateSubmit handles POST /user/create.
func (h *UserHandler) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.view.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	cleaned, errs := form.Validate(r.PostForm, form.UserCreateRules())

	if _, err := user.ParseType(cleaned["type"]); err != nil {
		errs["type"] = "Invalid user type."
	}
	teamID, err := parseTeamRef(cleaned["team"])
	if err != nil {
		errs["team"] = "Invalid team selected."
	}

	if len(errs) > 0 {
		h.renderCreateForm(w, r, cleaned, errs)
		return
	}

	// Advisory duplicate check only: concurrent creates with the same
	// user_id can both miss it and both insert.
	existing, err := h.users.GetByUserID(r.Context(), cleaned["user_id"])
	if err == nil {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		slog.Error("failed to check user_id", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cleaned["password"]), h.bcryptCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	u, err := user.New(user.NewParams{
		UserID:       cleaned["user_id"],
		PasswordHash: string(hash),
		FirstName:    cleaned["first_name"],
		LastName:     cleaned["last_name"],
		Email:        cleaned["email"],
		Mobile:       cleaned["mobile"],
		Type:         cleaned["type"],
		TeamID:       teamID,
	})
	if err != nil {
		slog.Error("failed to build user", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		slog.Error("failed to create user", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	http.Redirect(w, r, u.URL(), http.StatusSeeOther)
}

func (h *UserHandler) renderCreateForm(w http.ResponseWriter, r *http.Request, values map[string]string, errs form.Errors) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load form")
		return
	}

	h.view.Render(w, http.StatusOK, "user_form.html", userFormData{
		Title:  "Create User",
		Action: "/user/create",
		Values: values,
		Errors: errs,
		Teams:  teams,
	})
}

// UpdateForm handles GET /user/{id}/update. The user record and the team
// list are independent fetches and run concurrently.
func (h *UserHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "User not found")
		return
	}

	var (
		u     *user.WithTeam
		teams []team.Team
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		u, err = h.users.GetByID(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		teams, err = h.teams.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			h.view.Error(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to load user", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	values := map[string]string{
		"email":  u.Email,
		"mobile": u.Mobile,
		"type":   string(u.Type),
	}
	if u.TeamID != nil {
		values["team"] = u.TeamID.String()
	}

	h.view.Render(w, http.StatusOK, "user_form.html", userFormData{
		Title:    "Update User",
		Action:   u.URL() + "/update",
		IsUpdate: true,
		Values:   values,
		Teams:    teams,
	})
}

// UpdateSubmit handles POST /user/{id}/update. Only the update form's field
// set is overwritten; names and credentials stay as they are.
func (h *UserHandler) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.view.Error(w, http.StatusNotFound, "User not found")
		return
	}

	if err := parseForm(w, r); err != nil {
		h.view.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	cleaned, errs := form.Validate(r.PostForm, form.UserUpdateRules())

	typ, err := user.ParseType(cleaned["type"])
	if err != nil {
		errs["type"] = "Invalid user type."
	}
	teamID, err := parseTeamRef(cleaned["team"])
	if err != nil {
		errs["team"] = "Invalid team selected."
	}

	if len(errs) > 0 {
		teams, err := h.teams.List(r.Context())
		if err != nil {
			slog.Error("failed to list teams", "error", err)
			h.view.Error(w, http.StatusInternalServerError, "Failed to load form")
			return
		}
		h.view.Render(w, http.StatusOK, "user_form.html", userFormData{
			Title:    "Update User",
			Action:   "/user/" + id.String() + "/update",
			IsUpdate: true,
			Values:   cleaned,
			Errors:   errs,
			Teams:    teams,
		})
		return
	}

	u, err := h.users.Update(r.Context(), id, user.UpdateParams{
		Email:  cleaned["email"],
		Mobile: cleaned["mobile"],
		Type:   typ,
		TeamID: teamID,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			h.view.Error(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to update user", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	http.Redirect(w, r, u.URL(), http.StatusSeeOther)
}

// DeleteForm handles GET /user/{id}/delete. A missing record silently
// redirects to the list rather than erroring.
func (h *UserHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			http.Redirect(w, r, "/users", http.StatusFound)
			return
		}
		slog.Error("failed to load user", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	h.view.Render(w, http.StatusOK, "user_delete.html", userDeleteData{Title: "Delete User", User: u})
}

// DeleteSubmit handles POST /user/{id}/delete. Deletion is idempotent.
func (h *UserHandler) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete user", "error", err, "id", id)
		h.view.Error(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
