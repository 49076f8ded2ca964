package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidgdev/ticket-app/internal/ticket"
)

// --- Mock Ticket Repository ---

type mockTicketRepo struct {
	createFn        func(ctx context.Context, t *ticket.Ticket) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*ticket.WithTeam, error)
	getByTicketIDFn func(ctx context.Context, ticketID string) (*ticket.Ticket, error)
	listFn          func(ctx context.Context) ([]ticket.WithTeam, error)
	countFn         func(ctx context.Context) (int64, error)
	updateFn        func(ctx context.Context, id uuid.UUID, params ticket.UpdateParams) (*ticket.Ticket, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTicketRepo) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*ticket.WithTeam, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepo) GetByTicketID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	if m.getByTicketIDFn != nil {
		return m.getByTicketIDFn(ctx, ticketID)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepo) List(ctx context.Context) ([]ticket.WithTeam, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []ticket.WithTeam{}, nil
}

func (m *mockTicketRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockTicketRepo) Update(ctx context.Context, id uuid.UUID, params ticket.UpdateParams) (*ticket.Ticket, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, params)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ===== POST /ticket/create =====

func TestTicketCreateSubmit_Defaults(t *testing.T) {
	t.Parallel()

	teamID := uuid.New()
	var created *ticket.Ticket
	tickets := &mockTicketRepo{
		createFn: func(ctx context.Context, tk *ticket.Ticket) error {
			tk.ID = uuid.New()
			created = tk
			return nil
		},
	}
	view := &fakeRenderer{}
	h := NewTicketHandler(tickets, &mockTeamRepo{}, view)

	before := time.Now()
	req, w := postForm("/ticket/create", "", url.Values{
		"ticket_id":   {"INC1"},
		"description": {"x"},
		"level":       {"low"},
		"team":        {teamID.String()},
	})
	h.CreateSubmit(w, req)

	require.NotNil(t, created)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, created.URL(), w.Header().Get("Location"))

	assert.Equal(t, ticket.StatusAssigned, created.Status)
	assert.Equal(t, ticket.LevelLow, created.Level)
	assert.Equal(t, teamID, created.AssignedTeam)
	assert.WithinRange(t, created.Date, before, time.Now())
}

func TestTicketCreateSubmit_DuplicateRedirectsToExisting(t *testing.T) {
	t.Parallel()

	existingID := uuid.New()
	createCalled := false
	tickets := &mockTicketRepo{
		getByTicketIDFn: func(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
			return &ticket.Ticket{ID: existingID, TicketID: ticketID}, nil
		},
		createFn: func(ctx context.Context, tk *ticket.Ticket) error {
			createCalled = true
			return nil
		},
	}
	view := &fakeRenderer{}
	h := NewTicketHandler(tickets, &mockTeamRepo{}, view)

	req, w := postForm("/ticket/create", "", url.Values{
		"ticket_id":   {"INC1"},
		"description": {"x"},
		"team":        {uuid.New().String()},
	})
	h.CreateSubmit(w, req)

	assert.False(t, createCalled)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ticket/"+existingID.String(), w.Header().Get("Location"))
}

func TestTicketCreateSubmit_MissingTeamRerendersForm(t *testing.T) {
	t.Parallel()

	createCalled := false
	tickets := &mockTicketRepo{
		createFn: func(ctx context.Context, tk *ticket.Ticket) error {
			createCalled = true
			return nil
		},
	}
	view := &fakeRenderer{}
	h := NewTicketHandler(tickets, &mockTeamRepo{}, view)

	req, w := postForm("/ticket/create", "", url.Values{
		"ticket_id":   {"INC1"},
		"description": {"x"},
	})
	h.CreateSubmit(w, req)

	assert.False(t, createCalled)
	require.True(t, view.rendered)
	assert.Equal(t, "ticket_form.html", view.page)

	data := view.data.(ticketFormData)
	assert.Contains(t, data.Errors, "team")
	assert.Equal(t, "INC1", data.Values["ticket_id"])
}

// ===== POST /ticket/{id}/update =====

func TestTicketUpdateSubmit_AppendsWorklog(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	teamID := uuid.New()
	var gotParams ticket.UpdateParams
	tickets := &mockTicketRepo{
		updateFn: func(ctx context.Context, gotID uuid.UUID, params ticket.UpdateParams) (*ticket.Ticket, error) {
			assert.Equal(t, id, gotID)
			gotParams = params
			return &ticket.Ticket{ID: gotID}, nil
		},
	}
	view := &fakeRenderer{}
	h := NewTicketHandler(tickets, &mockTeamRepo{}, view)

	req, w := postForm("/ticket/"+id.String()+"/update", id.String(), url.Values{
		"status":  {"working"},
		"level":   {"high"},
		"team":    {teamID.String()},
		"worklog": {"triaged and reassigned"},
	})
	h.UpdateSubmit(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, ticket.StatusWorking, gotParams.Status)
	assert.Equal(t, ticket.LevelHigh, gotParams.Level)
	assert.Equal(t, teamID, gotParams.AssignedTeam)
	assert.Equal(t, "triaged and reassigned", gotParams.WorklogEntry)
}

func TestTicketUpdateSubmit_MissingWorklogRerendersUpdateForm(t *testing.T) {
	t.Parallel()

	updateCalled := false
	tickets := &mockTicketRepo{
		updateFn: func(ctx context.Context, id uuid.UUID, params ticket.UpdateParams) (*ticket.Ticket, error) {
			updateCalled = true
			return &ticket.Ticket{ID: id}, nil
		},
	}
	view := &fakeRenderer{}
	h := NewTicketHandler(tickets, &mockTeamRepo{}, view)

	id := uuid.New()
	req, w := postForm("/ticket/"+id.String()+"/update", id.String(), url.Values{
		"status": {"working"},
		"team":   {uuid.New().String()},
	})
	h.UpdateSubmit(w, req)

	assert.False(t, updateCalled)
	require.True(t, view.rendered)
	assert.Equal(t, "ticket_form.html", view.page)

	data := view.data.(ticketFormData)
	assert.True(t, data.IsUpdate)
	assert.Equal(t, "Worklog must be specified.", data.Errors["worklog"])
}

func TestTicketUpdateSubmit_InvalidStatusRejected(t *testing.T) {
	t.Parallel()

	view := &fakeRenderer{}
	h := NewTicketHandler(&mockTicketRepo{}, &mockTeamRepo{}, view)

	id := uuid.New()
	req, w := postForm("/ticket/"+id.String()+"/update", id.String(), url.Values{
		"status":  {"resolved"},
		"team":    {uuid.New().String()},
		"worklog": {"note"},
	})
	h.UpdateSubmit(w, req)

	require.True(t, view.rendered)
	data := view.data.(ticketFormData)
	assert.Contains(t, data.Errors, "status")
}

// ===== GET /ticket/{id} =====

func TestTicketDetail_NotFound(t *testing.T) {
	t.Parallel()

	view := &fakeRenderer{}
	h := NewTicketHandler(&mockTicketRepo{}, &mockTeamRepo{}, view)

	id := uuid.New()
	req, w := getRequest("/ticket/"+id.String(), id.String())
	h.Detail(w, req)

	require.True(t, view.errored)
	assert.Equal(t, http.StatusNotFound, view.errStatus)
}

// ===== GET /ticket/{id}/delete =====

func TestTicketDeleteForm_MissingRecordRedirectsToList(t *testing.T) {
	t.Parallel()

	view := &fakeRenderer{}
	h := NewTicketHandler(&mockTicketRepo{}, &mockTeamRepo{}, view)

	id := uuid.New()
	req, w := getRequest("/ticket/"+id.String()+"/delete", id.String())
	h.DeleteForm(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets", w.Header().Get("Location"))
}
