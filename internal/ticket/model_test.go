package ticket_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidgdev/ticket-app/internal/ticket"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	s, err := ticket.ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusAssigned, s)

	s, err = ticket.ParseStatus("closed")
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusClosed, s)

	_, err = ticket.ParseStatus("resolved")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := ticket.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, ticket.LevelLow, l)

	l, err = ticket.ParseLevel("very high")
	require.NoError(t, err)
	assert.Equal(t, ticket.LevelVeryHigh, l)

	_, err = ticket.ParseLevel("critical")
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	teamID := uuid.New()
	before := time.Now()

	tk, err := ticket.New(ticket.NewParams{
		TicketID:     "INC1",
		Description:  "printer on fire",
		AssignedTeam: teamID,
	})
	require.NoError(t, err)

	assert.Equal(t, ticket.StatusAssigned, tk.Status)
	assert.Equal(t, ticket.LevelLow, tk.Level)
	assert.Equal(t, teamID, tk.AssignedTeam)
	assert.Empty(t, tk.Worklog)
	assert.WithinRange(t, tk.Date, before, time.Now())
}

func TestNew_RequiresTeam(t *testing.T) {
	t.Parallel()

	_, err := ticket.New(ticket.NewParams{
		TicketID:    "INC1",
		Description: "x",
	})
	assert.Error(t, err)
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := ticket.New(ticket.NewParams{
		TicketID:     "INC1",
		Description:  "x",
		Level:        "urgent",
		AssignedTeam: uuid.New(),
	})
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tk := ticket.Ticket{ID: id}
	assert.Equal(t, "/ticket/"+id.String(), tk.URL())
}

func TestFormattedDate(t *testing.T) {
	t.Parallel()

	tk := ticket.Ticket{Date: time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Mar 7, 2026", tk.FormattedDate())
}
