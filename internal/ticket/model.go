package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sidgdev/ticket-app/internal/team"
)

// Status tracks where a ticket sits in its workflow.
type Status string

const (
	StatusAssigned Status = "assigned"
	StatusWorking  Status = "working"
	StatusPending  Status = "pending"
	StatusClosed   Status = "closed"
)

// ParseStatus maps a form value onto a Status. The empty string selects the
// default.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "":
		return StatusAssigned, nil
	case StatusAssigned, StatusWorking, StatusPending, StatusClosed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("ticket: invalid status %q", s)
	}
}

// Level grades a ticket's urgency.
type Level string

const (
	LevelVeryHigh Level = "very high"
	LevelHigh     Level = "high"
	LevelModerate Level = "moderate"
	LevelLow      Level = "low"
)

// ParseLevel maps a form value onto a Level. The empty string selects the
// default.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case "":
		return LevelLow, nil
	case LevelVeryHigh, LevelHigh, LevelModerate, LevelLow:
		return Level(s), nil
	default:
		return "", fmt.Errorf("ticket: invalid level %q", s)
	}
}

// Ticket represents a row in the tickets table. Worklog is an ordered,
// append-only sequence of entries.
type Ticket struct {
	ID           uuid.UUID
	TicketID     string
	Description  string
	Date         time.Time
	AssignedTeam uuid.UUID
	Status       Status
	Level        Level
	Worklog      []string
}

// WithTeam is a ticket row joined with its assigned team. Team is nil when
// the referenced team was deleted after assignment.
type WithTeam struct {
	Ticket
	Team *team.Team
}

// NewParams holds the cleaned form values needed to build a Ticket.
type NewParams struct {
	TicketID     string
	Description  string
	Level        string
	AssignedTeam uuid.UUID
}

// New builds a Ticket from already-cleaned form values, applying the status
// and level defaults and stamping the creation time.
func New(params NewParams) (*Ticket, error) {
	if params.TicketID == "" {
		return nil, errors.New("ticket: ticket_id is required")
	}
	if params.Description == "" {
		return nil, errors.New("ticket: description is required")
	}
	if params.AssignedTeam == uuid.Nil {
		return nil, errors.New("ticket: assigned_team is required")
	}

	level, err := ParseLevel(params.Level)
	if err != nil {
		return nil, err
	}

	return &Ticket{
		TicketID:     params.TicketID,
		Description:  params.Description,
		Date:         time.Now(),
		AssignedTeam: params.AssignedTeam,
		Status:       StatusAssigned,
		Level:        level,
		Worklog:      []string{},
	}, nil
}

// URL returns the canonical detail path for the ticket.
func (t Ticket) URL() string {
	return "/ticket/" + t.ID.String()
}

// FormattedDate renders the creation date as a medium-length date string.
func (t Ticket) FormattedDate() string {
	return t.Date.Format("Jan 2, 2006")
}
