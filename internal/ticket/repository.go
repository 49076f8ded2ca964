package ticket

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTicketNotFound is returned when a ticket record is not found.
var ErrTicketNotFound = errors.New("ticket not found")

// UpdateParams holds the fields the update form is allowed to change.
// Status, Level and AssignedTeam are explicit overwrites; WorklogEntry, when
// non-empty, is appended to the worklog rather than replacing it.
type UpdateParams struct {
	Status       Status
	Level        Level
	AssignedTeam uuid.UUID
	WorklogEntry string
}

// Repository provides CRUD operations on the tickets table.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*WithTeam, error)
	GetByTicketID(ctx context.Context, ticketID string) (*Ticket, error)
	List(ctx context.Context) ([]WithTeam, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Ticket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
