package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// UpdateParams holds the full set of mutable team fields. Update is an
// explicit overwrite: both fields are written, never merged.
type UpdateParams struct {
	TeamName    string
	Description string
}

// Repository provides CRUD operations on the teams table.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	GetByName(ctx context.Context, teamName string) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
