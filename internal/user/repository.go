package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// UpdateParams holds the fields the update form is allowed to change.
// Update is an explicit overwrite of exactly this set: name fields and
// credentials are untouched, a nil TeamID clears the reference.
type UpdateParams struct {
	Email  string
	Mobile string
	Type   Type
	TeamID *uuid.UUID
}

// Repository provides CRUD operations on the users table.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*WithTeam, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context) ([]WithTeam, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
