package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sidgdev/ticket-app/internal/team"
)

// Type classifies a user account.
type Type string

const (
	TypeUser  Type = "user"
	TypeAdmin Type = "admin"
)

// ParseType maps a form value onto a Type. The empty string selects the
// default; anything else outside the enum is a structural error.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "":
		return TypeUser, nil
	case TypeUser, TypeAdmin:
		return Type(s), nil
	default:
		return "", fmt.Errorf("user: invalid type %q", s)
	}
}

// User represents a row in the users table. PasswordHash holds a bcrypt
// hash; the plain-text password is never stored.
type User struct {
	ID           uuid.UUID
	UserID       string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Mobile       string
	Type         Type
	TeamID       *uuid.UUID
	CreatedAt    time.Time
}

// WithTeam is a user row joined with its team. Team is nil when the user has
// no team or the referenced team was deleted.
type WithTeam struct {
	User
	Team *team.Team
}

// NewParams holds the cleaned form values needed to build a User.
type NewParams struct {
	UserID       string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Mobile       string
	Type         string
	TeamID       *uuid.UUID
}

// New builds a User from already-cleaned form values, applying the type
// default. Field-level validation happens in the form layer; this only
// enforces structure.
func New(params NewParams) (*User, error) {
	if params.UserID == "" {
		return nil, errors.New("user: user_id is required")
	}
	if params.PasswordHash == "" {
		return nil, errors.New("user: password hash is required")
	}

	typ, err := ParseType(params.Type)
	if err != nil {
		return nil, err
	}

	return &User{
		UserID:       params.UserID,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		Mobile:       params.Mobile,
		Type:         typ,
		TeamID:       params.TeamID,
	}, nil
}

// FullName returns "last, first" when both parts are present, else "".
func (u User) FullName() string {
	if u.FirstName == "" || u.LastName == "" {
		return ""
	}
	return u.LastName + ", " + u.FirstName
}

// URL returns the canonical detail path for the user.
func (u User) URL() string {
	return "/user/" + u.ID.String()
}
