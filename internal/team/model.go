package team

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table.
type Team struct {
	ID          uuid.UUID
	TeamName    string
	Description string
	CreatedAt   time.Time
}

// New builds a Team from already-cleaned form values. It enforces the
// structural requirements only; field-level validation happens in the
// form layer before this is called.
func New(teamName, description string) (*Team, error) {
	if teamName == "" {
		return nil, errors.New("team: team_name is required")
	}
	if description == "" {
		return nil, errors.New("team: description is required")
	}
	return &Team{TeamName: teamName, Description: description}, nil
}

// URL returns the canonical detail path for the team.
func (t Team) URL() string {
	return "/team/" + t.ID.String()
}
