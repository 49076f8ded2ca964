package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new team record.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (team_name, description)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, t.TeamName, t.Description).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByID retrieves a single team by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	query := `
		SELECT id, team_name, description, created_at
		FROM teams
		WHERE id = $1`

	var t Team
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.TeamName, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// GetByName retrieves a single team by its natural key. When several teams
// share the name (the duplicate check is advisory, not enforced), the oldest
// one wins.
func (r *PostgresRepository) GetByName(ctx context.Context, teamName string) (*Team, error) {
	query := `
		SELECT id, team_name, description, created_at
		FROM teams
		WHERE team_name = $1
		ORDER BY created_at ASC
		LIMIT 1`

	var t Team
	err := r.pool.QueryRow(ctx, query, teamName).Scan(&t.ID, &t.TeamName, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team by name: %w", err)
	}

	return &t, nil
}

// List retrieves all teams ordered by team name.
func (r *PostgresRepository) List(ctx context.Context) ([]Team, error) {
	query := `
		SELECT id, team_name, description, created_at
		FROM teams
		ORDER BY team_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		err := rows.Scan(&t.ID, &t.TeamName, &t.Description, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}

// Count returns the number of team records.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting teams: %w", err)
	}
	return n, nil
}

// Update overwrites the mutable fields of the team identified by id.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Team, error) {
	query := `
		UPDATE teams
		SET team_name = $2, description = $3
		WHERE id = $1
		RETURNING id, team_name, description, created_at`

	var t Team
	err := r.pool.QueryRow(ctx, query, id, params.TeamName, params.Description).
		Scan(&t.ID, &t.TeamName, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("updating team: %w", err)
	}

	return &t, nil
}

// Delete removes a team by its UUID. Deleting an id that no longer exists is
// not an error. Referencing users and tickets are left in place; their team
// reference dangles and readers tolerate it.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}
