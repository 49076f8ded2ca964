package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sidgdev/ticket-app/internal/team"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

const userColumns = `u.id, u.user_id, u.password_hash, u.first_name, u.last_name,
	u.email, u.mobile, u.type, u.team, u.created_at`

const teamColumns = `t.id, t.team_name, t.description, t.created_at`

// scanWithTeam scans a user row LEFT JOINed with teams. The team columns are
// all NULL when the reference is absent or dangling.
func scanWithTeam(row pgx.Row) (*WithTeam, error) {
	var u WithTeam
	var teamID *uuid.UUID
	var teamName, teamDescription *string
	var teamCreatedAt *time.Time

	err := row.Scan(
		&u.ID, &u.UserID, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Email, &u.Mobile, &u.Type, &u.TeamID, &u.CreatedAt,
		&teamID, &teamName, &teamDescription, &teamCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if teamID != nil {
		u.Team = &team.Team{
			ID:          *teamID,
			TeamName:    *teamName,
			Description: *teamDescription,
			CreatedAt:   *teamCreatedAt,
		}
	}

	return &u, nil
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (user_id, password_hash, first_name, last_name, email, mobile, type, team)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		u.UserID, u.PasswordHash, u.FirstName, u.LastName,
		u.Email, u.Mobile, u.Type, u.TeamID,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetByID retrieves a single user with its team reference resolved.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*WithTeam, error) {
	query := `
		SELECT ` + userColumns + `, ` + teamColumns + `
		FROM users u
		LEFT JOIN teams t ON t.id = u.team
		WHERE u.id = $1`

	u, err := scanWithTeam(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return u, nil
}

// GetByUserID retrieves a single user by its natural key, oldest first when
// the advisory duplicate check has been raced past.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.user_id = $1
		ORDER BY u.created_at ASC
		LIMIT 1`

	var u User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.UserID, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Email, &u.Mobile, &u.Type, &u.TeamID, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by user_id: %w", err)
	}

	return &u, nil
}

// List retrieves all users ordered by team reference, teams resolved.
func (r *PostgresRepository) List(ctx context.Context) ([]WithTeam, error) {
	query := `
		SELECT ` + userColumns + `, ` + teamColumns + `
		FROM users u
		LEFT JOIN teams t ON t.id = u.team
		ORDER BY u.team ASC NULLS LAST, u.user_id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []WithTeam{}
	for rows.Next() {
		u, err := scanWithTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

// ListByTeam retrieves the users referencing the given team.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.team = $1
		ORDER BY u.user_id ASC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing users by team: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		err := rows.Scan(
			&u.ID, &u.UserID, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Email, &u.Mobile, &u.Type, &u.TeamID, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

// Count returns the number of user records.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// Update overwrites the update form's field set on the user identified by
// id. Fields outside the set (names, credentials) are left untouched.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	query := `
		UPDATE users
		SET email = $2, mobile = $3, type = $4, team = $5
		WHERE id = $1
		RETURNING id, user_id, password_hash, first_name, last_name,
			email, mobile, type, team, created_at`

	var u User
	err := r.pool.QueryRow(ctx, query, id, params.Email, params.Mobile, params.Type, params.TeamID).Scan(
		&u.ID, &u.UserID, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Email, &u.Mobile, &u.Type, &u.TeamID, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return &u, nil
}

// Delete removes a user by its UUID. Deleting an id that no longer exists is
// not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
