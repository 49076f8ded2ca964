package ticket

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

const ticketColumns = `k.id, k.ticket_id, k.description, k.date, k.assigned_team,
	k.status, k.level, k.worklog`

const teamColumns = `t.id, t.team_name, t.description, t.created_at`

// scanWithTeam scans a ticket row LEFT JOINed with teams. The team columns
// are all NULL when the assignment dangles.
func scanWithTeam(row pgx.Row) (*WithTeam, error) {
	var tk WithTeam
	var teamID *uuid.UUID
	var teamName, teamDescription *string
	var teamCreatedAt *time.Time

	err := row.Scan(
		&tk.ID, &tk.TicketID, &tk.Description, &tk.Date, &tk.AssignedTeam,
		&tk.Status, &tk.Level, &tk.Worklog,
		&teamID, &teamName, &teamDescription, &teamCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if teamID != nil {
		tk.Team = &team.Team{
			ID:          *teamID,
			TeamName:    *teamName,
			Description: *teamDescription,
			CreatedAt:   *teamCreatedAt,
		}
	}

	return &tk, nil
}

// Create inserts a new ticket record.
func (r *PostgresRepository) Create(ctx context.Context, t *Ticket) error {
	query := `
		INSERT INTO tickets (ticket_id, description, date, assigned_team, status, level, worklog)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		t.TicketID, t.Description, t.Date, t.AssignedTeam, t.Status, t.Level, t.Worklog,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}

	return nil
}

// GetByID retrieves a single ticket with its assigned team resolved.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*WithTeam, error) {
	query := `
		SELECT ` + ticketColumns + `, ` + teamColumns + `
		FROM tickets k
		LEFT JOIN teams t ON t.id = k.assigned_team
		WHERE k.id = $1`

	t, err := scanWithTeam(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("querying ticket: %w", err)
	}

	return t, nil
}

// GetByTicketID retrieves a single ticket by its natural key, oldest first
// when the advisory duplicate check has been raced past.
func (r *PostgresRepository) GetByTicketID(ctx context.Context, ticketID string) (*Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets k
		WHERE k.ticket_id = $1
		ORDER BY k.date ASC
		LIMIT 1`

	var t Ticket
	err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&t.ID, &t.TicketID, &t.Description, &t.Date, &t.AssignedTeam,
		&t.Status, &t.Level, &t.Worklog,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("querying ticket by ticket_id: %w", err)
	}

	return &t, nil
}

// List retrieves all tickets ordered by ticket id, assigned teams resolved.
func (r *PostgresRepository) List(ctx context.Context) ([]WithTeam, error) {
	query := `
		SELECT ` + ticketColumns + `, ` + teamColumns + `
		FROM tickets k
		LEFT JOIN teams t ON t.id = k.assigned_team
		ORDER BY k.ticket_id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	tickets := []WithTeam{}
	for rows.Next() {
		t, err := scanWithTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket row: %w", err)
		}
		tickets = append(tickets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ticket rows: %w", err)
	}

	return tickets, nil
}

// Count returns the number of ticket records.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tickets: %w", err)
	}
	return n, nil
}

// Update overwrites status, level and assigned team on the ticket identified
// by id and appends the worklog entry when one was submitted.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Ticket, error) {
	query := `
		UPDATE tickets
		SET status = $2, level = $3, assigned_team = $4,
			worklog = CASE WHEN $5 = '' THEN worklog ELSE array_append(worklog, $5) END
		WHERE id = $1
		RETURNING id, ticket_id, description, date, assigned_team, status, level, worklog`

	var t Ticket
	err := r.pool.QueryRow(ctx, query, id, params.Status, params.Level, params.AssignedTeam, params.WorklogEntry).Scan(
		&t.ID, &t.TicketID, &t.Description, &t.Date, &t.AssignedTeam,
		&t.Status, &t.Level, &t.Worklog,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("updating ticket: %w", err)
	}

	return &t, nil
}

// Delete removes a ticket by its UUID. Deleting an id that no longer exists
// is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting ticket: %w", err)
	}
	return nil
}
