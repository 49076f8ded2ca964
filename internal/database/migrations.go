package database

import (
	"context"
	"fmt"
)

// Natural keys (team_name, user_id, ticket_id) deliberately carry no unique
// index: duplicates are checked by the create handlers, not enforced here.
// Team references are bare UUID columns without foreign keys so that deleting
// a team leaves referencing rows dangling rather than failing or cascading.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		team_name TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		mobile VARCHAR(10) NOT NULL,
		type TEXT NOT NULL DEFAULT 'user',
		team UUID,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		ticket_id TEXT NOT NULL,
		description TEXT NOT NULL,
		date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		assigned_team UUID NOT NULL,
		status TEXT NOT NULL DEFAULT 'assigned',
		level TEXT NOT NULL DEFAULT 'low',
		worklog TEXT[] NOT NULL DEFAULT '{}'
	)`,
}

// Migrate applies the schema statements in order. Every statement is
// idempotent, so running Migrate on every startup is safe.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying migration %d: %w", i, err)
		}
	}
	return nil
}
