package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables for a fresh local database. Deployed
// environments manage the schema out of band; this exists so cmd/seed can
// bring up a dev database from nothing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            uuid PRIMARY KEY,
			name          text NOT NULL DEFAULT '',
			email         text NOT NULL UNIQUE,
			password_hash text NOT NULL DEFAULT '',
			role          text NOT NULL DEFAULT 'subscriber',
			created_at    timestamptz NOT NULL DEFAULT now(),
			updated_at    timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id          uuid PRIMARY KEY,
			user_id     uuid NOT NULL REFERENCES users (id),
			provider_id text NOT NULL,
			account_id  text NOT NULL,
			created_at  timestamptz NOT NULL DEFAULT now(),
			UNIQUE (provider_id, account_id)
		)`,
		`CREATE TABLE IF NOT EXISTS magic_tokens (
			id         uuid PRIMARY KEY,
			user_id    uuid NOT NULL REFERENCES users (id),
			token_hash text NOT NULL UNIQUE,
			expires_at timestamptz NOT NULL,
			used_at    timestamptz,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS email_subscriptions (
			id         uuid PRIMARY KEY,
			email      text NOT NULL UNIQUE,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS health_check_logs (
			id         uuid PRIMARY KEY,
			status     text NOT NULL,
			error      text,
			timestamp  timestamptz NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
