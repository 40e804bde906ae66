// Package migrations embeds the SQL schema migrations and applies them with
// goose at startup. Server (PostgreSQL) migrations live at the package root;
// agent (SQLite) migrations live under client/.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

var errNilDB = errors.New("migration error: db is nil")

//go:embed *.sql client/*.sql
var embedMigrations embed.FS

// Migrate applies the server schema migrations to a PostgreSQL database.
func Migrate(db *sql.DB) error {
	if db == nil {
		return errNilDB
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// MigrateSQLite applies the agent's local schema migrations to an SQLite
// database.
func MigrateSQLite(db *sql.DB) error {
	if db == nil {
		return errNilDB
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "client"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
