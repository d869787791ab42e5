// Package storage opens the local SQLite store and wires up the
// per-collection repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/migrations"
	"github.com/focusflow/focusflow/internal/repositories/settings"
	"github.com/focusflow/focusflow/internal/repositories/tasks"
	"github.com/focusflow/focusflow/internal/repositories/users"
	"github.com/focusflow/focusflow/internal/repositories/vault"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Repositories bundles one repository per collection, all bound to the
// same database handle.
type Repositories struct {
	Tasks    tasks.Repository
	Vault    vault.Repository
	Users    users.Repository
	Settings settings.Repository
	DB       *sql.DB
}

// RunMigrations applies the embedded schema migrations. Goose records each
// applied version, so the schema is created exactly once per storage version.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite database at dsn, ensures the
// schema exists, and returns the collection repositories.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewRepositories(db), nil
}

// NewRepositories binds one repository per collection to an already opened
// database handle.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Tasks:    tasks.NewSQLiteRepository(db),
		Vault:    vault.NewSQLiteRepository(db),
		Users:    users.NewSQLiteRepository(db),
		Settings: settings.NewSQLiteRepository(db),
		DB:       db,
	}
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
