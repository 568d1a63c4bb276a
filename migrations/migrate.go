// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations manages the index database schema for
// vaultkeeper-core. It uses the goose migration library with embedded SQL
// files, ensuring that all migration files are compiled into the binary and
// applied automatically at startup without requiring external file access.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// embedMigrations holds all *.sql migration files embedded into the binary
// at compile time via the go:embed directive.
//
//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies all pending schema migrations to db using the goose
// library and the embedded SQL files in this package. The index is always
// SQLite, so the dialect is fixed; there is no multi-backend dispatch to
// perform.
//
// This function is intended to be called once, when a vault is opened,
// before the index is used by any repository.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
