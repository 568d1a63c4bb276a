// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package index implements the SQLite-backed relational index for
// vaultkeeper-core: the meta, items, secrets, and files tables that hold
// vault metadata and wrapped DEKs alongside pointers into the blob store.
//
// Nothing in this package ever sees plaintext vault payloads — it stores
// opaque blob hashes and AEAD-wrapped key material only.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/vaultkeeper-core/internal/logger"
	"github.com/MKhiriev/vaultkeeper-core/migrations"
)

// DB wraps a SQLite connection pool opened against the vault's index file.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Open opens (creating if necessary) the SQLite database at dsn, verifies
// reachability with a ping, and returns a [DB] ready for [DB.Migrate].
func Open(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "Open").Msg("error creating index database file")
		return nil, fmt.Errorf("index: create database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", sharedCacheDSN(dsn))
	if err != nil {
		log.Err(err).Str("func", "Open").Msg("error opening index database")
		return nil, fmt.Errorf("index: open connection: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "Open").Msg("error pinging index database")
		return nil, fmt.Errorf("index: ping: %w", err)
	}

	log.Debug().Str("func", "Open").Msg("connected to index database")
	return &DB{DB: conn, logger: log}, nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Execer is satisfied by both *sql.DB (via [DB]) and *sql.Tx, letting a
// repository run its queries either standalone or inside a caller-managed
// transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ExecTx runs fn inside a transaction, committing on success and rolling
// back if fn returns an error. Repositories obtained via WithExecer(tx) run
// their queries as part of the same transaction.
func (db *DB) ExecTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("index: commit transaction: %w", err)
	}

	return nil
}

// sharedCacheDSN appends cache=shared and a busy timeout to dsn so that the
// connections database/sql pools all see the same database — including the
// in-memory case, where distinct connections are otherwise distinct
// databases — and so that a writer blocked behind another transaction waits
// on SQLite's busy handler instead of failing immediately with
// SQLITE_BUSY.
func sharedCacheDSN(dsn string) string {
	params := "cache=shared&_busy_timeout=5000"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == ":memory:" {
		return nil
	}
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating index file: %w", err)
		}
		f.Close()
	}
	return nil
}
