// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package index

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vaultkeeper-core/internal/logger"
	"github.com/MKhiriev/vaultkeeper-core/migrations"
)

// newTestDB returns a migrated in-memory index DB for use across this
// package's tests.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, migrations.Migrate(conn))

	return &DB{DB: conn, logger: logger.Nop()}
}

func TestOpen_CreatesFileAndMigrates(t *testing.T) {
	dir := t.TempDir()
	dsn := dir + "/index.sqlite"

	db, err := Open(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='items'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "items", name)
}

func TestOpen_MemoryDSNIsSharedAcrossConnections(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:", logger.Nop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())

	db.SetMaxOpenConns(2)

	// Force two distinct pooled connections. Without cache=shared in the
	// DSN, each ":memory:" connection is its own private database and the
	// migration applied via connA would be invisible to connB.
	connA, err := db.Conn(ctx)
	require.NoError(t, err)
	defer connA.Close()
	connB, err := db.Conn(ctx)
	require.NoError(t, err)
	defer connB.Close()

	_, err = connA.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES ('probe', 'via-conn-a')")
	require.NoError(t, err)

	var value string
	err = connB.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'probe'").Scan(&value)
	require.NoError(t, err)
	require.Equal(t, "via-conn-a", value)
}

func TestSharedCacheDSN_AppendsParams(t *testing.T) {
	require.Equal(t, "/tmp/index.sqlite?cache=shared&_busy_timeout=5000", sharedCacheDSN("/tmp/index.sqlite"))
	require.Equal(t, ":memory:?cache=shared&_busy_timeout=5000", sharedCacheDSN(":memory:"))
	require.Equal(t, "/tmp/index.sqlite?mode=ro&cache=shared&_busy_timeout=5000", sharedCacheDSN("/tmp/index.sqlite?mode=ro"))
}
