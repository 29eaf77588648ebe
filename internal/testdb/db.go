package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/sqlstore"
)

// TestTimeout bounds the setup operations performed by this package.
const TestTimeout = 5 * time.Second

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Config returns the database configuration of a fresh SQLite file inside
// t.TempDir().
func Config(t *testing.T) config.DatabaseConfig {
	t.Helper()

	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + filepath.Join(t.TempDir(), "flashdeck_test.db"),
	}
}

// OpenWithT opens an empty database without applying migrations and closes it
// when the test finishes.
func OpenWithT(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlstore.Open(ctx, Config(t), DiscardLogger())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { CleanupDB(t, db) })
	return db
}

// GetTestDBWithT opens a database with the schema applied and closes it when
// the test finishes.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	db := OpenWithT(t)
	SetupTestDatabaseSchema(t, db)
	return db
}

// SetupTestDatabaseSchema applies every embedded migration to db.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	m, err := sqlstore.NewMigrator(db, config.DriverSQLite, DiscardLogger())
	require.NoError(t, err, "failed to create migrator")

	_, err = m.Up(ctx)
	require.NoError(t, err, "failed to run migrations")
}

// CleanupDB closes db, logging rather than failing on error.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()

	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close test database: %v", err)
	}
}

// WithTx runs fn inside a transaction that is rolled back afterwards, even if
// fn panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		// sql.ErrTxDone is expected if fn already finished the transaction.
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
