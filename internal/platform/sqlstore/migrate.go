package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/flashdeck/internal/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

var dialects = map[string]goose.Dialect{
	config.DriverPostgres: goose.DialectPostgres,
	config.DriverSQLite:   goose.DialectSQLite3,
}

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// Unlike the standard Fatalf behavior, this does NOT call os.Exit; the
// provider returns the error to the caller instead.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Migrator applies the embedded schema migrations for one driver.
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// NewMigrator creates a Migrator for db using the migrations of driver.
// The caller keeps ownership of db.
func NewMigrator(db *sql.DB, driver string, log *slog.Logger) (*Migrator, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("driver", driver))

	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	fsys, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s migrations: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys,
		goose.WithLogger(&slogGooseLogger{logger: log}),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{provider: provider, logger: log}, nil
}

// Up applies every pending migration and returns the number applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		m.logger.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}
	return len(results), nil
}

// Down rolls back the most recent migration. It returns false when there is
// nothing left to roll back.
func (m *Migrator) Down(ctx context.Context) (bool, error) {
	result, err := m.provider.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to roll back migration: %w", err)
	}
	m.logger.InfoContext(ctx, "migration rolled back",
		slog.Int64("version", result.Source.Version),
		slog.String("path", result.Source.Path))
	return true, nil
}

// MigrationStatus describes one known migration.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Status reports every embedded migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Version returns the current schema version, 0 for an empty database.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}
