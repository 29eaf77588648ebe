package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/sqlstore"
)

// setupAppDatabase opens the configured database and, if migrate is set,
// brings its schema up to date. The caller owns the returned pool.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*sql.DB, error) {
	db, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if !migrate {
		return db, nil
	}

	migrator, err := sqlstore.NewMigrator(db, cfg.Database.Driver, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	applied, err := migrator.Up(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database schema up to date", "applied", applied)

	return db, nil
}
