package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	// Register the "pgx" driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Register the "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/phrazzld/flashdeck/internal/config"
)

// driverNames maps configured drivers to database/sql driver names.
var driverNames = map[string]string{
	config.DriverPostgres: "pgx",
	config.DriverSQLite:   "sqlite",
}

// sqliteDefaults are applied to SQLite DSNs that do not set them.
//
// Transactions begin IMMEDIATE so a read-then-write transaction takes the
// write lock up front. Two deferred transactions upgrading from SHARED fail
// with SQLITE_BUSY without consulting busy_timeout.
var sqliteDefaults = [][2]string{
	{"_pragma", "foreign_keys(1)"},
	{"_pragma", "busy_timeout(5000)"},
	{"_time_format", "sqlite"},
	{"_txlock", "immediate"},
}

// Open opens and pings a connection pool for cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	if log == nil {
		log = slog.Default()
	}

	driverName, ok := driverNames[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	dsn := cfg.URL
	if cfg.Driver == config.DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(maxOpen, 5))
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		slog.String("driver", cfg.Driver),
		slog.Int("max_open_conns", maxOpen))

	return db, nil
}

// SQLiteDSN adds the connection parameters the deck store relies on
// (foreign keys, busy timeout, sortable time format, immediate transactions)
// unless the DSN already sets them.
func SQLiteDSN(dsn string) string {
	base, rawQuery, _ := strings.Cut(dsn, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return dsn
	}

	for _, kv := range sqliteDefaults {
		key, value := kv[0], kv[1]
		if key == "_pragma" {
			name, _, _ := strings.Cut(value, "(")
			if hasPragma(query[key], name) {
				continue
			}
			query.Add(key, value)
			continue
		}
		if query.Get(key) == "" {
			query.Set(key, value)
		}
	}

	return base + "?" + query.Encode()
}

func hasPragma(pragmas []string, name string) bool {
	for _, p := range pragmas {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(p)), name) {
			return true
		}
	}
	return false
}
