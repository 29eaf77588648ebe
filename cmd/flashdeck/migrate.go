package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/sqlstore"
)

// Migration actions accepted by the migrate command.
const (
	migrateUp      = "up"
	migrateDown    = "down"
	migrateStatus  = "status"
	migrateVersion = "version"
)

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Manage the database schema (default: up)",
		ValidArgs: []string{migrateUp, migrateDown, migrateStatus, migrateVersion},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := migrateUp
			if len(args) == 1 {
				action = args[0]
			}

			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log := logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel)

			db, err := setupAppDatabase(cmd.Context(), cfg, log, false)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			migrator, err := sqlstore.NewMigrator(db, cfg.Database.Driver, log)
			if err != nil {
				return err
			}

			return runMigration(cmd, migrator, action, cmd.OutOrStdout())
		},
	}
}

func runMigration(cmd *cobra.Command, m *sqlstore.Migrator, action string, out io.Writer) error {
	ctx := cmd.Context()

	switch action {
	case migrateUp:
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "applied %d migration(s)\n", applied)
		return err

	case migrateDown:
		rolledBack, err := m.Down(ctx)
		if err != nil {
			return err
		}
		if !rolledBack {
			_, err = fmt.Fprintln(out, "no migrations to roll back")
			return err
		}
		_, err = fmt.Fprintln(out, "rolled back 1 migration")
		return err

	case migrateStatus:
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			if _, err := fmt.Fprintf(out, "%-8s %05d %s\n", state, s.Version, s.Path); err != nil {
				return err
			}
		}
		return nil

	case migrateVersion:
		v, err := m.Version(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "version %d\n", v)
		return err

	default:
		return fmt.Errorf("unknown migrate action %q", action)
	}
}
