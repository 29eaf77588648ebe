package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log := logger.Setup(cfg.Server)
			log.Info("Server configuration loaded",
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel,
				"database_driver", cfg.Database.Driver)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := setupAppDatabase(ctx, cfg, log, autoMigrate)
			if err != nil {
				return err
			}

			app, err := newApplication(ctx, cfg, log, db, appOptions{})
			if err != nil {
				_ = db.Close()
				return err
			}
			defer app.cleanup()

			server := app.newHTTPServer(app.setupRouter())
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
			}

			return app.serve(ctx, server, listener)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Apply pending database migrations before serving")
	return cmd
}
