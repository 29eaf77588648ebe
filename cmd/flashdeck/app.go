package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/gemini"
	"github.com/phrazzld/flashdeck/internal/platform/openai"
	"github.com/phrazzld/flashdeck/internal/platform/sqlstore"
	"github.com/phrazzld/flashdeck/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for commands that never touch decks.
	db *sql.DB

	pipeline *generation.Pipeline
	decks    service.DeckRepository
}

// appOptions overrides dependencies normally derived from configuration.
type appOptions struct {
	gateway    generation.Gateway
	httpClient *http.Client
}

// newApplication creates a new application instance with all dependencies initialized.
// db may be nil, in which case no deck repository is created.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	opts appOptions,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	gateway := opts.gateway
	if gateway == nil {
		var err error
		gateway, err = newGateway(ctx, cfg.LLM, logger, opts.httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize generation gateway: %w", err)
		}
	}

	prompts, err := generation.NewPromptBuilder(cfg.LLM.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	app.pipeline, err = generation.NewPipeline(prompts, gateway, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation pipeline: %w", err)
	}

	if db != nil {
		deckStore := sqlstore.NewDeckStore(db, logger)
		app.decks, err = service.NewDeckRepository(deckStore, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create deck repository: %w", err)
		}
	}

	logger.Info("Application initialized successfully",
		"llm_provider", cfg.LLM.Provider,
		"model", cfg.LLM.ModelName,
		"persistence", db != nil)
	return app, nil
}

// newGateway creates the generation gateway for the configured provider.
func newGateway(
	ctx context.Context,
	cfg config.LLMConfig,
	logger *slog.Logger,
	httpClient *http.Client,
) (generation.Gateway, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		var opts []gemini.Option
		if httpClient != nil {
			opts = append(opts, gemini.WithHTTPClient(httpClient))
		}
		return gemini.NewGateway(ctx, logger, cfg, opts...)
	case config.ProviderOpenAI:
		return openai.NewGateway(logger, cfg, httpClient)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
