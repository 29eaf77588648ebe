package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// generateFlags holds the parsed flags for the generate command.
type generateFlags struct {
	file string
	save bool
	name string
}

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	var gf generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards from a file or stdin and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, flags, gf, appOptions{})
		},
	}

	f := cmd.Flags()
	f.StringVar(&gf.file, "file", "", "Read study text from this file instead of stdin")
	f.BoolVar(&gf.save, "save", false, "Save the generated cards as a new deck")
	f.StringVar(&gf.name, "name", "", "Deck name (required with --save)")

	return cmd
}

func runGenerate(cmd *cobra.Command, flags *rootFlags, gf generateFlags, opts appOptions) error {
	if gf.save && strings.TrimSpace(gf.name) == "" {
		return errors.New("--name is required with --save")
	}

	text, err := readInput(cmd, gf.file)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel)
	ctx := cmd.Context()

	app, err := func() (*application, error) {
		if !gf.save {
			return newApplication(ctx, cfg, log, nil, opts)
		}
		db, err := setupAppDatabase(ctx, cfg, log, true)
		if err != nil {
			return nil, err
		}
		app, err := newApplication(ctx, cfg, log, db, opts)
		if err != nil {
			_ = db.Close()
		}
		return app, err
	}()
	if err != nil {
		return err
	}
	defer app.cleanup()

	result, err := app.pipeline.Generate(ctx, text)
	if err != nil {
		return redactedError{err: err}
	}

	var output any = api.GenerateFlashcardsResponse{Flashcards: result.Flashcards, Count: result.Count}
	if gf.save {
		deck, err := app.decks.Create(ctx, gf.name, result.Flashcards)
		if err != nil {
			return redactedError{err: err}
		}
		output = deck
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// redactedError prints err with credentials scrubbed while keeping it in the
// chain, so callers can still inspect its kind.
type redactedError struct {
	err error
}

func (e redactedError) Error() string { return redact.Error(e.err) }

func (e redactedError) Unwrap() error { return e.err }

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
