// Package main implements the flashdeck command: an HTTP API and CLI that
// turn study text into flashcards with a generation provider and keep named
// decks in PostgreSQL or SQLite.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// rootFlags holds the flags shared by every subcommand.
type rootFlags struct {
	configFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "flashdeck",
		Short:         "Generate flashcards from study text and manage decks",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "",
		"Path to a YAML config file (default: ./config.yaml if present)")

	root.AddCommand(
		newServeCmd(flags),
		newMigrateCmd(flags),
		newGenerateCmd(flags),
	)

	return root
}
