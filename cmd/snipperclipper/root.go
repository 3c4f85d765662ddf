package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/snipperclipper"
)

var (
	verbose     bool
	storageFlag string
	projectFlag bool
	strictFlag  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snipperclipper",
	Short: "A personal code-snippet manager",
	Long: `snipperclipper keeps a collection of named code snippets, grouped by folder
and tagged with a language derived from the name ("utils/retry.go").

Snippets live in a JSON file under your user config directory by default.
SC_SNIPPETS and SC_CONFIG relocate the files, SC_STORAGE selects the backend
(file, sqlite, ssh). A .env file in the working directory is read first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Variables already set in the environment win over .env.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend: file, sqlite or ssh (default $SC_STORAGE or file)")
	rootCmd.PersistentFlags().BoolVar(&projectFlag, "project", false, "Use the nearest .snipperclipper directory instead of the user config directory")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "Reject stored documents with unknown fields")
}

// openApp builds the service from flags and environment.
func openApp(ctx context.Context) (*snipperclipper.App, error) {
	opts := []snipperclipper.Option{
		snipperclipper.WithLogger(slog.Default()),
		snipperclipper.WithStrict(strictFlag),
	}
	if storageFlag != "" {
		opts = append(opts, snipperclipper.WithBackend(snipperclipper.Backend(storageFlag)))
	}
	if projectFlag {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		opts = append(opts, snipperclipper.WithProject(wd))
	}

	app, err := snipperclipper.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize snipperclipper: %w", err)
	}
	return app, nil
}
