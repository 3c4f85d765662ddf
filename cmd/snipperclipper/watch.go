package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	sclifecycle "github.com/aretw0/snipperclipper/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the snippet collection until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		events, err := app.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}

		src := sclifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", app.Paths.Snippets)
		for e := range src.Events() {
			fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.TimeOnly), e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
