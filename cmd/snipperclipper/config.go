package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change preferences",
}

var themeCmd = &cobra.Command{
	Use:   "theme [value]",
	Short: "Print the theme, or set it when a value is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), app.Theme())
			return nil
		}

		if err := app.SetTheme(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(themeCmd)
}
