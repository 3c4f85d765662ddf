package main

import (
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "List snippets whose name contains query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		return printSnippets(cmd.OutOrStdout(), app.Find(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
