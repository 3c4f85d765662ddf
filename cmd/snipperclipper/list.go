package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/snipperclipper"
)

var (
	listLang  string
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List snippets in insertion order",
	Example: `  snipperclipper list
  snipperclipper list --lang py
  snipperclipper list --match 'utils/*'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		var snippets []snipperclipper.Snippet
		switch {
		case listLang != "":
			snippets, err = app.ListByLanguage(listLang)
		case listMatch != "":
			snippets, err = app.Match(listMatch)
		default:
			snippets = app.ListAll()
		}
		if err != nil {
			return err
		}

		return printSnippets(cmd.OutOrStdout(), snippets)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listLang, "lang", "", "Only snippets of this language (extension token, e.g. go, py)")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only snippets whose folder/name matches this glob")
	listCmd.MarkFlagsMutuallyExclusive("lang", "match")
}
