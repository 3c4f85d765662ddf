package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <query>",
	Short: "Print the body of the first snippet whose name contains query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		snip, ok := app.Get(args[0])
		if !ok {
			return fmt.Errorf("no snippet matches %q", args[0])
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), snip)
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, snip.Body)
		if !strings.HasSuffix(snip.Body, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
