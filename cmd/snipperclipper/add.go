package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <folder/name.ext> [body]",
	Short: "Add a snippet",
	Long: `Add a snippet to the collection. The folder is everything before the first
"/", the name everything before the first "." and the language is derived
from the extension (go, rs, py, c, sh, cpp, java; anything else is
Miscellaneous).

When body is omitted and stdin is not a terminal, the body is read from stdin:

  cat retry.go | snipperclipper add utils/retry.go`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readBody(cmd, args)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		snip, err := app.Add(cmd.Context(), args[0], body)
		if err != nil {
			return fmt.Errorf("save snippet: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), snip)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) %s\n", snip.Path(), snip.Language, snip.ID)
		return nil
	},
}

func readBody(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
