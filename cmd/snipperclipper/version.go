package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/snipperclipper"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of snipperclipper",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "snipperclipper version %s\n", strings.TrimSpace(snipperclipper.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
