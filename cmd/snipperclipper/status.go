package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/snipperclipper"
)

type loadStatus struct {
	UsedDefaults bool   `json:"used_defaults"`
	Error        string `json:"error,omitempty"`
}

type statusReport struct {
	Version string                `json:"version"`
	Backend snipperclipper.Backend `json:"backend"`
	Paths   snipperclipper.Paths   `json:"paths"`
	Load    map[string]loadStatus  `json:"load"`
	Service any                   `json:"service"`
	Storage any                   `json:"storage,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print where data lives and the state of each component as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		report := statusReport{
			Version: strings.TrimSpace(snipperclipper.Version),
			Backend: app.Backend,
			Paths:   app.Paths,
			Load:    make(map[string]loadStatus),
			Service: app.State(),
			Storage: app.StorageState(),
		}
		for name, o := range app.Outcomes() {
			st := loadStatus{UsedDefaults: o.UsedDefaults}
			if o.Err != nil {
				st.Error = o.Err.Error()
			}
			report.Load[name] = st
		}

		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
