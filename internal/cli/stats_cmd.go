package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/JayR61/congregation-connect/internal/app"
)

func newStatsCmd(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print programme statistics as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a.Statistics.Overview(cmd.Context()))
			})
		},
	}
}
