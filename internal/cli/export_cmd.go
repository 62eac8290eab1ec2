package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JayR61/congregation-connect/internal/app"
	"github.com/JayR61/congregation-connect/pkg/export"
)

func newExportCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export programmes to files",
	}
	cmd.AddCommand(newExportICSCmd(load))
	return cmd
}

func newExportICSCmd(load Loader) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "ics PROGRAMME_ID",
		Short: "Write a programme as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				dataURL, err := a.Exports.ProgrammeICS(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, payload, ok := export.DecodeDataURL(dataURL)
				if !ok {
					return fmt.Errorf("unreadable calendar payload")
				}
				if outPath == "" {
					_, err = cmd.OutOrStdout().Write(payload)
					return err
				}
				return os.WriteFile(outPath, payload, 0o644)
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	return cmd
}
