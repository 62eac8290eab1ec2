package cli

import (
	"github.com/spf13/cobra"

	"github.com/JayR61/congregation-connect/internal/app"
)

// Loader builds the application on demand so each command only pays for
// what it runs.
type Loader func() (*app.App, error)

// NewRootCmd creates the top-level "congregation" command.
func NewRootCmd(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "congregation",
		Short:         "Church programme management service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(load),
		newRemindersCmd(load),
		newStatsCmd(load),
		newExportCmd(load),
		newTokenCmd(load),
	)

	return root
}

func withApp(load Loader, fn func(a *app.App) error) error {
	a, err := load()
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck
	return fn(a)
}
