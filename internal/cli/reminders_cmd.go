package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JayR61/congregation-connect/internal/app"
)

const drainTimeout = 30 * time.Second

func newRemindersCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Inspect and process programme reminders",
	}
	cmd.AddCommand(newRemindersProcessCmd(load))
	return cmd
}

func newRemindersProcessCmd(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Run one reminder processing pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				a.Notifications.Start(cmd.Context())
				result, err := a.Reminders.Process(cmd.Context())
				if err != nil {
					return err
				}
				drainCtx, cancel := context.WithTimeout(cmd.Context(), drainTimeout)
				defer cancel()
				if err := a.Drain(drainCtx); err != nil {
					return fmt.Errorf("deliver notifications: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "sent: %d, failed: %d\n", len(result.Sent), len(result.Failed))
				for _, reminder := range result.Sent {
					fmt.Fprintf(out, "  %s  programme=%s  schedule=%s\n", reminder.ID, reminder.ProgrammeID, reminder.Schedule)
				}
				return nil
			})
		},
	}
}
