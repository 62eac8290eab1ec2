package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JayR61/congregation-connect/internal/app"
	"github.com/JayR61/congregation-connect/internal/models"
)

func newTokenCmd(load Loader) *cobra.Command {
	var (
		userID string
		role   string
		name   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				token, expiresAt, err := a.Auth.IssueToken(models.Actor{
					UserID: userID,
					Role:   models.UserRole(strings.ToUpper(role)),
					Name:   name,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id carried by the token")
	cmd.Flags().StringVar(&role, "role", string(models.RoleMember), "ADMIN, LEADER or MEMBER")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
