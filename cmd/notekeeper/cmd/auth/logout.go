// cmd/notekeeper/cmd/auth/logout.go
package auth

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the trusted-device state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		app.Logout()
		color.Green("✓ Logged out")
		return nil
	},
}
