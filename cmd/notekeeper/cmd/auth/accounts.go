// cmd/notekeeper/cmd/auth/accounts.go
package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var AccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts registered on this device",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		usernames := app.Accounts(cmd.Context())
		if len(usernames) == 0 {
			fmt.Println("No accounts registered yet.")
			fmt.Println("Create one with: notekeeper auth register")
			return nil
		}

		last, _ := app.LastUser(cmd.Context())

		color.New(color.Bold).Printf("Accounts (%d)\n", len(usernames))
		for _, username := range usernames {
			if username == last {
				fmt.Printf("  %s (last used)\n", username)
			} else {
				fmt.Printf("  %s\n", username)
			}
		}
		return nil
	},
}
