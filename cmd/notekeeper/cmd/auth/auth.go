// cmd/notekeeper/cmd/auth/auth.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/notekeeper/cmd/types"
	"notekeeper/internal/app/client"
)

var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage accounts and sessions",
	Long: `Account management: register a new account, log in with a PIN or as
the last trusted user, log out, and list the accounts known on this device.`,
}

func appFromCmd(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
