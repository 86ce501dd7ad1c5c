// cmd/notekeeper/cmd/auth/login.go
package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"notekeeper/internal/domain/account"
)

var (
	loginUsername string
	trusted       bool
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an account",
	Long: `Authenticates against a local account and loads its notes.

With --trusted, re-enters the last account that logged in on this device
without asking for a PIN, standing in for a biometric unlock.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		if trusted {
			if err := app.LoginTrusted(cmd.Context()); err != nil {
				return fmt.Errorf("trusted login unavailable, use a PIN login")
			}
			username, _ := app.CurrentUser()
			color.Green("✓ Welcome back, %s", username)
			return nil
		}

		username := loginUsername
		if username == "" {
			if last, ok := app.LastUser(cmd.Context()); ok {
				fmt.Printf("Username [%s]: ", last)
				_, _ = fmt.Scanln(&username)
				if username == "" {
					username = last
				}
			} else {
				fmt.Print("Username: ")
				_, _ = fmt.Scanln(&username)
			}
		}

		fmt.Print("PIN: ")
		pin, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read pin: %w", err)
		}
		fmt.Println()

		if err := app.Login(cmd.Context(), username, string(pin)); err != nil {
			// One message for unknown account and wrong PIN alike, so the
			// prompt cannot be used to enumerate usernames.
			if errors.Is(err, account.ErrUnknownAccount) || errors.Is(err, account.ErrInvalidCredential) {
				return fmt.Errorf("invalid username or PIN")
			}
			return err
		}

		fmt.Println()
		color.Green("✓ Logged in as %s", username)

		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	LoginCmd.Flags().BoolVarP(&trusted, "trusted", "t", false, "log in as the last user without a PIN")
}
