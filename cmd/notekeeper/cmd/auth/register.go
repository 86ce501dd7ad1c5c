// cmd/notekeeper/cmd/auth/register.go
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

var registerUsername string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account on this device",
	Long: `Creates a new local account with an empty note collection, protected
by a 4-6 digit PIN. The PIN is stored only as a hash.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Register ===")
		fmt.Println()

		username := registerUsername
		if username == "" {
			fmt.Print("Username: ")
			_, _ = fmt.Scanln(&username)
		}

		fmt.Print("PIN (4-6 digits): ")
		pin, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read pin: %w", err)
		}
		fmt.Println()

		fmt.Print("Repeat PIN: ")
		pinConfirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read pin: %w", err)
		}
		fmt.Println()

		if string(pin) != string(pinConfirm) {
			return fmt.Errorf("pins do not match")
		}

		if err := app.Register(cmd.Context(), username, string(pin)); err != nil {
			if errors.Is(err, account.ErrDuplicateAccount) {
				return fmt.Errorf("account %q already exists", username)
			}
			return err
		}

		fmt.Println()
		color.Green("✓ Account %q registered", username)
		fmt.Println("Log in with: notekeeper auth login")

		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username")
}
