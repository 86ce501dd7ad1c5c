// cmd/notekeeper/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"notekeeper/cmd/notekeeper/cmd/types"
	"notekeeper/internal/app/client"
	"notekeeper/internal/app/client/config"
	"notekeeper/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
	app *client.App
)

var rootCmd = &cobra.Command{
	Use:   "notekeeper",
	Short: "notekeeper - local-first, PIN-protected notes",
	Long: `notekeeper keeps per-account note collections on this device, each
protected by a PIN. Nothing ever leaves the machine: accounts, notes and
image attachments all live in a local database under your home directory.

Start with 'notekeeper auth register', then 'notekeeper auth login'.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()
	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func teardownApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}
