// cmd/notekeeper/cmd/note/delete.go
package note

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Long:  `Removes the note with the given id. Deleting an unknown id is a no-op.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		if err := app.DeleteNote(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		color.Green("✓ Note deleted")
		return nil
	},
}
