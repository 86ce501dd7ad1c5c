// cmd/notekeeper/cmd/note/show.go
package note

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/internal/domain/note"
)

var ShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		n, err := app.Note(args[0])
		if err != nil {
			if errors.Is(err, note.ErrNotFound) {
				return fmt.Errorf("no note with id %q", args[0])
			}
			return err
		}

		printNote(n)
		return nil
	},
}
