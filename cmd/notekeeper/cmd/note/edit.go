// cmd/notekeeper/cmd/note/edit.go
package note

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/domain/note"
)

var (
	editTitle string
	editBody  string
	editTags  []string
	editImage string
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing note",
	Long: `Updates the note with the given id. Only the fields passed as flags
change; everything else keeps its current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		current, err := app.Note(args[0])
		if err != nil {
			if errors.Is(err, note.ErrNotFound) {
				return fmt.Errorf("no note with id %q", args[0])
			}
			return err
		}

		if cmd.Flags().Changed("title") {
			current.Title = editTitle
		}
		if cmd.Flags().Changed("body") {
			current.Body = editBody
		}
		if cmd.Flags().Changed("tag") {
			current.Tags = editTags
		}

		if current.Title == "" && current.Body == "" {
			return fmt.Errorf("empty note discarded: give it a title or a body")
		}

		updated, err := app.UpdateNote(cmd.Context(), current, editImage)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		color.Green("✓ Note updated (%s)", updated.ID)
		return nil
	},
}

func init() {
	EditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	EditCmd.Flags().StringVarP(&editBody, "body", "b", "", "new body")
	EditCmd.Flags().StringArrayVar(&editTags, "tag", nil, "new tag set (repeatable)")
	EditCmd.Flags().StringVar(&editImage, "image", "", "path to a new image attachment")
}
