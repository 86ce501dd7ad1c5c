// cmd/notekeeper/cmd/note/create.go
package note

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/domain/note"
)

var (
	createTitle string
	createBody  string
	createTags  []string
	createImage string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new note",
	Long: `Creates a note in the logged-in account's collection. Title and body
can be given as flags or entered interactively; an image file given with
--image is copied into the attachments directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		title := createTitle
		if title == "" && createBody == "" {
			fmt.Print("Title (Enter to skip): ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				title = scanner.Text()
			}
		}

		body := createBody
		if body == "" && !cmd.Flags().Changed("body") {
			fmt.Println("Body (Ctrl+D to finish):")
			scanner := bufio.NewScanner(os.Stdin)
			var lines []string
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			body = strings.Join(lines, "\n")
		}

		// An entirely empty note is discarded before it reaches storage.
		if title == "" && body == "" {
			return fmt.Errorf("empty note discarded: give it a title or a body")
		}

		created, err := app.CreateNote(cmd.Context(), note.Note{
			Title: title,
			Body:  body,
			Tags:  createTags,
		}, createImage)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Println()
		color.Green("✓ Note created (%s)", created.ID)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "note title")
	CreateCmd.Flags().StringVarP(&createBody, "body", "b", "", "note body")
	CreateCmd.Flags().StringArrayVar(&createTags, "tag", nil, "tag (repeatable)")
	CreateCmd.Flags().StringVar(&createImage, "image", "", "path to an image to attach")
}
