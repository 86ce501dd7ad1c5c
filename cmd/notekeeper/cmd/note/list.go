// cmd/notekeeper/cmd/note/list.go
package note

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/domain/note"
)

var (
	listSearch string
	listSort   string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, optionally filtered and sorted",
	Long: `Shows the logged-in account's notes. --search matches title, body and
tags case-insensitively; --sort is one of date-desc, date-asc, alpha-asc,
alpha-desc.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromCmd(cmd)
		if err != nil {
			return err
		}

		notes, err := app.Notes(listSearch, listSort)
		if err != nil {
			return err
		}

		if len(notes) == 0 {
			if listSearch != "" {
				fmt.Printf("No notes match %q.\n", listSearch)
			} else {
				fmt.Println("No notes yet. Create one with: notekeeper note create")
			}
			return nil
		}

		color.New(color.Bold).Printf("Notes (%d)\n", len(notes))
		for _, n := range notes {
			title := n.Title
			if title == "" {
				title = "(untitled)"
			}
			line := fmt.Sprintf("  %s  %s  %s", n.ID, formatTimestamp(n.UpdatedAt), title)
			if len(n.Tags) > 0 {
				line += "  [" + strings.Join(n.Tags, ", ") + "]"
			}
			if n.ImageURI != "" {
				line += "  (image)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter text")
	ListCmd.Flags().StringVar(&listSort, "sort", string(note.SortDateDesc), "sort order")
}
