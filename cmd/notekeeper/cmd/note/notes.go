// cmd/notekeeper/cmd/note/notes.go
package note

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"notekeeper/cmd/notekeeper/cmd/types"
	"notekeeper/internal/app/client"
	"notekeeper/internal/domain/note"
)

var NoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Work with the logged-in account's notes",
	Long: `Create, list, show, edit and delete notes. All note commands need an
active session: log in first, or rely on the trusted-device state left by a
previous login.`,
}

// appFromCmd fetches the app and resumes the session recorded on disk. Note
// commands are only valid with an authenticated account.
func appFromCmd(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	if err := app.Resume(cmd.Context()); err != nil {
		return nil, fmt.Errorf("not logged in, run 'notekeeper auth login' first")
	}
	return app, nil
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func printNote(n note.Note) {
	fmt.Printf("ID:      %s\n", n.ID)
	fmt.Printf("Title:   %s\n", n.Title)
	if len(n.Tags) > 0 {
		fmt.Printf("Tags:    %v\n", n.Tags)
	}
	if n.ImageURI != "" {
		fmt.Printf("Image:   %s\n", n.ImageURI)
	}
	fmt.Printf("Created: %s\n", formatTimestamp(n.CreatedAt))
	fmt.Printf("Updated: %s\n", formatTimestamp(n.UpdatedAt))
	if n.Body != "" {
		fmt.Println()
		fmt.Println(n.Body)
	}
}
