// cmd/notekeeper/cmd/init.go
package cmd

import (
	"notekeeper/cmd/notekeeper/cmd/auth"
	"notekeeper/cmd/notekeeper/cmd/note"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.AccountsCmd)

	rootCmd.AddCommand(note.NoteCmd)
	note.NoteCmd.AddCommand(note.CreateCmd)
	note.NoteCmd.AddCommand(note.ListCmd)
	note.NoteCmd.AddCommand(note.ShowCmd)
	note.NoteCmd.AddCommand(note.EditCmd)
	note.NoteCmd.AddCommand(note.DeleteCmd)
}
