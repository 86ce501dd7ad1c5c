package note

import "errors"

var (
	ErrNotFound        = errors.New("note not found")
	ErrNoActiveSession = errors.New("no active session")
)
