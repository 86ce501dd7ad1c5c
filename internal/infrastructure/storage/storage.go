package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the flat key-value persistence provider all application state lives in.
// Implementations must return values byte-identical to what was stored.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}

// Key layout. Per-account data is isolated by embedding the username in the
// key; the registry and the last-user pointer are the only shared entries.
const (
	// UsersKey holds the JSON array of all registered usernames.
	UsersKey = "users_list"
	// LastUserKey holds the most recently authenticated username, as a raw string.
	LastUserKey = "last_user"
)

// ProfileKey returns the key of an account's credential record.
func ProfileKey(username string) string {
	return fmt.Sprintf("user-%s-profile", username)
}

// NotesKey returns the key of an account's note collection.
func NotesKey(username string) string {
	return fmt.Sprintf("user-%s-notes", username)
}
