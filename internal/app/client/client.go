// Package client wires configuration, storage and the domain services into
// the application object the CLI commands talk to.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"

	"notekeeper/internal/app/client/config"
	"notekeeper/internal/domain/account"
	"notekeeper/internal/domain/note"
	"notekeeper/internal/domain/session"
	"notekeeper/internal/infrastructure/migration"
	"notekeeper/internal/infrastructure/storage"
	"notekeeper/internal/infrastructure/storage/memory"
	"notekeeper/internal/infrastructure/storage/sqlite"
	"notekeeper/internal/utils/filex"
)

// ErrNotLoggedIn is returned when an operation needs a session and neither a
// live login nor a trusted-device state file can provide one.
var ErrNotLoggedIn = errors.New("not logged in")

type App struct {
	config   *config.Config
	log      *slog.Logger
	kv       storage.KV
	accounts account.Servicer
	notes    note.Servicer
	sess     *session.Session
	state    *AppState
}

// AppState is the small on-disk record that survives between invocations. Its
// presence is the device-trust token: whoever can read this file may re-enter
// the recorded account without a PIN.
type AppState struct {
	Username   string `json:"username"`
	LoggedInAt int64  `json:"loggedInAt"`
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	kv := openStorage(cfg, log)

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		log.Warn("unknown locale, falling back to English", "locale", cfg.Locale)
		locale = language.English
	}

	app := &App{
		config:   cfg,
		log:      log,
		kv:       kv,
		accounts: account.NewService(kv, account.NewPINValidator(), log),
		notes:    note.NewService(kv, note.UUIDGenerator, locale, log),
	}

	state, err := loadAppState(cfg)
	if err != nil {
		log.Warn("failed to load app state", "error", err)
		state = nil
	}
	app.state = state

	return app, nil
}

// openStorage migrates and opens the SQLite store, dropping back to the
// in-memory store when the database is unusable. In the fallback the app
// still works for the lifetime of the process, it just persists nothing.
func openStorage(cfg *config.Config, log *slog.Logger) storage.KV {
	mg := migration.NewMigration("sqlite3://"+cfg.DataPath, migration.DefaultEngine)
	if err := mg.Up(); err != nil {
		log.Warn("migration failed, using in-memory storage", "error", err)
		return memory.New()
	}

	st, err := sqlite.New(cfg.DataPath)
	if err != nil {
		log.Warn("failed to open sqlite storage, using in-memory storage", "error", err)
		return memory.New()
	}
	return st
}

// Register creates a new account. It does not log the account in.
func (a *App) Register(ctx context.Context, username, pin string) error {
	return a.accounts.Register(ctx, username, pin)
}

// Login authenticates with a PIN, persists the trusted-device state file and
// loads the account's notes.
func (a *App) Login(ctx context.Context, username, pin string) error {
	sess, err := a.accounts.Authenticate(ctx, username, pin)
	if err != nil {
		return err
	}
	return a.startSession(ctx, sess)
}

// LoginTrusted re-enters the account recorded in the state file without a
// PIN. The state file plays the role the biometric check plays in a mobile
// build: an external proof that this device is trusted for that account.
func (a *App) LoginTrusted(ctx context.Context) error {
	if a.state == nil || a.state.Username == "" {
		return ErrNotLoggedIn
	}

	sess, err := a.accounts.AuthenticateTrusted(ctx, a.state.Username)
	if err != nil {
		// Stale pointer to a removed account; drop the trust file.
		a.clearState()
		return err
	}
	return a.startSession(ctx, sess)
}

// Resume is LoginTrusted for commands that need an already-established
// session rather than an explicit login.
func (a *App) Resume(ctx context.Context) error {
	if a.sess.Active() {
		return nil
	}
	return a.LoginTrusted(ctx)
}

func (a *App) startSession(ctx context.Context, sess *session.Session) error {
	a.sess = sess
	a.state = &AppState{
		Username:   sess.Username(),
		LoggedInAt: time.Now().UnixMilli(),
	}
	if err := a.saveState(); err != nil {
		a.log.Warn("failed to save app state", "error", err)
	}

	return a.notes.Refresh(ctx, sess)
}

// Logout ends the session and removes the trusted-device state file. The
// stored last-user pointer is kept so the next invocation can offer that
// username again.
func (a *App) Logout() {
	a.sess.End()
	a.clearState()
}

// CurrentUser returns the username of the active session, if any.
func (a *App) CurrentUser() (string, bool) {
	if !a.sess.Active() {
		return "", false
	}
	return a.sess.Username(), true
}

// Accounts lists all registered usernames.
func (a *App) Accounts(ctx context.Context) []string {
	return a.accounts.Accounts(ctx)
}

// LastUser returns the most recently authenticated username.
func (a *App) LastUser(ctx context.Context) (string, bool) {
	return a.accounts.LastUsername(ctx)
}

// CreateNote persists a new note. When imagePath is set, the file is copied
// into the attachments directory first and the copy becomes the note's image.
func (a *App) CreateNote(ctx context.Context, n note.Note, imagePath string) (note.Note, error) {
	if imagePath != "" {
		dst, err := filex.CopyToDir(imagePath, a.config.AttachmentsDir)
		if err != nil {
			return note.Note{}, fmt.Errorf("attach image: %w", err)
		}
		n.ImageURI = dst
	}
	return a.notes.Create(ctx, a.sess, n)
}

// UpdateNote replaces an existing note, optionally swapping its attachment.
func (a *App) UpdateNote(ctx context.Context, n note.Note, imagePath string) (note.Note, error) {
	if imagePath != "" {
		dst, err := filex.CopyToDir(imagePath, a.config.AttachmentsDir)
		if err != nil {
			return note.Note{}, fmt.Errorf("attach image: %w", err)
		}
		n.ImageURI = dst
	}
	return a.notes.Update(ctx, a.sess, n)
}

// DeleteNote removes a note; an unknown id is a no-op.
func (a *App) DeleteNote(ctx context.Context, id string) error {
	return a.notes.Delete(ctx, a.sess, id)
}

// Note returns a single note from the current in-memory collection.
func (a *App) Note(id string) (note.Note, error) {
	return a.notes.Find(a.sess, id)
}

// Notes returns the filtered, sorted view of the current collection.
func (a *App) Notes(searchText, sortOrder string) ([]note.Note, error) {
	order, err := note.ParseSortOrder(sortOrder)
	if err != nil {
		return nil, err
	}
	return a.notes.Query(a.sess, searchText, order)
}

func (a *App) Close() error {
	return a.kv.Close()
}

func loadAppState(cfg *config.Config) (*AppState, error) {
	raw, err := os.ReadFile(cfg.StatePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return &state, nil
}

func (a *App) saveState() error {
	raw, err := json.Marshal(a.state)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	if err := os.WriteFile(a.config.StatePath, raw, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (a *App) clearState() {
	a.state = nil
	if err := os.Remove(a.config.StatePath); err != nil && !os.IsNotExist(err) {
		a.log.Warn("failed to remove state file", "error", err)
	}
}
