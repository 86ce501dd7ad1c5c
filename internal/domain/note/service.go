package note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"notekeeper/internal/domain/session"
	"notekeeper/internal/infrastructure/storage"
)

// IDGenerator produces a unique opaque id for a new note.
type IDGenerator func() string

// UUIDGenerator is the production IDGenerator.
func UUIDGenerator() string {
	return uuid.NewString()
}

// Servicer maintains the in-memory note list of the authenticated account and
// keeps it synchronized with storage. Every call takes the session handle that
// authorizes it; Query is a pure projection of the in-memory list.
type Servicer interface {
	Refresh(ctx context.Context, sess *session.Session) error
	Create(ctx context.Context, sess *session.Session, n Note) (Note, error)
	Update(ctx context.Context, sess *session.Session, n Note) (Note, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
	Find(sess *session.Session, id string) (Note, error)
	Query(sess *session.Session, searchText string, order SortOrder) ([]Note, error)
}

type Service struct {
	kv    storage.KV
	newID IDGenerator
	coll  *collate.Collator
	log   *slog.Logger
	now   func() time.Time

	notes []Note
}

func NewService(kv storage.KV, newID IDGenerator, locale language.Tag, log *slog.Logger) *Service {
	return &Service{
		kv:    kv,
		newID: newID,
		coll:  collate.New(locale),
		log:   log.With("component", "note_service"),
		now:   time.Now,
	}
}

// Refresh replaces the in-memory list with the stored collection of the
// session's account. A read or decode failure resets the list to empty rather
// than propagating: the view must never crash, at the documented cost of
// temporary data invisibility.
func (s *Service) Refresh(ctx context.Context, sess *session.Session) error {
	if !sess.Active() {
		return ErrNoActiveSession
	}

	s.notes = s.load(ctx, sess.Username())
	return nil
}

// Create stamps the note (fresh id, createdAt/updatedAt at persistence time,
// isSynced false), appends it to the stored collection and reloads in-memory
// state from storage.
func (s *Service) Create(ctx context.Context, sess *session.Session, n Note) (Note, error) {
	if !sess.Active() {
		return Note{}, ErrNoActiveSession
	}
	username := sess.Username()

	ts := s.now().UnixMilli()
	n.ID = s.newID()
	n.CreatedAt = ts
	n.UpdatedAt = ts
	n.IsSynced = false
	if n.Tags == nil {
		n.Tags = []string{}
	}

	stored := append(s.load(ctx, username), n)
	if err := s.store(ctx, username, stored); err != nil {
		return Note{}, err
	}

	s.notes = s.load(ctx, username)
	s.log.Info("note created", "username", username, "note_id", n.ID)
	return n, nil
}

// Update replaces the full record of the note with a matching id, re-stamping
// updatedAt and forcing isSynced false. The original createdAt and id are
// immutable and survive the replacement.
func (s *Service) Update(ctx context.Context, sess *session.Session, n Note) (Note, error) {
	if !sess.Active() {
		return Note{}, ErrNoActiveSession
	}
	username := sess.Username()

	stored := s.load(ctx, username)
	index := -1
	for i := range stored {
		if stored[i].ID == n.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return Note{}, ErrNotFound
	}

	n.CreatedAt = stored[index].CreatedAt
	n.UpdatedAt = s.now().UnixMilli()
	n.IsSynced = false
	if n.Tags == nil {
		n.Tags = []string{}
	}
	stored[index] = n

	if err := s.store(ctx, username, stored); err != nil {
		return Note{}, err
	}

	s.notes = s.load(ctx, username)
	s.log.Info("note updated", "username", username, "note_id", n.ID)
	return n, nil
}

// Delete removes the note with the given id. An unknown id is a no-op, not an
// error.
func (s *Service) Delete(ctx context.Context, sess *session.Session, id string) error {
	if !sess.Active() {
		return ErrNoActiveSession
	}
	username := sess.Username()

	stored := s.load(ctx, username)
	remaining := stored[:0]
	for _, n := range stored {
		if n.ID != id {
			remaining = append(remaining, n)
		}
	}

	if err := s.store(ctx, username, remaining); err != nil {
		return err
	}

	s.notes = s.load(ctx, username)
	s.log.Info("note deleted", "username", username, "note_id", id)
	return nil
}

// Find returns the in-memory note with the given id.
func (s *Service) Find(sess *session.Session, id string) (Note, error) {
	if !sess.Active() {
		return Note{}, ErrNoActiveSession
	}

	for _, n := range s.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, ErrNotFound
}

func (s *Service) load(ctx context.Context, username string) []Note {
	raw, err := s.kv.Get(ctx, storage.NotesKey(username))
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("failed to read note collection, falling back to empty",
			"username", username, "error", err)
		return nil
	}

	var notes []Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		s.log.Warn("failed to decode note collection, falling back to empty",
			"username", username, "error", err)
		return nil
	}
	return notes
}

func (s *Service) store(ctx context.Context, username string, notes []Note) error {
	if notes == nil {
		notes = []Note{}
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode note collection: %w", err)
	}
	if err := s.kv.Set(ctx, storage.NotesKey(username), raw); err != nil {
		s.log.Error("failed to persist note collection", "username", username, "error", err)
		return fmt.Errorf("persist note collection: %w", err)
	}
	return nil
}
