package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/domain/session"
	"notekeeper/internal/infrastructure/storage"
)

// Servicer manages the account registry and hands out session handles. The
// handle returned by the authenticate calls gates every note-collection
// operation.
type Servicer interface {
	Accounts(ctx context.Context) []string
	LastUsername(ctx context.Context) (string, bool)
	Register(ctx context.Context, username, pin string) error
	Authenticate(ctx context.Context, username, pin string) (*session.Session, error)
	AuthenticateTrusted(ctx context.Context, username string) (*session.Session, error)
}

type Service struct {
	kv        storage.KV
	validator Validator
	log       *slog.Logger
	now       func() time.Time
}

func NewService(kv storage.KV, validator Validator, log *slog.Logger) *Service {
	return &Service{
		kv:        kv,
		validator: validator,
		log:       log.With("component", "account_service"),
		now:       time.Now,
	}
}

// Accounts returns the registry of known usernames in registration order.
// Storage failures are reported as an empty registry, never as an error.
func (s *Service) Accounts(ctx context.Context) []string {
	raw, err := s.kv.Get(ctx, storage.UsersKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("failed to read account registry", "error", err)
		return nil
	}

	var usernames []string
	if err := json.Unmarshal(raw, &usernames); err != nil {
		s.log.Warn("failed to decode account registry", "error", err)
		return nil
	}
	return usernames
}

// LastUsername returns the most recently authenticated username, if any.
func (s *Service) LastUsername(ctx context.Context) (string, bool) {
	raw, err := s.kv.Get(ctx, storage.LastUserKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("failed to read last user", "error", err)
		}
		return "", false
	}
	if len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// Register creates a new account: an empty note collection, a credential
// profile, and a registry entry, in that order. A crash in between leaves a
// partial account; there is no multi-key transaction to lean on.
func (s *Service) Register(ctx context.Context, username, pin string) error {
	if err := s.validator.ValidateRegister(username, pin); err != nil {
		s.log.Debug("registration validation failed", "username", username, "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	usernames := s.Accounts(ctx)
	if slices.Contains(usernames, username) {
		return ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}

	if err := s.kv.Set(ctx, storage.NotesKey(username), []byte("[]")); err != nil {
		return fmt.Errorf("initialize note collection: %w", err)
	}

	profile := Profile{
		Username:  username,
		PINHash:   string(hash),
		CreatedAt: s.now().UnixMilli(),
	}
	rawProfile, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, storage.ProfileKey(username), rawProfile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	usernames = append(usernames, username)
	rawUsers, err := json.Marshal(usernames)
	if err != nil {
		return fmt.Errorf("encode account registry: %w", err)
	}
	if err := s.kv.Set(ctx, storage.UsersKey, rawUsers); err != nil {
		return fmt.Errorf("save account registry: %w", err)
	}

	s.log.Info("account registered", "username", username)
	return nil
}

// Authenticate verifies the PIN against the stored credential record and, on
// success, records the username as the last authenticated user and returns a
// fresh session handle.
func (s *Service) Authenticate(ctx context.Context, username, pin string) (*session.Session, error) {
	profile, err := s.profile(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PINHash), []byte(pin)); err != nil {
		s.log.Debug("pin mismatch", "username", username)
		return nil, ErrInvalidCredential
	}

	s.recordLastUser(ctx, username)
	s.log.Info("authenticated", "username", username)
	return session.New(username), nil
}

// AuthenticateTrusted behaves like Authenticate minus the PIN check. It is
// meant for callers that already passed an external device-trust or biometric
// verification. The profile lookup stays, so a stale last-user pointer to an
// account that no longer exists cannot open a session.
func (s *Service) AuthenticateTrusted(ctx context.Context, username string) (*session.Session, error) {
	if _, err := s.profile(ctx, username); err != nil {
		return nil, err
	}

	s.recordLastUser(ctx, username)
	s.log.Info("authenticated via trusted device", "username", username)
	return session.New(username), nil
}

func (s *Service) profile(ctx context.Context, username string) (Profile, error) {
	raw, err := s.kv.Get(ctx, storage.ProfileKey(username))
	if errors.Is(err, storage.ErrNotFound) {
		return Profile{}, ErrUnknownAccount
	}
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func (s *Service) recordLastUser(ctx context.Context, username string) {
	if err := s.kv.Set(ctx, storage.LastUserKey, []byte(username)); err != nil {
		// The session is still valid; only trusted re-entry next time suffers.
		s.log.Warn("failed to record last user", "username", username, "error", err)
	}
}
