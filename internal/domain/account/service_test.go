package account

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/infrastructure/storage"
	"notekeeper/internal/infrastructure/storage/memory"
)

// MockKV is a mock implementation of the storage.KV interface for testing
// failure paths the memory store cannot produce.
type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKV) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKV) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestService(kv storage.KV) *Service {
	return NewService(kv, NewPINValidator(), slog.Default())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	kv := memory.New()
	service := newTestService(kv)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "alice", "1234"))

	sess, err := service.Authenticate(ctx, "alice", "1234")
	require.NoError(t, err)
	assert.True(t, sess.Active())
	assert.Equal(t, "alice", sess.Username())

	last, ok := service.LastUsername(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", last)
}

func TestRegisterStoresHashedPIN(t *testing.T) {
	kv := memory.New()
	service := newTestService(kv)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "alice", "1234"))

	raw, err := kv.Get(ctx, storage.ProfileKey("alice"))
	require.NoError(t, err)

	var profile Profile
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.NotContains(t, profile.PINHash, "1234")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(profile.PINHash), []byte("1234")))
	assert.Greater(t, profile.CreatedAt, int64(0))
}

func TestRegisterCreatesEmptyNoteCollection(t *testing.T) {
	kv := memory.New()
	service := newTestService(kv)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "alice", "1234"))

	raw, err := kv.Get(ctx, storage.NotesKey("alice"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestRegisterDuplicate(t *testing.T) {
	kv := memory.New()
	service := newTestService(kv)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "alice", "1234"))

	err := service.Register(ctx, "alice", "5678")
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	// The failed attempt must not grow the registry.
	assert.Equal(t, []string{"alice"}, service.Accounts(ctx))
}

func TestRegisterInvalidInput(t *testing.T) {
	service := newTestService(memory.New())
	ctx := context.Background()

	assert.ErrorIs(t, service.Register(ctx, "alice", "12"), ErrInvalidInput)
	assert.ErrorIs(t, service.Register(ctx, "a", "1234"), ErrInvalidInput)
	assert.Empty(t, service.Accounts(ctx))
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	service := newTestService(memory.New())

	_, err := service.Authenticate(context.Background(), "nobody", "1234")
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestAuthenticateWrongPIN(t *testing.T) {
	kv := memory.New()
	service := newTestService(kv)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "alice", "1234"))
	_, err := service.Authenticate(ctx, "alice", "9999")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	// A failed attempt must not record a last user.
	_, ok := service.LastUsername(ctx)
	assert.False(t, ok)
}

func TestAuthenticateTrusted(t *testing.T) {
	kv := memory.New()
	service := newTestService(kv)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "alice", "1234"))

	sess, err := service.AuthenticateTrusted(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username())

	last, ok := service.LastUsername(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", last)
}

func TestAuthenticateTrustedStaleUser(t *testing.T) {
	service := newTestService(memory.New())

	// A stale last-user pointer to an account without a profile must not
	// open a session.
	_, err := service.AuthenticateTrusted(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestAccountsOrderedByRegistration(t *testing.T) {
	service := newTestService(memory.New())
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "carol", "1234"))
	require.NoError(t, service.Register(ctx, "alice", "1234"))
	require.NoError(t, service.Register(ctx, "bob", "1234"))

	assert.Equal(t, []string{"carol", "alice", "bob"}, service.Accounts(ctx))
}

func TestAccountsSwallowsStorageErrors(t *testing.T) {
	mockKV := new(MockKV)
	service := newTestService(mockKV)

	mockKV.On("Get", mock.Anything, storage.UsersKey).Return(nil, errors.New("disk on fire"))

	assert.Empty(t, service.Accounts(context.Background()))
	mockKV.AssertExpectations(t)
}

func TestAccountsSwallowsCorruptRegistry(t *testing.T) {
	mockKV := new(MockKV)
	service := newTestService(mockKV)

	mockKV.On("Get", mock.Anything, storage.UsersKey).Return([]byte("{not json"), nil)

	assert.Empty(t, service.Accounts(context.Background()))
	mockKV.AssertExpectations(t)
}

func TestLastUsernameMissing(t *testing.T) {
	service := newTestService(memory.New())

	_, ok := service.LastUsername(context.Background())
	assert.False(t, ok)
}

func TestAuthenticateSurvivesLastUserWriteFailure(t *testing.T) {
	mockKV := new(MockKV)
	service := newTestService(mockKV)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	require.NoError(t, err)
	profile, err := json.Marshal(Profile{Username: "alice", PINHash: string(hash)})
	require.NoError(t, err)

	mockKV.On("Get", mock.Anything, storage.ProfileKey("alice")).Return(profile, nil)
	mockKV.On("Set", mock.Anything, storage.LastUserKey, []byte("alice")).Return(errors.New("disk full"))

	sess, err := service.Authenticate(ctx, "alice", "1234")
	require.NoError(t, err)
	assert.True(t, sess.Active())
	mockKV.AssertExpectations(t)
}
