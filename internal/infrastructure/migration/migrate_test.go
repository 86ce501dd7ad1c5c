package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMigrator is a mock for the Migrator interface.
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	engine := func(databaseURL string) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration("sqlite3://test.db", engine)
	err := mg.Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(databaseURL string) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration("sqlite3://test.db", engine)
	err := mg.Up()

	assert.NoError(t, err, "a schema already up to date is not an error")
	mockM.AssertExpectations(t)
}

func TestMigration_Up_Error(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("broken schema"))
	mockM.On("Close").Return(nil, nil)

	engine := func(databaseURL string) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration("sqlite3://test.db", engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken schema")
	mockM.AssertExpectations(t)
}

func TestMigration_Up_EngineError(t *testing.T) {
	engine := func(databaseURL string) (Migrator, error) {
		return nil, errors.New("cannot open database")
	}

	mg := NewMigration("sqlite3://test.db", engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open database")
}

func TestMigration_Up_CloseErrorsAreReported(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(errors.New("source close failed"), nil)

	engine := func(databaseURL string) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration("sqlite3://test.db", engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "source close failed")
	mockM.AssertExpectations(t)
}
