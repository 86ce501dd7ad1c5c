package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for SQLite driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrator — the surface of migrate.Migrate this package needs.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// Engine — factory producing a Migrator for a database URL, injectable so
// tests never touch a real database.
type Engine func(databaseURL string) (Migrator, error)

// DefaultEngine runs the embedded migrations against a real database.
func DefaultEngine(databaseURL string) (Migrator, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

type Migration struct {
	databaseURL string
	engine      Engine
}

func NewMigration(databaseURL string, engine Engine) *Migration {
	return &Migration{
		databaseURL: databaseURL,
		engine:      engine,
	}
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}
