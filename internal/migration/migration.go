package migration

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/database"
)

//go:embed sql/*.sql
var files embed.FS

type Migrate struct {
	Db *database.PostgreSQL
}

func (m *Migrate) new() (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", src, m.Db.ConnectionURI())
}

func (m *Migrate) MigrateUp() error {
	mig, err := m.new()
	if err != nil {
		return err
	}
	err = mig.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func (m *Migrate) MigrateDown() error {
	mig, err := m.new()
	if err != nil {
		return err
	}
	err = mig.Down()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
