package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/AmiraAbdelhalim/fyyur/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Migrator applies the embedded migration chain.
type Migrator struct {
	db    *sql.DB
	m     *migrate.Migrate
	chain []migrations.Revision
}

// NewMigrator verifies the embedded chain before touching the database.
func NewMigrator(dsn string) (*Migrator, error) {
	chain, err := migrations.Chain()
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	if err := migrations.Verify(chain); err != nil {
		return nil, fmt.Errorf("verify migrations: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Migrator{db: db, m: m, chain: chain}, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	mg.logVersion("migrations applied")
	return nil
}

// Down rolls back the newest applied migration only.
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	mg.logVersion("migration rolled back")
	return nil
}

// Version returns the applied version and its revision id; 0 and "" when
// nothing has been applied.
func (mg *Migrator) Version() (uint, string, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, fmt.Errorf("migrate version: %w", err)
	}
	return v, revisionID(mg.chain, v), dirty, nil
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) {
	v, rev, dirty, err := mg.Version()
	if err != nil {
		log.Warn().Err(err).Msg(msg)
		return
	}
	log.Info().Uint("version", v).Str("revision", rev).Bool("dirty", dirty).Msg(msg)
}

func revisionID(chain []migrations.Revision, version uint) string {
	for _, r := range chain {
		if r.Version == version {
			return r.ID
		}
	}
	return ""
}

// MigrateUp is the one-shot used at server start.
func MigrateUp(dsn string) error {
	mg, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}
