package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

// Migrator wraps a golang-migrate instance bound to its own connection.
type Migrator struct {
	m  *migrate.Migrate
	db *sql.DB
}

// NewMigrator opens a dedicated connection for driver and loads the embedded
// migration set for it. dsn is a postgres URL or a sqlite file path.
func NewMigrator(driver, dsn string) (*Migrator, error) {
	var (
		sqlDriverName string
		openDSN       string
		sourceDir     string
	)
	switch driver {
	case "postgres":
		sqlDriverName, openDSN, sourceDir = "postgres", dsn, "migrations/postgres"
	case "sqlite":
		sqlDriverName, openDSN, sourceDir = "sqlite3", sqliteDSN(dsn), "migrations/sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	migrateDB, err := sql.Open(sqlDriverName, openDSN)
	if err != nil {
		return nil, fmt.Errorf("open migration database: %w", err)
	}

	var dbDriver database.Driver
	if driver == "postgres" {
		dbDriver, err = postgres.WithInstance(migrateDB, &postgres.Config{})
	} else {
		dbDriver, err = sqlite3.WithInstance(migrateDB, &sqlite3.Config{})
	}
	if err != nil {
		migrateDB.Close()
		return nil, fmt.Errorf("create %s migration driver: %w", driver, err)
	}

	src, err := iofs.New(migrationsFS, sourceDir)
	if err != nil {
		migrateDB.Close()
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, sqlDriverName, dbDriver)
	if err != nil {
		migrateDB.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Migrator{m: m, db: migrateDB}, nil
}

// Up applies all pending migrations. Running it on an up-to-date schema is a no-op.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Down rolls back every migration.
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	return nil
}

// Steps applies n migrations (negative n rolls back).
func (mg *Migrator) Steps(n int) error {
	if err := mg.m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %d steps: %w", n, err)
	}
	return nil
}

// Version reports the current schema version; version 0 means no migration ran.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// RunMigrations brings the schema for driver/dsn up to date.
func RunMigrations(driver, dsn string) error {
	mg, err := NewMigrator(driver, dsn)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}
