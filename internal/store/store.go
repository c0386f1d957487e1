// Package store owns the local sqlite database. It only ever holds lookup caches, match data
// is always fetched fresh.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
)

// Direction selects which way Migrate moves the schema.
type Direction int

const (
	Up Direction = iota
	Down
)

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect = errors.New("db connect error")
	ErrMigrate   = errors.New("failed to migrate db schema")
	ErrNotFound  = errors.New("no matching record")
	ErrQuery     = errors.New("db query error")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dsn adds a busy timeout so a second running instance waits on the lock instead of failing.
func dsn(path string) string {
	if path == "" {
		return ":memory:"
	}

	return path + "?_pragma=busy_timeout(5000)"
}

// Open opens the database at path, creating it and bringing the schema up to date. An empty
// path opens a private in memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	connection, errOpen := sql.Open("sqlite", dsn(path))
	if errOpen != nil {
		return nil, errors.Join(errOpen, ErrDBConnect)
	}

	// A single connection serialises writes and keeps :memory: one database.
	connection.SetMaxOpenConns(1)

	if errPing := connection.PingContext(ctx); errPing != nil {
		_ = connection.Close()

		return nil, errors.Join(errPing, ErrDBConnect)
	}

	if errMigrate := Migrate(connection, Up); errMigrate != nil {
		_ = connection.Close()

		return nil, errors.Join(errMigrate, ErrDBConnect)
	}

	return connection, nil
}

// Migrate applies or reverts every embedded migration.
func Migrate(conn *sql.DB, direction Direction) error {
	driver, errDriver := sqlite.WithInstance(conn, &sqlite.Config{})
	if errDriver != nil {
		return errors.Join(errDriver, ErrMigrate)
	}

	source, errSource := httpfs.New(http.FS(migrations), "migrations")
	if errSource != nil {
		return errors.Join(errSource, ErrMigrate)
	}

	migrator, errInstance := migrate.NewWithInstance("httpfs", source, "sqlite", driver)
	if errInstance != nil {
		return errors.Join(errInstance, ErrMigrate)
	}

	apply := migrator.Up
	if direction == Down {
		apply = migrator.Down
	}

	if err := apply(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Join(err, ErrMigrate)
	}

	return nil
}
