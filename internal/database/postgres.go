package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type PgMessageBoardRepository struct {
	conn *sql.DB
}

func NewPgMessageBoardRepository(dsn string) (*PgMessageBoardRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PgMessageBoardRepository{conn: db}, nil
}

func (db *PgMessageBoardRepository) Ping() error {
	return db.conn.Ping()
}

// Migrate applies the embedded schema migrations. It is safe to run on every
// startup; an up-to-date schema is not an error.
func (db *PgMessageBoardRepository) Migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db.conn, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (db *PgMessageBoardRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
