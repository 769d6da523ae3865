package postgres

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq" // Register the postgres driver for migrations.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate opens a plain database/sql connection and applies all pending
// schema migrations. Runs at startup before the GORM connection is used.
func Migrate(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("opening database for migrations: %w", err)
	}
	defer db.Close()

	return MigrateDB(db)
}

// MigrateDB applies all pending schema migrations over an existing
// connection.
func MigrateDB(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
