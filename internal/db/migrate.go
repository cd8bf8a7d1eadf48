package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// goose names dialects differently from database/sql drivers
func gooseDialect(driver string) string {
	switch driver {
	case "sqlite":
		return "sqlite3"
	case "pgx":
		return "postgres"
	default:
		return driver
	}
}

func prepareGoose(driver string) error {
	err := goose.SetDialect(gooseDialect(driver))
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	goose.SetBaseFS(migrations)
	return nil
}

// RunMigrations brings the schema up to date from the embedded migration
// files. Called on every startup; goose no-ops when nothing is pending.
func RunMigrations(db *sql.DB, driver string) error {
	err := prepareGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Up(db, ".")
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("migrations up to date")
	return nil
}

func MigrateDown(db *sql.DB, driver string) error {
	err := prepareGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Down(db, ".")
	if err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	slog.Info("rolled back one migration")
	return nil
}
