package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Init opens the database and configures the connection pool. The sqlite
// driver gets a small pool because sqlite serializes writers; postgres gets
// room to breathe.
func Init(driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" && !strings.HasPrefix(connection, ":memory:") {
		dir := filepath.Dir(strings.SplitN(connection, "?", 2)[0])
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	database, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if driver == "sqlite" {
		database.SetMaxOpenConns(4)
		database.SetMaxIdleConns(2)
	} else {
		database.SetMaxOpenConns(25)
		database.SetMaxIdleConns(5)
	}
	database.SetConnMaxLifetime(5 * time.Minute)

	err = database.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return database, nil
}
