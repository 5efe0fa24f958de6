package database

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open connects to the database and verifies it is reachable.
func Open(driver, dsn string) (*sqlx.DB, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	if d == SQLite {
		dsn = withForeignKeys(dsn)
	}
	db, err := sqlx.Connect(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", d, err)
	}
	if d == SQLite {
		// A single writer avoids SQLITE_BUSY and keeps :memory: databases alive.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
	}
	return db, nil
}

// Connect opens the database or exits the process.
func Connect(driver, dsn string) *sqlx.DB {
	db, err := Open(driver, dsn)
	if err != nil {
		slog.Error("failed to connect to database", "driver", driver, "error", err)
		os.Exit(1)
	}
	return db
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
