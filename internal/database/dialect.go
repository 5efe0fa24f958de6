package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Dialect is the registered database/sql driver name of a supported backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "pgx"
)

func DialectFor(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case SQLite, MySQL, Postgres:
		return Dialect(driver), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// DialectOf returns the dialect of an open handle.
func DialectOf(db *sqlx.DB) Dialect {
	return Dialect(db.DriverName())
}

// DateExpr renders a DATE column as YYYY-MM-DD text.
func (d Dialect) DateExpr(col string) string {
	switch d {
	case MySQL:
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", col)
	case Postgres:
		return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM-DD')", col)
	default:
		return col
	}
}

// SupportsLastInsertID reports whether sql.Result.LastInsertId works; PostgreSQL
// needs INSERT ... RETURNING instead.
func (d Dialect) SupportsLastInsertID() bool {
	return d != Postgres
}

// InsertIgnore renders an INSERT that silently skips rows violating a unique
// constraint. values is the parenthesised placeholder list.
func (d Dialect) InsertIgnore(table, columns, values string) string {
	switch d {
	case MySQL:
		return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES %s", table, columns, values)
	case Postgres:
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s ON CONFLICT DO NOTHING", table, columns, values)
	default:
		return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES %s", table, columns, values)
	}
}
