package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", withForeignKeys(":memory:"))
	assert.Equal(t, "file:x.db?cache=shared&_pragma=foreign_keys(1)", withForeignKeys("file:x.db?cache=shared"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", withForeignKeys("x.db?_pragma=foreign_keys(0)"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	require.Error(t, err)
}

func TestDateExpr(t *testing.T) {
	assert.Equal(t, "s.sale_date", SQLite.DateExpr("s.sale_date"))
	assert.Equal(t, "DATE_FORMAT(s.sale_date, '%Y-%m-%d')", MySQL.DateExpr("s.sale_date"))
	assert.Equal(t, "TO_CHAR(s.sale_date, 'YYYY-MM-DD')", Postgres.DateExpr("s.sale_date"))
	assert.False(t, Postgres.SupportsLastInsertID())
	assert.True(t, MySQL.SupportsLastInsertID())
}

func TestSQLiteConstraintClassification(t *testing.T) {
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, SQLite, DialectOf(db))

	db.MustExec(`CREATE TABLE parents (id INTEGER PRIMARY KEY, code TEXT UNIQUE)`)
	db.MustExec(`CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parents(id))`)
	db.MustExec(`INSERT INTO parents (id, code) VALUES (1, 'a')`)
	db.MustExec(`INSERT INTO children (parent_id) VALUES (1)`)

	_, err = db.Exec(`DELETE FROM parents WHERE id = 1`)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))

	_, err = db.Exec(`INSERT INTO parents (id, code) VALUES (2, 'a')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
}

func TestDriverErrorClassification(t *testing.T) {
	referenced := fmt.Errorf("delete: %w", &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})
	assert.True(t, IsForeignKeyViolation(referenced))
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))

	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestInsertIgnore(t *testing.T) {
	assert.Equal(t, "INSERT OR IGNORE INTO t (a, b) VALUES (?, ?)", SQLite.InsertIgnore("t", "a, b", "(?, ?)"))
	assert.Equal(t, "INSERT IGNORE INTO t (a, b) VALUES (?, ?)", MySQL.InsertIgnore("t", "a, b", "(?, ?)"))
	assert.Equal(t, "INSERT INTO t (a, b) VALUES (?, ?) ON CONFLICT DO NOTHING", Postgres.InsertIgnore("t", "a, b", "(?, ?)"))
}
