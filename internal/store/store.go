// Package store is the model layer: one set of parameterized statements per
// entity, written with '?' placeholders and rebound for the active driver.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"optimanager/m/internal/database"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrReferenced        = errors.New("referenced by sales")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptySale         = errors.New("sale has no items")
)

const dateLayout = "2006-01-02"

// Store wraps the database handle shared by all entity operations.
type Store struct {
	db      *sqlx.DB
	dialect database.Dialect
	now     func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, dialect: database.DialectOf(db), now: time.Now}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) today() string {
	return s.now().Format(dateLayout)
}

// insert executes an INSERT and returns the generated id.
func (s *Store) insert(ctx context.Context, ext sqlx.ExtContext, query string, args ...any) (int64, error) {
	if !s.dialect.SupportsLastInsertID() {
		var id int64
		err := sqlx.GetContext(ctx, ext, &id, ext.Rebind(query+" RETURNING id"), args...)
		return id, err
	}
	res, err := ext.ExecContext(ctx, ext.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// exists reports whether query (a single-row existence probe) yields a row.
func (s *Store) exists(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (bool, error) {
	var n int64
	if err := sqlx.GetContext(ctx, q, &n, s.db.Rebind(query), args...); err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullIfEmpty(val *string) *string {
	if val == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
