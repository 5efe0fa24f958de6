package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"optimanager/m/domain"
	"optimanager/m/internal/database"
	"optimanager/m/internal/migrations"
)

var fixedNow = time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db))

	s := New(db)
	s.now = func() time.Time { return fixedNow }
	return s
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustProduct(t *testing.T, s *Store, name, typ, price string, qty int64) domain.Product {
	t.Helper()
	p, err := s.CreateProduct(context.Background(), domain.Product{Name: name, Type: typ, Price: dec(price), Quantity: qty})
	require.NoError(t, err)
	return p
}

func mustCustomer(t *testing.T, s *Store, name string) domain.Customer {
	t.Helper()
	c, err := s.CreateCustomer(context.Background(), domain.Customer{Name: name})
	require.NoError(t, err)
	return c
}

func count(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}
