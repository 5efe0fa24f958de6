package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optimanager/m/domain"
	"optimanager/m/internal/auth"
	"optimanager/m/internal/database"
	"optimanager/m/internal/migrations"
	"optimanager/m/internal/store"
)

const catalog = `name,brand,type,price,purchase_rate,quantity,barcode,frame_size,material,color
Aviator,Ray-Ban,Sunglasses,150.00,90.00,4,RB-3025,58-14-135,Metal,Gold
Daily Lenses,Acuvue,Contact Lenses,35.50,,30,,,,
Broken,Nobody,Hats,1,,1,,,,
Bad Price,Nobody,Frames,abc,,1,,,,
Round Frame,,Frames,80,40,2
`

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db))
	return db
}

func TestLoadProducts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := loadProducts(ctx, db, strings.NewReader(catalog))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	products, err := store.New(db).Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	byName := map[string]domain.Product{}
	for _, p := range products {
		byName[p.Name] = p
	}
	aviator := byName["Aviator"]
	assert.Equal(t, domain.TypeSunglasses, aviator.Type)
	assert.True(t, aviator.Price.Equal(decimal.NewFromInt(150)))
	assert.True(t, aviator.PurchaseRate.Valid)
	require.NotNil(t, aviator.Barcode)
	assert.Equal(t, "RB-3025", *aviator.Barcode)

	lenses := byName["Daily Lenses"]
	assert.False(t, lenses.PurchaseRate.Valid)
	assert.Nil(t, lenses.Barcode)
	assert.Equal(t, int64(30), lenses.Quantity)

	assert.Nil(t, byName["Round Frame"].Brand)
}

func TestLoadProductsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := loadProducts(ctx, db, strings.NewReader(catalog))
	require.NoError(t, err)
	n, err := loadProducts(ctx, db, strings.NewReader(catalog))
	require.NoError(t, err)
	assert.Zero(t, n)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM products`))
	assert.Equal(t, 3, count)
}

func TestLoadProductsFromFile(t *testing.T) {
	db := newTestDB(t)
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	n, err := LoadProducts(context.Background(), db, path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = LoadProducts(context.Background(), db, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	s := store.New(db)
	svc := auth.NewService(s, auth.NewTokens("secret", time.Hour))

	require.NoError(t, EnsureAdmin(ctx, svc, "", "owner@shop.test", "pw"))
	require.NoError(t, EnsureAdmin(ctx, svc, "Owner", "owner@shop.test", "other"))

	user, err := s.UserByEmail(ctx, "owner@shop.test")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "Administrator", user.Name)
	assert.True(t, auth.CheckPassword(user.Password, "pw"))

	require.NoError(t, EnsureAdmin(ctx, svc, "Nobody", "", ""))
	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, count)
}
