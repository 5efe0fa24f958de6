package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optimanager/m/domain"
)

func TestCreateSaleScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "C")
	p := mustProduct(t, s, "P", domain.TypeFrames, "75.5", 5)

	sale, err := s.CreateSale(ctx, NewSale{
		CustomerID:  c.ID,
		TotalAmount: dec("226.5"),
		Items:       []domain.SaleItem{{ProductID: p.ID, Quantity: 3, PriceAtSale: p.Price}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, sale.Status)
	assert.Equal(t, "2026-10-15", sale.SaleDate)
	assert.Equal(t, "C", sale.CustomerName)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "P", sale.Items[0].ProductName)
	assert.Equal(t, sale.ID, sale.Items[0].SaleID)

	stored, err := s.Sale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", stored.CustomerName)
	assert.Equal(t, domain.StatusProcessing, stored.Status)
	assert.True(t, p.Price.Mul(dec("3")).Equal(stored.TotalAmount))
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "P", stored.Items[0].ProductName)
	assert.EqualValues(t, 3, stored.Items[0].Quantity)

	after, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, after.Quantity)

	_, err = s.CreateSale(ctx, NewSale{
		CustomerID:  c.ID,
		TotalAmount: dec("226.5"),
		Items:       []domain.SaleItem{{ProductID: p.ID, Quantity: 3, PriceAtSale: p.Price}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	after, err = s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, after.Quantity)
	assert.Equal(t, 1, count(t, s, "sales"))
	assert.Equal(t, 1, count(t, s, "sale_items"))
}

func TestCreateSaleRollsBackEarlierItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "C")
	frame := mustProduct(t, s, "Frame", domain.TypeFrames, "100", 4)
	lens := mustProduct(t, s, "Lens", domain.TypeLenses, "50", 1)

	_, err := s.CreateSale(ctx, NewSale{
		CustomerID:  c.ID,
		TotalAmount: dec("300"),
		Items: []domain.SaleItem{
			{ProductID: frame.ID, Quantity: 2, PriceAtSale: dec("100")},
			{ProductID: lens.ID, Quantity: 2, PriceAtSale: dec("50")},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	f, err := s.Product(ctx, frame.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, f.Quantity)
	l, err := s.Product(ctx, lens.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.Quantity)
	assert.Zero(t, count(t, s, "sales"))
	assert.Zero(t, count(t, s, "sale_items"))
}

func TestCreateSaleSameProductTwiceCountsBothLines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "C")
	p := mustProduct(t, s, "Contact Lens Box", domain.TypeContactLenses, "30", 5)

	_, err := s.CreateSale(ctx, NewSale{
		CustomerID:  c.ID,
		TotalAmount: dec("180"),
		Items: []domain.SaleItem{
			{ProductID: p.ID, Quantity: 3, PriceAtSale: dec("30")},
			{ProductID: p.ID, Quantity: 3, PriceAtSale: dec("30")},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	after, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, after.Quantity)
}

func TestCreateSaleUnknownCustomer(t *testing.T) {
	s := newTestStore(t)
	p := mustProduct(t, s, "P", domain.TypeFrames, "10", 5)

	_, err := s.CreateSale(context.Background(), NewSale{
		CustomerID:  42,
		TotalAmount: dec("10"),
		Items:       []domain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: dec("10")}},
	})
	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Zero(t, count(t, s, "sales"))
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	s := newTestStore(t)
	c := mustCustomer(t, s, "C")

	_, err := s.CreateSale(context.Background(), NewSale{
		CustomerID:  c.ID,
		TotalAmount: dec("10"),
		Items:       []domain.SaleItem{{ProductID: 77, Quantity: 1, PriceAtSale: dec("10")}},
	})
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, count(t, s, "sales"))
	assert.Zero(t, count(t, s, "sale_items"))
}

func TestCreateSaleRequiresItems(t *testing.T) {
	s := newTestStore(t)
	c := mustCustomer(t, s, "C")

	_, err := s.CreateSale(context.Background(), NewSale{CustomerID: c.ID, TotalAmount: dec("1")})
	require.ErrorIs(t, err, ErrEmptySale)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "C")
	p := mustProduct(t, s, "Last Frames", domain.TypeFrames, "20", 5)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateSale(ctx, NewSale{
				CustomerID:  c.ID,
				TotalAmount: dec("20"),
				Items:       []domain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: dec("20")}},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrInsufficientStock) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	after, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, succeeded)
	assert.Zero(t, after.Quantity)
}

func TestSalesListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "Lakshmi")
	p := mustProduct(t, s, "P", domain.TypeFrames, "10", 5)

	var ids []int64
	for i := 0; i < 2; i++ {
		sale, err := s.CreateSale(ctx, NewSale{CustomerID: c.ID, TotalAmount: dec("10"),
			Items: []domain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: dec("10")}}})
		require.NoError(t, err)
		ids = append(ids, sale.ID)
	}

	sales, err := s.Sales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, ids[1], sales[0].ID)
	assert.Equal(t, "Lakshmi", sales[0].CustomerName)
	assert.Empty(t, sales[0].Items)

	_, err = s.Sale(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSaleStatusAllowsAnyTransition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "C")
	p := mustProduct(t, s, "P", domain.TypeLenses, "10", 5)
	sale, err := s.CreateSale(ctx, NewSale{CustomerID: c.ID, TotalAmount: dec("10"),
		Items: []domain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: dec("10")}}})
	require.NoError(t, err)

	for _, status := range []string{domain.StatusCompleted, domain.StatusProcessing, domain.StatusReadyForPickup, domain.StatusReadyForPickup} {
		updated, err := s.UpdateSaleStatus(ctx, sale.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = s.UpdateSaleStatus(ctx, sale.ID+10, domain.StatusCompleted)
	require.ErrorIs(t, err, ErrNotFound)
}
