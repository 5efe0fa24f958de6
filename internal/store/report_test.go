package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optimanager/m/domain"
)

func TestFullReportEmpty(t *testing.T) {
	s := newTestStore(t)

	report, err := s.FullReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.SalesOverTime)
	assert.Empty(t, report.SalesByType)
	assert.Empty(t, report.BestSellers)
	assert.True(t, report.TotalProfit.IsZero())
}

func TestFullReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "C")

	frame, err := s.CreateProduct(ctx, domain.Product{
		Name: "Frame", Brand: strPtr("Titan"), Type: domain.TypeFrames,
		Price: dec("100"), PurchaseRate: decimal.NewNullDecimal(dec("60")), Quantity: 10,
	})
	require.NoError(t, err)
	lens := mustProduct(t, s, "Lens", domain.TypeLenses, "40", 10)

	_, err = s.CreateSale(ctx, NewSale{CustomerID: c.ID, TotalAmount: dec("280"), Items: []domain.SaleItem{
		{ProductID: frame.ID, Quantity: 2, PriceAtSale: dec("100")},
		{ProductID: lens.ID, Quantity: 2, PriceAtSale: dec("40")},
	}})
	require.NoError(t, err)

	// An old sale outside the revenue window still counts toward totals.
	s.now = func() time.Time { return fixedNow.AddDate(0, -2, 0) }
	_, err = s.CreateSale(ctx, NewSale{CustomerID: c.ID, TotalAmount: dec("160"), Items: []domain.SaleItem{
		{ProductID: lens.ID, Quantity: 4, PriceAtSale: dec("40")},
	}})
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }

	report, err := s.FullReport(ctx)
	require.NoError(t, err)

	require.Len(t, report.SalesOverTime, 1)
	assert.Equal(t, "2026-10-15", report.SalesOverTime[0].SaleDate)
	assert.True(t, dec("280").Equal(report.SalesOverTime[0].DailyRevenue))

	require.Len(t, report.SalesByType, 2)
	assert.Equal(t, domain.TypeLenses, report.SalesByType[0].Type)
	assert.True(t, dec("240").Equal(report.SalesByType[0].TypeRevenue))
	assert.Equal(t, domain.TypeFrames, report.SalesByType[1].Type)
	assert.True(t, dec("200").Equal(report.SalesByType[1].TypeRevenue))

	require.Len(t, report.BestSellers, 2)
	assert.Equal(t, "Lens", report.BestSellers[0].ProductName)
	assert.EqualValues(t, 6, report.BestSellers[0].TotalUnitsSold)
	assert.Nil(t, report.BestSellers[0].ProductBrand)
	assert.Equal(t, "Frame", report.BestSellers[1].ProductName)
	assert.Equal(t, "Titan", *report.BestSellers[1].ProductBrand)
	assert.True(t, dec("200").Equal(report.BestSellers[1].TotalRevenue))

	// Only the frame has a purchase rate: (100-60)*2.
	assert.True(t, dec("80").Equal(report.TotalProfit), report.TotalProfit.String())
}
