package store

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"optimanager/m/domain"
)

const (
	revenueWindowDays = 30
	bestSellerLimit   = 10
)

// FullReport gathers the analytics dashboard. The four aggregates are
// independent and run concurrently.
func (s *Store) FullReport(ctx context.Context) (domain.FullReport, error) {
	report := domain.FullReport{
		SalesOverTime: []domain.DailyRevenue{},
		SalesByType:   []domain.TypeRevenue{},
		BestSellers:   []domain.BestSeller{},
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.salesOverTime(ctx, &report.SalesOverTime)
	})
	g.Go(func() error {
		return s.salesByType(ctx, &report.SalesByType)
	})
	g.Go(func() error {
		return s.bestSellers(ctx, &report.BestSellers)
	})
	g.Go(func() error {
		profit, err := s.totalProfit(ctx)
		report.TotalProfit = profit
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.FullReport{}, err
	}
	return report, nil
}

func (s *Store) salesOverTime(ctx context.Context, dest *[]domain.DailyRevenue) error {
	since := s.now().AddDate(0, 0, -revenueWindowDays).Format(dateLayout)
	query := `SELECT ` + s.dialect.DateExpr("sale_date") + ` AS sale_date, SUM(total_amount) AS daily_revenue
        FROM sales
        WHERE sale_date >= ?
        GROUP BY sale_date
        ORDER BY sale_date ASC`
	if err := s.db.SelectContext(ctx, dest, s.db.Rebind(query), since); err != nil {
		return err
	}
	for i := range *dest {
		(*dest)[i].DailyRevenue = (*dest)[i].DailyRevenue.Round(2)
	}
	return nil
}

func (s *Store) salesByType(ctx context.Context, dest *[]domain.TypeRevenue) error {
	err := s.db.SelectContext(ctx, dest, `SELECT p.type AS type, SUM(si.quantity * si.price_at_sale) AS type_revenue
        FROM sale_items si
        JOIN products p ON p.id = si.product_id
        GROUP BY p.type
        ORDER BY type_revenue DESC`)
	if err != nil {
		return err
	}
	for i := range *dest {
		(*dest)[i].TypeRevenue = (*dest)[i].TypeRevenue.Round(2)
	}
	return nil
}

func (s *Store) bestSellers(ctx context.Context, dest *[]domain.BestSeller) error {
	query := `SELECT p.id AS product_id, p.name AS product_name, p.brand AS product_brand,
            SUM(si.quantity) AS total_units_sold,
            SUM(si.quantity * si.price_at_sale) AS total_revenue
        FROM sale_items si
        JOIN products p ON p.id = si.product_id
        GROUP BY p.id, p.name, p.brand
        ORDER BY total_units_sold DESC, p.name ASC
        LIMIT ?`
	if err := s.db.SelectContext(ctx, dest, s.db.Rebind(query), bestSellerLimit); err != nil {
		return err
	}
	for i := range *dest {
		(*dest)[i].TotalRevenue = (*dest)[i].TotalRevenue.Round(2)
	}
	return nil
}

// totalProfit only counts items whose product has a known purchase rate.
func (s *Store) totalProfit(ctx context.Context) (decimal.Decimal, error) {
	var profit decimal.Decimal
	err := s.db.GetContext(ctx, &profit, `SELECT COALESCE(SUM((si.price_at_sale - p.purchase_rate) * si.quantity), 0)
        FROM sale_items si
        JOIN products p ON p.id = si.product_id
        WHERE p.purchase_rate IS NOT NULL`)
	return profit.Round(2), err
}
