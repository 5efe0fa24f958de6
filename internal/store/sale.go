package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"optimanager/m/domain"
	"optimanager/m/internal/database"
)

// NewSale is the input to CreateSale.
type NewSale struct {
	CustomerID  int64
	TotalAmount decimal.Decimal
	Items       []domain.SaleItem
}

func (s *Store) saleSelect() string {
	return `SELECT s.id, s.customer_id, c.name AS customer_name, ` + s.dialect.DateExpr("s.sale_date") + ` AS sale_date,
        s.total_amount, s.status
        FROM sales s
        JOIN customers c ON c.id = s.customer_id`
}

func (s *Store) Sales(ctx context.Context) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	err := s.db.SelectContext(ctx, &sales, s.saleSelect()+` ORDER BY s.sale_date DESC, s.id DESC`)
	return sales, err
}

// Sale returns a sale together with its line items.
func (s *Store) Sale(ctx context.Context, id int64) (domain.Sale, error) {
	var sale domain.Sale
	err := s.db.GetContext(ctx, &sale, s.db.Rebind(s.saleSelect()+` WHERE s.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return sale, ErrNotFound
	}
	if err != nil {
		return sale, err
	}
	sale.Items = []domain.SaleItem{}
	err = s.db.SelectContext(ctx, &sale.Items, s.db.Rebind(`SELECT si.sale_id, si.product_id, p.name AS product_name, si.quantity, si.price_at_sale
        FROM sale_items si
        JOIN products p ON p.id = si.product_id
        WHERE si.sale_id = ?
        ORDER BY si.id`), id)
	return sale, err
}

// CreateSale records a sale and its items and takes the sold quantities out of
// stock, all in one transaction. Any failure rolls the whole sale back.
func (s *Store) CreateSale(ctx context.Context, in NewSale) (domain.Sale, error) {
	if len(in.Items) == 0 {
		return domain.Sale{}, ErrEmptySale
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Sale{}, err
	}
	defer tx.Rollback()

	found, err := s.exists(ctx, tx, `SELECT COUNT(*) FROM customers WHERE id = ?`, in.CustomerID)
	if err != nil {
		return domain.Sale{}, err
	}
	if !found {
		return domain.Sale{}, fmt.Errorf("%w: id %d", ErrCustomerNotFound, in.CustomerID)
	}

	sale := domain.Sale{
		CustomerID:  in.CustomerID,
		SaleDate:    s.today(),
		TotalAmount: in.TotalAmount,
		Status:      domain.StatusProcessing,
	}
	sale.ID, err = s.insert(ctx, tx, `INSERT INTO sales (customer_id, sale_date, total_amount, status) VALUES (?, ?, ?, ?)`,
		sale.CustomerID, sale.SaleDate, sale.TotalAmount, sale.Status)
	if err != nil {
		return domain.Sale{}, err
	}

	for _, item := range in.Items {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO sale_items (sale_id, product_id, quantity, price_at_sale) VALUES (?, ?, ?, ?)`),
			sale.ID, item.ProductID, item.Quantity, item.PriceAtSale)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return domain.Sale{}, fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
			}
			return domain.Sale{}, err
		}
		if err := s.decrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return domain.Sale{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Sale{}, err
	}
	return s.Sale(ctx, sale.ID)
}

// decrementStock takes qty units of a product out of stock. The guard in the
// WHERE clause makes the check and the write one statement, so concurrent
// sales cannot drive the quantity below zero.
func (s *Store) decrementStock(ctx context.Context, tx *sqlx.Tx, productID, qty int64) error {
	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`),
		qty, productID, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var available int64
	err = tx.GetContext(ctx, &available, tx.Rebind(`SELECT quantity FROM products WHERE id = ?`), productID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w for product ID %d: %d available, %d requested", ErrInsufficientStock, productID, available, qty)
}

// UpdateSaleStatus overwrites the status of a sale. Transitions are not
// restricted; callers validate that status is a known value.
func (s *Store) UpdateSaleStatus(ctx context.Context, id int64, status string) (domain.Sale, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE sales SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Sale{}, err
	} else if n == 0 {
		found, err := s.exists(ctx, s.db, `SELECT COUNT(*) FROM sales WHERE id = ?`, id)
		if err != nil {
			return domain.Sale{}, err
		}
		if !found {
			return domain.Sale{}, ErrNotFound
		}
	}
	return s.Sale(ctx, id)
}
