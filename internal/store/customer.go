package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"optimanager/m/domain"
	"optimanager/m/internal/database"
)

func (s *Store) customerSelect() string {
	return `SELECT id, name, phone, email, address,
        od_sph, od_cyl, od_axis, od_add, os_sph, os_cyl, os_axis, os_add,
        pd, notes, ` + s.dialect.DateExpr("date_added") + ` AS date_added, allow_whatsapp
        FROM customers`
}

func (s *Store) Customers(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := s.db.SelectContext(ctx, &customers, s.customerSelect()+` ORDER BY name ASC`)
	return customers, err
}

func (s *Store) Customer(ctx context.Context, id int64) (domain.Customer, error) {
	var c domain.Customer
	err := s.db.GetContext(ctx, &c, s.db.Rebind(s.customerSelect()+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

// CreateCustomer stores c with today's date as date_added.
func (s *Store) CreateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c = sanitizeCustomer(c)
	id, err := s.insert(ctx, s.db, `INSERT INTO customers (name, phone, email, address, date_added,
        od_sph, od_cyl, od_axis, od_add, os_sph, os_cyl, os_axis, os_add, pd, notes, allow_whatsapp)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Phone, c.Email, c.Address, s.today(),
		c.OdSph, c.OdCyl, c.OdAxis, c.OdAdd, c.OsSph, c.OsCyl, c.OsAxis, c.OsAdd, c.PD, c.Notes, c.AllowWhatsapp)
	if err != nil {
		return domain.Customer{}, err
	}
	return s.Customer(ctx, id)
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, c domain.Customer) (domain.Customer, error) {
	c = sanitizeCustomer(c)
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE customers SET name = ?, phone = ?, email = ?, address = ?,
        od_sph = ?, od_cyl = ?, od_axis = ?, od_add = ?,
        os_sph = ?, os_cyl = ?, os_axis = ?, os_add = ?,
        pd = ?, notes = ?, allow_whatsapp = ?
        WHERE id = ?`),
		c.Name, c.Phone, c.Email, c.Address,
		c.OdSph, c.OdCyl, c.OdAxis, c.OdAdd, c.OsSph, c.OsCyl, c.OsAxis, c.OsAdd,
		c.PD, c.Notes, c.AllowWhatsapp, id)
	if err != nil {
		return domain.Customer{}, err
	}
	return s.Customer(ctx, id)
}

// DeleteCustomer removes a customer; customers with sales cannot be deleted.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM customers WHERE id = ?`), id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrReferenced
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CustomerSales lists a customer's sales, newest first, each with the names
// of the products it contained.
func (s *Store) CustomerSales(ctx context.Context, customerID int64) ([]domain.CustomerSale, error) {
	sales := []domain.CustomerSale{}
	query := `SELECT id, ` + s.dialect.DateExpr("sale_date") + ` AS sale_date, total_amount
        FROM sales WHERE customer_id = ?
        ORDER BY sale_date DESC, id DESC`
	if err := s.db.SelectContext(ctx, &sales, s.db.Rebind(query), customerID); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	ids := make([]int64, len(sales))
	for i, sale := range sales {
		ids[i] = sale.ID
	}
	itemsQuery, args, err := sqlx.In(`SELECT si.sale_id, p.name
        FROM sale_items si
        JOIN products p ON p.id = si.product_id
        WHERE si.sale_id IN (?)
        ORDER BY si.id`, ids)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		SaleID int64  `db:"sale_id"`
		Name   string `db:"name"`
	}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(itemsQuery), args...); err != nil {
		return nil, err
	}
	names := make(map[int64][]string)
	for _, row := range rows {
		names[row.SaleID] = append(names[row.SaleID], row.Name)
	}
	for i := range sales {
		sales[i].ProductsSold = strings.Join(names[sales[i].ID], ", ")
	}
	return sales, nil
}

func (s *Store) CustomerReport(ctx context.Context, id int64) (domain.CustomerReport, error) {
	customer, err := s.Customer(ctx, id)
	if err != nil {
		return domain.CustomerReport{}, err
	}
	sales, err := s.CustomerSales(ctx, id)
	if err != nil {
		return domain.CustomerReport{}, err
	}
	return domain.CustomerReport{Customer: customer, Sales: sales}, nil
}

func sanitizeCustomer(c domain.Customer) domain.Customer {
	for _, f := range []**string{
		&c.Phone, &c.Email, &c.Address,
		&c.OdSph, &c.OdCyl, &c.OdAxis, &c.OdAdd,
		&c.OsSph, &c.OsCyl, &c.OsAxis, &c.OsAdd,
		&c.PD, &c.Notes,
	} {
		*f = nullIfEmpty(*f)
	}
	return c
}
