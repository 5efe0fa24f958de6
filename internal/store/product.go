package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"optimanager/m/domain"
	"optimanager/m/internal/database"
)

const productColumns = `id, name, brand, type, price, purchase_rate, quantity, barcode, frame_size, material, color`

func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := s.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY name ASC`)
	return products, err
}

func (s *Store) Product(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := s.db.GetContext(ctx, &p, s.db.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// CreateProduct inserts p and returns the stored record. Blank optional text
// fields are stored as NULL so an empty barcode never collides.
func (s *Store) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p = sanitizeProduct(p)
	id, err := s.insert(ctx, s.db, `INSERT INTO products
        (name, brand, frame_size, material, color, type, price, purchase_rate, quantity, barcode)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Brand, p.FrameSize, p.Material, p.Color, p.Type, p.Price, p.PurchaseRate, p.Quantity, p.Barcode)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("barcode %w", ErrDuplicate)
		}
		return domain.Product{}, err
	}
	return s.Product(ctx, id)
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	p = sanitizeProduct(p)
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE products SET
        name = ?, brand = ?, frame_size = ?, material = ?, color = ?,
        type = ?, price = ?, purchase_rate = ?, quantity = ?, barcode = ?
        WHERE id = ?`),
		p.Name, p.Brand, p.FrameSize, p.Material, p.Color, p.Type, p.Price, p.PurchaseRate, p.Quantity, p.Barcode, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("barcode %w", ErrDuplicate)
		}
		return domain.Product{}, err
	}
	// MySQL reports zero affected rows for an unchanged match, so a missing
	// product is detected by the re-read instead.
	return s.Product(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
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

func sanitizeProduct(p domain.Product) domain.Product {
	p.Brand = nullIfEmpty(p.Brand)
	p.FrameSize = nullIfEmpty(p.FrameSize)
	p.Material = nullIfEmpty(p.Material)
	p.Color = nullIfEmpty(p.Color)
	p.Barcode = nullIfEmpty(p.Barcode)
	return p
}
