package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"optimanager/m/domain"
	"optimanager/m/internal/database"
)

const productColumns = "name, brand, type, price, purchase_rate, quantity, barcode, frame_size, material, color"

// LoadProducts imports a product catalog CSV with the header
// name,brand,type,price,purchase_rate,quantity,barcode,frame_size,material,color.
// Rows whose barcode already exists, or whose name and brand match an existing
// product, are skipped. Malformed rows are logged and skipped. It returns the
// number of products inserted.
func LoadProducts(ctx context.Context, db *sqlx.DB, csvPath string) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open product catalog: %w", err)
	}
	defer file.Close()
	return loadProducts(ctx, db, file)
}

func loadProducts(ctx context.Context, db *sqlx.DB, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("read product header: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	dialect := database.DialectOf(db)
	insert, err := tx.PreparexContext(ctx, tx.Rebind(dialect.InsertIgnore("products", productColumns, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")))
	if err != nil {
		return 0, fmt.Errorf("prepare product insert: %w", err)
	}
	defer insert.Close()
	exists, err := tx.PreparexContext(ctx, tx.Rebind(`SELECT COUNT(*) FROM products WHERE name = ? AND COALESCE(brand, '') = ?`))
	if err != nil {
		return 0, fmt.Errorf("prepare product lookup: %w", err)
	}
	defer exists.Close()

	rows := 0
	row := 1
	for {
		record, err := reader.Read()
		row++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("unable to read product row", "row", row, "error", err)
			continue
		}
		p, err := parseProduct(record)
		if err != nil {
			slog.Warn("skipping product row", "row", row, "error", err)
			continue
		}

		brand := ""
		if p.Brand != nil {
			brand = *p.Brand
		}
		var n int
		if err := exists.GetContext(ctx, &n, p.Name, brand); err != nil {
			return rows, fmt.Errorf("look up product %s: %w", p.Name, err)
		}
		if n > 0 {
			continue
		}

		res, err := insert.ExecContext(ctx, p.Name, p.Brand, p.Type, p.Price, p.PurchaseRate, p.Quantity,
			p.Barcode, p.FrameSize, p.Material, p.Color)
		if err != nil {
			return rows, fmt.Errorf("insert product %s: %w", p.Name, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product seed: %w", err)
	}
	return rows, nil
}

func parseProduct(record []string) (domain.Product, error) {
	if len(record) < 6 {
		return domain.Product{}, fmt.Errorf("expected at least 6 fields, got %d", len(record))
	}
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	optional := func(i int) *string {
		if v := field(i); v != "" {
			return &v
		}
		return nil
	}

	p := domain.Product{
		Name:      field(0),
		Brand:     optional(1),
		Type:      field(2),
		Barcode:   optional(6),
		FrameSize: optional(7),
		Material:  optional(8),
		Color:     optional(9),
	}
	if p.Name == "" {
		return p, errors.New("missing name")
	}
	if !domain.ValidProductType(p.Type) {
		return p, fmt.Errorf("unknown product type %q", p.Type)
	}

	price, err := decimal.NewFromString(field(3))
	if err != nil || price.IsNegative() {
		return p, fmt.Errorf("invalid price %q", field(3))
	}
	p.Price = price

	if rate := field(4); rate != "" {
		d, err := decimal.NewFromString(rate)
		if err != nil || d.IsNegative() {
			return p, fmt.Errorf("invalid purchase_rate %q", rate)
		}
		p.PurchaseRate = decimal.NewNullDecimal(d)
	}

	qty, err := strconv.ParseInt(field(5), 10, 64)
	if err != nil || qty < 0 {
		return p, fmt.Errorf("invalid quantity %q", field(5))
	}
	p.Quantity = qty
	return p, nil
}
