package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"optimanager/m/domain"
	"optimanager/m/internal/store"
)

// optionalDecimal accepts a number, a numeric string, null or "" (absent).
type optionalDecimal struct {
	decimal.NullDecimal
}

func (d *optionalDecimal) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		d.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	return d.NullDecimal.UnmarshalJSON(trimmed)
}

// flexBool accepts JSON booleans as well as 0/1 and their string forms, which
// is how HTML form checkboxes usually arrive.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*b = false
	case bool:
		*b = flexBool(v)
	case float64:
		*b = v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off", "no":
			*b = false
		case "1", "true", "on", "yes":
			*b = true
		default:
			return fmt.Errorf("invalid boolean %q", v)
		}
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin employee"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type productRequest struct {
	Name         string           `json:"name" validate:"required,notblank"`
	Brand        *string          `json:"brand"`
	Type         string           `json:"type" validate:"required"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	PurchaseRate optionalDecimal  `json:"purchase_rate"`
	Quantity     int64            `json:"quantity" validate:"gte=0"`
	Barcode      *string          `json:"barcode"`
	FrameSize    *string          `json:"frame_size"`
	Material     *string          `json:"material"`
	Color        *string          `json:"color"`
}

func (p productRequest) check() error {
	if !domain.ValidProductType(p.Type) {
		return fmt.Errorf("type must be one of: %s", strings.Join(domain.ProductTypes(), ", "))
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if p.PurchaseRate.Valid && p.PurchaseRate.Decimal.IsNegative() {
		return fmt.Errorf("purchase_rate must not be negative")
	}
	return nil
}

func (p productRequest) product() domain.Product {
	return domain.Product{
		Name:         strings.TrimSpace(p.Name),
		Brand:        p.Brand,
		Type:         p.Type,
		Price:        *p.Price,
		PurchaseRate: p.PurchaseRate.NullDecimal,
		Quantity:     p.Quantity,
		Barcode:      p.Barcode,
		FrameSize:    p.FrameSize,
		Material:     p.Material,
		Color:        p.Color,
	}
}

type customerRequest struct {
	Name          string   `json:"name" validate:"required,notblank"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Address       *string  `json:"address"`
	OdSph         *string  `json:"od_sph"`
	OdCyl         *string  `json:"od_cyl"`
	OdAxis        *string  `json:"od_axis"`
	OdAdd         *string  `json:"od_add"`
	OsSph         *string  `json:"os_sph"`
	OsCyl         *string  `json:"os_cyl"`
	OsAxis        *string  `json:"os_axis"`
	OsAdd         *string  `json:"os_add"`
	PD            *string  `json:"pd"`
	Notes         *string  `json:"notes"`
	AllowWhatsapp flexBool `json:"allow_whatsapp"`
}

func (c customerRequest) customer() domain.Customer {
	return domain.Customer{
		Name:          strings.TrimSpace(c.Name),
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		OdSph:         c.OdSph,
		OdCyl:         c.OdCyl,
		OdAxis:        c.OdAxis,
		OdAdd:         c.OdAdd,
		OsSph:         c.OsSph,
		OsCyl:         c.OsCyl,
		OsAxis:        c.OsAxis,
		OsAdd:         c.OsAdd,
		PD:            c.PD,
		Notes:         c.Notes,
		AllowWhatsapp: bool(c.AllowWhatsapp),
	}
}

type saleItemRequest struct {
	ProductID   int64            `json:"product_id" validate:"gt=0"`
	Quantity    int64            `json:"quantity" validate:"gt=0"`
	PriceAtSale *decimal.Decimal `json:"price_at_sale" validate:"required"`
}

type saleRequest struct {
	CustomerID  int64             `json:"customer_id" validate:"gt=0"`
	TotalAmount *decimal.Decimal  `json:"total_amount" validate:"required"`
	Items       []saleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// newSale checks the request's money amounts and converts it for the store.
// The total must equal the sum of the line subtotals to the cent.
func (s saleRequest) newSale() (store.NewSale, error) {
	if s.TotalAmount.IsNegative() {
		return store.NewSale{}, fmt.Errorf("total_amount must not be negative")
	}
	items := make([]domain.SaleItem, len(s.Items))
	sum := decimal.Zero
	for i, it := range s.Items {
		if it.PriceAtSale.IsNegative() {
			return store.NewSale{}, fmt.Errorf("price_at_sale must not be negative")
		}
		items[i] = domain.SaleItem{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			PriceAtSale: *it.PriceAtSale,
		}
		sum = sum.Add(items[i].Subtotal())
	}
	if !sum.Round(2).Equal(s.TotalAmount.Round(2)) {
		return store.NewSale{}, fmt.Errorf("total_amount %s does not match items total %s",
			s.TotalAmount.StringFixed(2), sum.StringFixed(2))
	}
	return store.NewSale{CustomerID: s.CustomerID, TotalAmount: *s.TotalAmount, Items: items}, nil
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}
