package domain

import "github.com/shopspring/decimal"

// Order statuses a sale moves through. Any status may follow any other.
const (
	StatusProcessing     = "Processing"
	StatusLensOrdered    = "Lens Ordered"
	StatusReadyForPickup = "Ready for Pickup"
	StatusCompleted      = "Completed"
)

var saleStatuses = []string{StatusProcessing, StatusLensOrdered, StatusReadyForPickup, StatusCompleted}

type Sale struct {
	ID           int64           `db:"id" json:"id"`
	CustomerID   int64           `db:"customer_id" json:"customer_id"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	SaleDate     string          `db:"sale_date" json:"sale_date"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status       string          `db:"status" json:"status"`
	Items        []SaleItem      `db:"-" json:"items,omitempty"`
}

type SaleItem struct {
	SaleID      int64           `db:"sale_id" json:"sale_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name,omitempty"`
	Quantity    int64           `db:"quantity" json:"quantity"`
	PriceAtSale decimal.Decimal `db:"price_at_sale" json:"price_at_sale"`
}

// Subtotal is the amount charged for the line.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(i.Quantity))
}

func SaleStatuses() []string {
	out := make([]string, len(saleStatuses))
	copy(out, saleStatuses)
	return out
}

func ValidSaleStatus(status string) bool {
	for _, known := range saleStatuses {
		if status == known {
			return true
		}
	}
	return false
}
