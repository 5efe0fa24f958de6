package domain

import "github.com/shopspring/decimal"

// Product types sold by the shop.
const (
	TypeFrames        = "Frames"
	TypeLenses        = "Lenses"
	TypeContactLenses = "Contact Lenses"
	TypeSunglasses    = "Sunglasses"
	TypeAccessories   = "Accessories"
)

var productTypes = []string{TypeFrames, TypeLenses, TypeContactLenses, TypeSunglasses, TypeAccessories}

type Product struct {
	ID           int64               `db:"id" json:"id"`
	Name         string              `db:"name" json:"name"`
	Brand        *string             `db:"brand" json:"brand"`
	Type         string              `db:"type" json:"type"`
	Price        decimal.Decimal     `db:"price" json:"price"`
	PurchaseRate decimal.NullDecimal `db:"purchase_rate" json:"purchase_rate"`
	Quantity     int64               `db:"quantity" json:"quantity"`
	Barcode      *string             `db:"barcode" json:"barcode"`
	FrameSize    *string             `db:"frame_size" json:"frame_size"`
	Material     *string             `db:"material" json:"material"`
	Color        *string             `db:"color" json:"color"`
}

// ProductTypes returns the accepted product types in display order.
func ProductTypes() []string {
	out := make([]string, len(productTypes))
	copy(out, productTypes)
	return out
}

func ValidProductType(t string) bool {
	for _, known := range productTypes {
		if t == known {
			return true
		}
	}
	return false
}
