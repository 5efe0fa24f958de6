package domain

import "github.com/shopspring/decimal"

// Customer is a shop client together with their latest eyeglass prescription.
// Prescription values are kept as entered (e.g. "-1.25"), OD is the right eye
// and OS the left.
type Customer struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Phone         *string `db:"phone" json:"phone"`
	Email         *string `db:"email" json:"email"`
	Address       *string `db:"address" json:"address"`
	OdSph         *string `db:"od_sph" json:"od_sph"`
	OdCyl         *string `db:"od_cyl" json:"od_cyl"`
	OdAxis        *string `db:"od_axis" json:"od_axis"`
	OdAdd         *string `db:"od_add" json:"od_add"`
	OsSph         *string `db:"os_sph" json:"os_sph"`
	OsCyl         *string `db:"os_cyl" json:"os_cyl"`
	OsAxis        *string `db:"os_axis" json:"os_axis"`
	OsAdd         *string `db:"os_add" json:"os_add"`
	PD            *string `db:"pd" json:"pd"`
	Notes         *string `db:"notes" json:"notes"`
	DateAdded     string  `db:"date_added" json:"date_added"`
	AllowWhatsapp bool    `db:"allow_whatsapp" json:"allow_whatsapp"`
}

// CustomerSale is one line of a customer's purchase history.
type CustomerSale struct {
	ID           int64           `db:"id" json:"id"`
	SaleDate     string          `db:"sale_date" json:"sale_date"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	ProductsSold string          `db:"-" json:"products_sold"`
}
