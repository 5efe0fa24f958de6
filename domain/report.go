package domain

import "github.com/shopspring/decimal"

type DailyRevenue struct {
	SaleDate     string          `db:"sale_date" json:"sale_date"`
	DailyRevenue decimal.Decimal `db:"daily_revenue" json:"daily_revenue"`
}

type TypeRevenue struct {
	Type        string          `db:"type" json:"type"`
	TypeRevenue decimal.Decimal `db:"type_revenue" json:"type_revenue"`
}

type BestSeller struct {
	ProductID      int64           `db:"product_id" json:"product_id"`
	ProductName    string          `db:"product_name" json:"product_name"`
	ProductBrand   *string         `db:"product_brand" json:"product_brand"`
	TotalUnitsSold int64           `db:"total_units_sold" json:"total_units_sold"`
	TotalRevenue   decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

// FullReport is the analytics dashboard payload.
type FullReport struct {
	SalesOverTime []DailyRevenue  `json:"salesOverTime"`
	SalesByType   []TypeRevenue   `json:"salesByType"`
	BestSellers   []BestSeller    `json:"bestSellers"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
}

// CustomerReport is a customer's card plus their purchase history.
type CustomerReport struct {
	Customer Customer       `json:"customer"`
	Sales    []CustomerSale `json:"sales"`
}
