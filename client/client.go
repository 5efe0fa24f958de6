// Package client is a Go client for the OptiManager HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"optimanager/m/domain"
)

// APIError is a non-2xx response. Message is the server's "message" field, or
// the HTTP status text when the body carried none.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	http *resty.Client
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:3000/api".
func New(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: rc}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().SetContext(ctx).SetError(&APIError{})
	if s, ok := SessionFrom(ctx); ok {
		req.SetAuthToken(s.Token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, _ := resp.Error().(*APIError)
	if apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}

// Login authenticates and returns the session to attach with WithSession.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Name  string `json:"name"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: out.Token, Name: out.Name, Role: out.Role}, nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/register", in, &out)
	return out.User, err
}

type ProductInput struct {
	Name         string              `json:"name"`
	Brand        *string             `json:"brand,omitempty"`
	Type         string              `json:"type"`
	Price        decimal.Decimal     `json:"price"`
	PurchaseRate decimal.NullDecimal `json:"purchase_rate"`
	Quantity     int64               `json:"quantity"`
	Barcode      *string             `json:"barcode,omitempty"`
	FrameSize    *string             `json:"frame_size,omitempty"`
	Material     *string             `json:"material,omitempty"`
	Color        *string             `json:"color,omitempty"`
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := c.do(ctx, http.MethodGet, "/products", nil, &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, id int64) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodPost, "/products", in, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

type CustomerInput struct {
	Name          string  `json:"name"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
	OdSph         *string `json:"od_sph,omitempty"`
	OdCyl         *string `json:"od_cyl,omitempty"`
	OdAxis        *string `json:"od_axis,omitempty"`
	OdAdd         *string `json:"od_add,omitempty"`
	OsSph         *string `json:"os_sph,omitempty"`
	OsCyl         *string `json:"os_cyl,omitempty"`
	OsAxis        *string `json:"os_axis,omitempty"`
	OsAdd         *string `json:"os_add,omitempty"`
	PD            *string `json:"pd,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	AllowWhatsapp bool    `json:"allow_whatsapp"`
}

func (c *Client) Customers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	err := c.do(ctx, http.MethodGet, "/customers", nil, &out)
	return out, err
}

func (c *Client) Customer(ctx context.Context, id int64) (domain.Customer, error) {
	var out domain.Customer
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (domain.Customer, error) {
	var out domain.Customer
	err := c.do(ctx, http.MethodPost, "/customers", in, &out)
	return out, err
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, in CustomerInput) (domain.Customer, error) {
	var out domain.Customer
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
}

func (c *Client) CustomerReport(ctx context.Context, id int64) (domain.CustomerReport, error) {
	var out domain.CustomerReport
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d/report", id), nil, &out)
	return out, err
}

type SaleItemInput struct {
	ProductID   int64           `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

type SaleInput struct {
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []SaleItemInput `json:"items"`
}

// NewSaleInput builds a sale whose total is the sum of its items.
func NewSaleInput(customerID int64, items ...SaleItemInput) SaleInput {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.PriceAtSale.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return SaleInput{CustomerID: customerID, TotalAmount: total, Items: items}
}

// CreateSale records a sale and returns the new sale's id.
func (c *Client) CreateSale(ctx context.Context, in SaleInput) (int64, error) {
	var out struct {
		SaleID int64 `json:"saleId"`
	}
	err := c.do(ctx, http.MethodPost, "/sales", in, &out)
	return out.SaleID, err
}

func (c *Client) Sales(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	err := c.do(ctx, http.MethodGet, "/sales", nil, &out)
	return out, err
}

func (c *Client) Sale(ctx context.Context, id int64) (domain.Sale, error) {
	var out domain.Sale
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sales/%d", id), nil, &out)
	return out, err
}

func (c *Client) UpdateSaleStatus(ctx context.Context, id int64, status string) (domain.Sale, error) {
	var out struct {
		Sale domain.Sale `json:"sale"`
	}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/sales/%d/status", id), map[string]string{"status": status}, &out)
	return out.Sale, err
}

func (c *Client) FullReport(ctx context.Context) (domain.FullReport, error) {
	var out domain.FullReport
	err := c.do(ctx, http.MethodGet, "/sales/reports/full", nil, &out)
	return out, err
}
