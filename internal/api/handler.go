package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"optimanager/m/domain"
	"optimanager/m/internal/auth"
	"optimanager/m/internal/metrics"
	"optimanager/m/internal/store"
)

// Store is the model layer the handlers call into.
type Store interface {
	Ping(ctx context.Context) error

	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	Customers(ctx context.Context) ([]domain.Customer, error)
	Customer(ctx context.Context, id int64) (domain.Customer, error)
	CreateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, c domain.Customer) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	CustomerReport(ctx context.Context, id int64) (domain.CustomerReport, error)

	Sales(ctx context.Context) ([]domain.Sale, error)
	Sale(ctx context.Context, id int64) (domain.Sale, error)
	CreateSale(ctx context.Context, in store.NewSale) (domain.Sale, error)
	UpdateSaleStatus(ctx context.Context, id int64, status string) (domain.Sale, error)
	FullReport(ctx context.Context) (domain.FullReport, error)
}

type Options struct {
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store       Store
	auth        *auth.Service
	metrics     *metrics.Metrics
	log         *slog.Logger
	corsOrigins []string
}

// New constructs a Handler.
func New(s Store, authService *auth.Service, opts Options) *Handler {
	h := &Handler{
		store:       s,
		auth:        authService,
		metrics:     opts.Metrics,
		log:         opts.Logger,
		corsOrigins: opts.CORSOrigins,
	}
	if h.metrics == nil {
		h.metrics = metrics.New()
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(h.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(h.metrics.Middleware)

	r.Get("/", h.banner)
	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.verifyToken)

			pr.Route("/products", func(r chi.Router) {
				r.Get("/", h.listProducts)
				r.Get("/{id}", h.getProduct)
				r.Group(func(admin chi.Router) {
					admin.Use(h.isAdmin)
					admin.Post("/", h.createProduct)
					admin.Put("/{id}", h.updateProduct)
					admin.Delete("/{id}", h.deleteProduct)
				})
			})

			pr.Route("/customers", func(r chi.Router) {
				r.Get("/", h.listCustomers)
				r.Post("/", h.createCustomer)
				r.Get("/{id}", h.getCustomer)
				r.Group(func(admin chi.Router) {
					admin.Use(h.isAdmin)
					admin.Get("/{id}/report", h.customerReport)
					admin.Put("/{id}", h.updateCustomer)
					admin.Delete("/{id}", h.deleteCustomer)
				})
			})

			pr.Route("/sales", func(r chi.Router) {
				r.Post("/", h.createSale)
				r.Group(func(admin chi.Router) {
					admin.Use(h.isAdmin)
					admin.Get("/", h.listSales)
					admin.Get("/reports/full", h.fullReport)
					admin.Get("/{id}", h.getSale)
					admin.Put("/{id}/status", h.updateSaleStatus)
				})
			})
		})
	})

	return r
}

func (h *Handler) banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Welcome to the OptiManager Backend API!"))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.ErrorContext(r.Context(), "health check failed", "error", err)
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
