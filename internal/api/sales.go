package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"optimanager/m/domain"
	"optimanager/m/internal/store"
)

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := bind(r, &req); err != nil {
		h.metrics.SaleFailed("invalid_request")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.newSale()
	if err != nil {
		h.metrics.SaleFailed("invalid_request")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := h.store.CreateSale(r.Context(), in)
	if err != nil {
		h.metrics.SaleFailed(saleFailureReason(err))
		h.log.WarnContext(r.Context(), "sale rejected", "customer_id", in.CustomerID, "error", err)
		h.writeStoreError(w, r, err, saleMessages)
		return
	}
	h.metrics.SaleCreated()

	var userID int64
	if claims := claimsFrom(r.Context()); claims != nil {
		userID = claims.UserID
	}
	h.log.InfoContext(r.Context(), "sale created",
		"sale_id", sale.ID,
		"customer_id", sale.CustomerID,
		"total", sale.TotalAmount.StringFixed(2),
		"items", len(sale.Items),
		"user_id", userID,
	)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Sale created successfully",
		"saleId":  sale.ID,
		"sale":    sale,
	})
}

func saleFailureReason(err error) string {
	switch {
	case errors.Is(err, store.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, store.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, store.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, store.ErrEmptySale):
		return "invalid_request"
	default:
		return "internal"
	}
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.store.Sales(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err, saleMessages)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	sale, err := h.store.Sale(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, saleMessages)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

func (h *Handler) updateSaleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	var req statusRequest
	if err := bind(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !domain.ValidSaleStatus(req.Status) {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("status must be one of: %s", strings.Join(domain.SaleStatuses(), ", ")))
		return
	}

	sale, err := h.store.UpdateSaleStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeStoreError(w, r, err, saleMessages)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Sale status updated successfully",
		"sale":    sale,
	})
}

func (h *Handler) fullReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.FullReport(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err, entityMessages{})
		return
	}
	respondJSON(w, http.StatusOK, report)
}
