package api

import (
	"net/http"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.Customers(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err, customerMessages)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	customer, err := h.store.Customer(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, customerMessages)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := bind(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	customer, err := h.store.CreateCustomer(r.Context(), req.customer())
	if err != nil {
		h.writeStoreError(w, r, err, customerMessages)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var req customerRequest
	if err := bind(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	customer, err := h.store.UpdateCustomer(r.Context(), id, req.customer())
	if err != nil {
		h.writeStoreError(w, r, err, customerMessages)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	if err := h.store.DeleteCustomer(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err, customerMessages)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

// customerReport returns the customer with their purchase history.
func (h *Handler) customerReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	report, err := h.store.CustomerReport(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, customerMessages)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
