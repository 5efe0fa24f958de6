package api

import (
	"net/http"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.Products(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err, productMessages)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := h.store.Product(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, productMessages)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := bind(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.check(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.store.CreateProduct(r.Context(), req.product())
	if err != nil {
		h.writeStoreError(w, r, err, productMessages)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req productRequest
	if err := bind(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.check(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.store.UpdateProduct(r.Context(), id, req.product())
	if err != nil {
		h.writeStoreError(w, r, err, productMessages)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err, productMessages)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
