package api

import (
	"errors"
	"net/http"

	"optimanager/m/internal/store"
)

// entityMessages are the client-facing texts for an entity's lookup and
// delete failures.
type entityMessages struct {
	notFound   string
	referenced string
}

var (
	productMessages = entityMessages{
		notFound:   "Product not found",
		referenced: "Cannot delete product. It is part of existing sales records.",
	}
	customerMessages = entityMessages{
		notFound:   "Customer not found",
		referenced: "Cannot delete customer. They have existing sales records.",
	}
	saleMessages = entityMessages{
		notFound: "Sale not found",
	}
)

// writeStoreError maps store errors to HTTP responses. Unrecognised errors
// are logged and answered with a generic 500.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error, msgs entityMessages) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, msgs.notFound)
	case errors.Is(err, store.ErrReferenced):
		respondError(w, http.StatusBadRequest, msgs.referenced)
	case errors.Is(err, store.ErrDuplicate):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrCustomerNotFound),
		errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrEmptySale):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondError(w, http.StatusInternalServerError, "Server error")
	}
}
