package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vintagecoffee/internal/model"
)

type generateInvoiceRequest struct {
	OrderID string `json:"orderId"`
}

func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var req generateInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	inv, err := h.invoices.Generate(r.Context(), actorFrom(r), req.OrderID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, inv)
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context(), actorFrom(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	h.respondJSON(w, http.StatusOK, invoices)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, inv)
}
