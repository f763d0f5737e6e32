package handler

import (
	"net/http"

	"vintagecoffee/internal/model"
)

type paymentRequest struct {
	OrderID string      `json:"orderId"`
	Amount  model.Cents `json:"amount"`
	Method  string      `json:"method"`
}

func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	receipt, err := h.payments.Process(r.Context(), actorFrom(r), req.OrderID, req.Amount, req.Method)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, receipt)
}
