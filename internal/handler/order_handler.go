package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vintagecoffee/internal/model"
	"vintagecoffee/internal/service"
)

type createOrderRequest struct {
	CustomerName string                     `json:"customerName"`
	Items        []service.OrderLineRequest `json:"items"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	order, err := h.orders.Create(r.Context(), actorFrom(r), req.CustomerName, req.Items)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), actorFrom(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	h.respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	order, err := h.orders.SetStatus(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, order)
}
