package handler

import (
	"net/http"

	"vintagecoffee/internal/model"
)

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	h.respondJSON(w, http.StatusOK, reviews)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	review, err := h.reviews.Create(r.Context(), actorFrom(r), req.Rating, req.Comment)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, review)
}
