package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	cat, err := h.catalog.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cat)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

// SetAvailability responds with the whole catalog, which is what the
// storefront re-renders from.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	cat, err := h.catalog.SetAvailability(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.Available)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cat)
}
