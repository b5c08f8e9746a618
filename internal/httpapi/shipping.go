package httpapi

import (
	"fmt"
	"net/http"

	"souq-be/internal/shipping"
	"souq-be/internal/utils"
)

func (h *Handler) listShipping(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := shipping.ListOptions{
		Category:   q.Get("category"),
		ProviderID: q.Get("provider"),
		Search:     q.Get("search"),
		Sort:       shipping.SortField(q.Get("sort")),
	}
	services, err := h.svc.Shipping.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, services)
}

func (h *Handler) getShipping(w http.ResponseWriter, r *http.Request) {
	svc, err := h.svc.Shipping.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, svc)
}

func (h *Handler) createShipping(w http.ResponseWriter, r *http.Request) {
	var in shipping.Service
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	svc, err := h.svc.Shipping.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, svc)
}

func (h *Handler) updateShipping(w http.ResponseWriter, r *http.Request) {
	var in shipping.UpdateService
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	svc, err := h.svc.Shipping.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, svc)
}

func (h *Handler) deleteShipping(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Shipping.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) quoteShipping(w http.ResponseWriter, r *http.Request) {
	weight, err := queryFloat(r.URL.Query(), "weight")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if weight == nil {
		respondError(w, r, fmt.Errorf("%w: weight is required", utils.ErrInvalidInput))
		return
	}
	q, err := h.svc.Shipping.Quote(r.Context(), r.PathValue("id"), *weight)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, q)
}
