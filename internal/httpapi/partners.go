package httpapi

import (
	"net/http"

	"souq-be/internal/partner"
)

func (h *Handler) listPartners(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := partner.ListOptions{
		Type:   partner.Type(q.Get("type")),
		City:   q.Get("city"),
		Search: q.Get("search"),
	}
	partners, err := h.svc.Partners.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, partners)
}

func (h *Handler) getPartner(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Partners.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) createPartner(w http.ResponseWriter, r *http.Request) {
	var in partner.Partner
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	p, err := h.svc.Partners.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) updatePartner(w http.ResponseWriter, r *http.Request) {
	var in partner.UpdatePartner
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	p, err := h.svc.Partners.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deletePartner(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Partners.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
