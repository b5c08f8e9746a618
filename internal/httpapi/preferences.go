package httpapi

import (
	"net/http"

	"souq-be/internal/preference"
	"souq-be/internal/utils"
)

func userOf(r *http.Request) string {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.svc.Preferences.Favorites(r.Context(), userOf(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, favs)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("itemID")
	now, err := h.svc.Preferences.ToggleFavorite(r.Context(), userOf(r), itemID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"itemId": itemID, "favorite": now})
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Preferences.GetSettings(r.Context(), userOf(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var in preference.Settings
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	st, err := h.svc.Preferences.SaveSettings(r.Context(), userOf(r), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, st)
}
