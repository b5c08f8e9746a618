package httpapi

import (
	"net/http"

	"souq-be/internal/logger"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, struct {
		Store       any `json:"store"`
		Subscribers int `json:"subscribers"`
	}{
		Store:       h.store.Stats().Snapshot(),
		Subscribers: h.store.Bus().Subscribers(),
	})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetAll(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	logger.FromCtx(r.Context()).Warn("store reset over http", zap.String("layer", "http"))
	respondNotice(w, http.StatusOK, map[string][]string{"cleared": h.store.Names()}, LevelInfo, "all collections cleared")
}
