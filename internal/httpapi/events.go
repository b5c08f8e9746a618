package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"souq-be/internal/events"
	"souq-be/internal/logger"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

const (
	streamBuffer = 16
	pingInterval = 25 * time.Second
)

// events streams store notifications as server-sent events. With no
// ?topic= the client receives every topic.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	var topics []events.Topic
	for _, raw := range queryList(r.URL.Query(), "topic") {
		t, err := events.ParseTopic(raw)
		if err != nil {
			respondError(w, r, fmt.Errorf("%w: %w", utils.ErrInvalidInput, err))
			return
		}
		topics = append(topics, t)
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, r, fmt.Errorf("streaming unsupported"))
		return
	}

	log := logger.FromCtx(r.Context()).With(zap.String("layer", "http"), zap.String("method", "events"))

	ch, cancel := h.store.Bus().Stream(streamBuffer, topics...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()
	log.Debug("stream opened", zap.Int("topics", len(topics)))

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug("stream closed")
			return
		case <-ping.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				log.Warn("dropping unencodable event", zap.Uint64("seq", e.Seq), zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", e.Seq, e.Kind, data)
			flusher.Flush()
		}
	}
}
