package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"souq-be/internal/logger"
	"souq-be/internal/order"
	"souq-be/internal/partner"
	"souq-be/internal/preference"
	"souq-be/internal/product"
	"souq-be/internal/store"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Notice is the transient message the front-end shows as a toast.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type Envelope struct {
	Data   any     `json:"data,omitempty"`
	Notice *Notice `json:"notice,omitempty"`
}

const maxBodyBytes = 1 << 20

func respond(w http.ResponseWriter, code int, data any) {
	utils.WriteJSON(w, code, Envelope{Data: data})
}

func respondNotice(w http.ResponseWriter, code int, data any, level, message string) {
	utils.WriteJSON(w, code, Envelope{Data: data, Notice: &Notice{Level: level, Message: message}})
}

// classify maps a service error to a status code and notice.
func classify(err error) (int, Notice) {
	switch {
	case errors.Is(err, order.ErrAlreadyPublished):
		return http.StatusOK, Notice{LevelInfo, "this order is already published"}
	case errors.Is(err, partner.ErrDuplicatePartner):
		return http.StatusConflict, Notice{LevelInfo, "a partner with the same email, phone or name already exists"}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, Notice{LevelError, err.Error()}
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderClosed),
		errors.Is(err, product.ErrInsufficientStock):
		return http.StatusConflict, Notice{LevelError, err.Error()}
	case errors.Is(err, preference.ErrMissingUser):
		return http.StatusBadRequest, Notice{LevelError, "X-User-ID header is required"}
	case errors.Is(err, utils.ErrInvalidInput):
		return http.StatusBadRequest, Notice{LevelError, err.Error()}
	case errors.Is(err, store.ErrWriteFailed):
		return http.StatusInsufficientStorage, Notice{LevelError, "could not save"}
	default:
		return http.StatusInternalServerError, Notice{LevelError, "unexpected error"}
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code, n := classify(err)
	if code >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "http"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	utils.WriteJSON(w, code, Envelope{Notice: &n})
}

// decode reads a JSON body into v. Malformed bodies are invalid input.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", utils.ErrInvalidInput)
		}
		return fmt.Errorf("%w: malformed json: %w", utils.ErrInvalidInput, err)
	}
	return nil
}
