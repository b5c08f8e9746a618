package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"souq-be/internal/logger"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

// Recover turns a panic into a 500 carrying the raw panic value, so the
// failure screen can show it.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromCtx(r.Context()).Error("panic recovered",
				zap.Any("panic", rec),
				zap.String("path", r.URL.Path),
				zap.ByteString("stack", debug.Stack()),
			)
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]any{
				"notice": map[string]string{"level": "error", "message": fmt.Sprint(rec)},
			})
		}()
		next.ServeHTTP(w, r)
	})
}
