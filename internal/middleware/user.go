package middleware

import (
	"net/http"
	"strings"

	"souq-be/internal/utils"
)

const UserIDHeader = "X-User-ID"

// UserID copies the X-User-ID header into the request context. There is no
// authentication; the header is trusted as given.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(UserIDHeader)); id != "" {
			r = r.WithContext(utils.SetUserContext(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Chain wraps h so the first middleware is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
