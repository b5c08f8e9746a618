package middleware

import "net/http"

const DefaultCORSOrigin = "http://localhost:3000"

// CORSFor allows one origin and answers preflight requests with 204.
func CORSFor(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = DefaultCORSOrigin
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID, X-Device-ID, X-Request-ID")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
