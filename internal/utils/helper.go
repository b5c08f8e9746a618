package utils

import (
	"encoding/json"
	"net/http"
	"strings"
)

func Ptr[T any](v T) *T {
	return &v
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func PtrFloat64(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ContainsFold reports whether any of the fields contains the search term,
// ignoring case. An empty term matches everything.
func ContainsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// EqualFold compares two optional strings after trimming; two empty values
// never match.
func EqualFold(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

func WriteJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
