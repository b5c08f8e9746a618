package httpapi

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"souq-be/internal/utils"
)

func queryFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s must be a finite number", utils.ErrInvalidInput, key)
	}
	return &f, nil
}

func queryBool(q url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", utils.ErrInvalidInput, key)
	}
	return &b, nil
}

// queryList accepts both ?k=a&k=b and ?k=a,b.
func queryList(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// queryEnum parses an optional enum parameter; blank means no filter.
func queryEnum[T ~string](q url.Values, key string, parse func(string) (T, error)) (T, error) {
	var zero T
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return zero, nil
	}
	return parse(raw)
}
