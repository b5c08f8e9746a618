package storage

import (
	"context"
	"fmt"
)

// Quota rejects writes that would push the total stored size (keys plus
// values) past a limit, the way browser storage does.
type Quota struct {
	Backend
	limit int64
}

func NewQuota(b Backend, limitBytes int64) *Quota {
	return &Quota{Backend: b, limit: limitBytes}
}

func (q *Quota) Set(ctx context.Context, key string, value []byte) error {
	used, err := q.usage(ctx, key)
	if err != nil {
		return err
	}

	need := used + int64(len(key)+len(value))
	if need > q.limit {
		return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, need, q.limit)
	}
	return q.Backend.Set(ctx, key, value)
}

// usage sums the size of every key except skip.
func (q *Quota) usage(ctx context.Context, skip string) (int64, error) {
	keys, err := q.Backend.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, k := range keys {
		if k == skip {
			continue
		}
		v, ok, err := q.Backend.Get(ctx, k)
		if err != nil {
			return 0, err
		}
		if ok {
			total += int64(len(k) + len(v))
		}
	}
	return total, nil
}
