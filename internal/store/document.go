package store

import (
	"context"
	"encoding/json"
	"fmt"

	"souq-be/internal/events"
	"souq-be/internal/logger"

	"go.uber.org/zap"
)

// Document is a single JSON value under one key, used for side-indexes such
// as the published-orders index and per-user favorites.
type Document[T any] struct {
	store *Store
	key   string
	name  string
	topic events.Topic
}

func NewDocument[T any](s *Store, name string, topic events.Topic) *Document[T] {
	return &Document[T]{store: s, key: s.register(name), name: name, topic: topic}
}

func (d *Document[T]) Key() string { return d.key }

// Load returns the stored value, or the zero value when the key is missing
// or malformed.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	return d.load(ctx)
}

func (d *Document[T]) Save(ctx context.Context, v T) error {
	d.store.mu.Lock()
	err := d.save(ctx, v)
	d.store.mu.Unlock()
	if err != nil {
		return err
	}
	d.publish(v)
	return nil
}

// Mutate loads, applies fn and saves under the store lock. Nothing is
// written when fn fails.
func (d *Document[T]) Mutate(ctx context.Context, fn func(*T) error) (T, error) {
	var zero T

	d.store.mu.Lock()
	v, err := d.load(ctx)
	if err != nil {
		d.store.mu.Unlock()
		return zero, err
	}
	if err := fn(&v); err != nil {
		d.store.mu.Unlock()
		return zero, err
	}
	if err := d.save(ctx, v); err != nil {
		d.store.mu.Unlock()
		return zero, err
	}
	d.store.mu.Unlock()

	d.publish(v)
	return v, nil
}

func (d *Document[T]) load(ctx context.Context) (T, error) {
	var v T
	raw, ok, err := d.store.read(ctx, d.key)
	if err != nil {
		return v, err
	}
	if !ok || len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		d.store.stats.DecodeFailures.Inc()
		logger.FromCtx(ctx).Warn("malformed document treated as empty",
			zap.String("layer", "store"),
			zap.String("document", d.name),
			zap.Error(err),
		)
		var zero T
		return zero, nil
	}
	return v, nil
}

func (d *Document[T]) save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, d.name, err)
	}
	return d.store.write(ctx, d.key, raw)
}

func (d *Document[T]) publish(v T) {
	d.store.publish(events.Event{
		Topic:      d.topic,
		Kind:       events.KindUpdated,
		Collection: d.name,
		Payload:    v,
	})
}
