package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"souq-be/internal/events"
	"souq-be/internal/logger"

	"go.uber.org/zap"
)

const maxIDAttempts = 5

type CollectionConfig struct {
	// Name is the storage key suffix, e.g. "products".
	Name     string
	Topic    events.Topic
	IDPrefix string
}

// Collection is the generic repository for one entity type. T must embed
// Meta.
type Collection[T any, P entity[T]] struct {
	store  *Store
	key    string
	name   string
	topic  events.Topic
	prefix string
}

func NewCollection[T any, P entity[T]](s *Store, cfg CollectionConfig) *Collection[T, P] {
	return &Collection[T, P]{
		store:  s,
		key:    s.register(cfg.Name),
		name:   cfg.Name,
		topic:  cfg.Topic,
		prefix: cfg.IDPrefix,
	}
}

func (c *Collection[T, P]) Name() string { return c.name }

func (c *Collection[T, P]) Key() string { return c.key }

func (c *Collection[T, P]) Topic() events.Topic { return c.topic }

// GetAll returns the collection in insertion order. A missing key or
// undecodable data yields an empty list; only backend failures are errors.
func (c *Collection[T, P]) GetAll(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

// Get returns the record with id or ErrNotFound.
func (c *Collection[T, P]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	if i := c.indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return zero, ErrNotFound
}

// Add stamps a fresh id and creation time on v, appends it and rewrites the
// collection. Any id or createdAt already on v is ignored.
func (c *Collection[T, P]) Add(ctx context.Context, v T) (T, error) {
	return c.add(ctx, v, nil)
}

// AddChecked is Add with a precondition: check sees the current records
// under the store lock and nothing is inserted when it returns an error.
func (c *Collection[T, P]) AddChecked(ctx context.Context, v T, check func(existing []T) error) (T, error) {
	return c.add(ctx, v, check)
}

func (c *Collection[T, P]) add(ctx context.Context, v T, check func([]T) error) (T, error) {
	var zero T
	log := c.log(ctx, "Add")

	c.store.mu.Lock()
	items, err := c.load(ctx)
	if err != nil {
		c.store.mu.Unlock()
		return zero, err
	}
	if check != nil {
		if err := check(items); err != nil {
			c.store.mu.Unlock()
			return zero, err
		}
	}

	now := c.store.now().UTC()
	id, err := c.uniqueID(items, now)
	if err != nil {
		c.store.mu.Unlock()
		return zero, err
	}

	m := P(&v).meta()
	m.ID = id
	m.CreatedAt = now

	items = append(items, v)
	if err := c.save(ctx, items); err != nil {
		c.store.mu.Unlock()
		return zero, err
	}
	c.store.mu.Unlock()

	log.Debug("record added", zap.String("id", id), zap.Int("count", len(items)))
	c.publish(events.KindCreated, id, v)
	return v, nil
}

// Update shallow-merges patch into the record with id: every JSON member the
// patch encodes replaces the stored member, the rest are kept. id and
// createdAt are never changed. Pointer fields tagged omitempty are left out
// of the patch when nil; a map patch can set members to null explicitly.
func (c *Collection[T, P]) Update(ctx context.Context, id string, patch any) (T, error) {
	return c.UpdateChecked(ctx, id, patch, nil)
}

// UpdateChecked is Update with a precondition: check sees the merged record
// and every other record under the store lock, and nothing is written when
// it returns an error.
func (c *Collection[T, P]) UpdateChecked(ctx context.Context, id string, patch any, check func(next T, others []T) error) (T, error) {
	var zero T

	patchFields, err := toObject(patch)
	if err != nil {
		return zero, err
	}

	return c.mutate(ctx, id, "Update", func(current *T) error {
		base, err := toObject(current)
		if err != nil {
			return err
		}
		for k, v := range patchFields {
			if k == "id" || k == "createdAt" {
				continue
			}
			base[k] = v
		}
		merged, err := json.Marshal(base)
		if err != nil {
			return err
		}
		var next T
		if err := json.Unmarshal(merged, &next); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
		}
		*current = next
		return nil
	}, check)
}

// Mutate applies fn to the record with id under the store lock and rewrites
// the collection when fn returns nil. fn must not call back into the store.
func (c *Collection[T, P]) Mutate(ctx context.Context, id string, fn func(*T) error) (T, error) {
	return c.mutate(ctx, id, "Mutate", fn, nil)
}

func (c *Collection[T, P]) mutate(ctx context.Context, id, method string, fn func(*T) error, check func(T, []T) error) (T, error) {
	var zero T
	log := c.log(ctx, method).With(zap.String("id", id))

	c.store.mu.Lock()
	items, err := c.load(ctx)
	if err != nil {
		c.store.mu.Unlock()
		return zero, err
	}

	i := c.indexOf(items, id)
	if i < 0 {
		c.store.mu.Unlock()
		log.Debug("record not found")
		return zero, ErrNotFound
	}

	keep := *P(&items[i]).meta()
	next := items[i]
	if err := fn(&next); err != nil {
		c.store.mu.Unlock()
		return zero, err
	}
	*P(&next).meta() = keep
	if check != nil {
		others := make([]T, 0, len(items)-1)
		others = append(others, items[:i]...)
		others = append(others, items[i+1:]...)
		if err := check(next, others); err != nil {
			c.store.mu.Unlock()
			return zero, err
		}
	}
	items[i] = next

	if err := c.save(ctx, items); err != nil {
		c.store.mu.Unlock()
		return zero, err
	}
	c.store.mu.Unlock()

	log.Debug("record updated")
	c.publish(events.KindUpdated, id, next)
	return next, nil
}

// Delete removes the record with id and reports whether one existed.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	log := c.log(ctx, "Delete").With(zap.String("id", id))

	c.store.mu.Lock()
	items, err := c.load(ctx)
	if err != nil {
		c.store.mu.Unlock()
		return false, err
	}

	i := c.indexOf(items, id)
	if i < 0 {
		c.store.mu.Unlock()
		return false, nil
	}

	removed := items[i]
	items = append(items[:i], items[i+1:]...)
	if err := c.save(ctx, items); err != nil {
		c.store.mu.Unlock()
		return false, err
	}
	c.store.mu.Unlock()

	log.Debug("record deleted", zap.Int("count", len(items)))
	c.publish(events.KindDeleted, id, removed)
	return true, nil
}

// Rewrite lets fn edit every record in place under the store lock. The
// collection is written back only when fn reports a change. On a write
// failure the edited records are returned along with the error.
func (c *Collection[T, P]) Rewrite(ctx context.Context, fn func(items []T) bool) ([]T, error) {
	c.store.mu.Lock()
	items, err := c.load(ctx)
	if err != nil {
		c.store.mu.Unlock()
		return nil, err
	}

	keep := make([]Meta, len(items))
	for i := range items {
		keep[i] = *P(&items[i]).meta()
	}
	if !fn(items) {
		c.store.mu.Unlock()
		return items, nil
	}
	for i := range items {
		*P(&items[i]).meta() = keep[i]
	}

	if err := c.save(ctx, items); err != nil {
		c.store.mu.Unlock()
		return items, err
	}
	c.store.mu.Unlock()

	c.log(ctx, "Rewrite").Debug("collection rewritten", zap.Int("count", len(items)))
	c.publish(events.KindUpdated, "", nil)
	return items, nil
}

// Replace rewrites the whole collection as given, without stamping.
func (c *Collection[T, P]) Replace(ctx context.Context, items []T) error {
	c.store.mu.Lock()
	err := c.save(ctx, items)
	c.store.mu.Unlock()
	if err != nil {
		return err
	}

	c.publish(events.KindUpdated, "", nil)
	return nil
}

func (c *Collection[T, P]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.read(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.store.stats.DecodeFailures.Inc()
		c.log(ctx, "load").Warn("malformed collection treated as empty", zap.Error(err))
		return []T{}, nil
	}
	kept := items[:0]
	for i := range items {
		if P(&items[i]).meta().ID != "" {
			kept = append(kept, items[i])
		}
	}
	if dropped := len(items) - len(kept); dropped > 0 {
		c.store.stats.DecodeFailures.Inc()
		c.log(ctx, "load").Warn("dropping records without id", zap.Int("dropped", dropped))
	}
	if kept == nil {
		kept = []T{}
	}
	return kept, nil
}

func (c *Collection[T, P]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, c.name, err)
	}
	return c.store.write(ctx, c.key, raw)
}

func (c *Collection[T, P]) indexOf(items []T, id string) int {
	if id == "" {
		return -1
	}
	for i := range items {
		if P(&items[i]).meta().ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T, P]) uniqueID(items []T, now time.Time) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := c.store.newID(c.prefix, now)
		if c.indexOf(items, id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (c *Collection[T, P]) publish(kind events.Kind, id string, payload any) {
	c.store.publish(events.Event{
		Topic:      c.topic,
		Kind:       kind,
		Collection: c.name,
		EntityID:   id,
		Payload:    payload,
	})
}

func (c *Collection[T, P]) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "store"),
		zap.String("method", method),
		zap.String("collection", c.name),
	)
}

// toObject encodes v and decodes it back as a JSON object.
func toObject(v any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, ErrInvalidPatch
	}
	return obj, nil
}
