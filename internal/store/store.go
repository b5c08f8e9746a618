// Package store is the local entity store: typed collections persisted as
// one JSON array per key in a storage.Backend, with same-process
// notifications after each mutation.
//
// Every mutation reads the whole collection, modifies it and writes it back.
// A process-wide mutex makes that atomic inside one process; separate
// processes sharing a backend race, and the last full rewrite wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"souq-be/internal/events"
	"souq-be/internal/logger"
	"souq-be/internal/metrics"
	"souq-be/internal/storage"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

const DefaultNamespace = "souq"

type Clock func() time.Time

type IDGenerator func(prefix string, now time.Time) string

type Store struct {
	backend   storage.Backend
	bus       *events.Bus
	namespace string
	now       Clock
	newID     IDGenerator
	stats     *metrics.StoreStats

	// mu serialises read-modify-write cycles.
	mu sync.Mutex

	keysMu sync.Mutex
	keys   map[string]string // full key -> collection name
}

type Option func(*Store)

func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Store) { s.now = c }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.newID = g }
}

func WithStats(st *metrics.StoreStats) Option {
	return func(s *Store) { s.stats = st }
}

// New builds a store over backend. A nil bus gets a fresh one.
func New(backend storage.Backend, bus *events.Bus, opts ...Option) *Store {
	if bus == nil {
		bus = events.NewBus()
	}
	s := &Store{
		backend:   backend,
		bus:       bus,
		namespace: DefaultNamespace,
		now:       time.Now,
		newID:     utils.GenerateID,
		stats:     &metrics.StoreStats{},
		keys:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Bus() *events.Bus { return s.bus }

func (s *Store) Stats() *metrics.StoreStats { return s.stats }

// Key returns the namespaced storage key for a collection name.
func (s *Store) Key(name string) string {
	return s.namespace + ":" + name
}

func (s *Store) register(name string) string {
	key := s.Key(name)
	s.keysMu.Lock()
	s.keys[key] = name
	s.keysMu.Unlock()
	return key
}

// Names lists registered collection and document names, sorted.
func (s *Store) Names() []string {
	s.keysMu.Lock()
	defer s.keysMu.Unlock()
	names := make([]string, 0, len(s.keys))
	for _, n := range s.keys {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Raw returns the stored bytes of a registered name, for inspection tools.
func (s *Store) Raw(ctx context.Context, name string) ([]byte, bool, error) {
	return s.read(ctx, s.Key(name))
}

// ResetAll removes every registered key and publishes a reset event on
// every topic. Used for demo reseeding and tests.
func (s *Store) ResetAll(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "store"), zap.String("method", "ResetAll"))

	s.keysMu.Lock()
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	s.keysMu.Unlock()
	sort.Strings(keys)

	s.mu.Lock()
	var errs []error
	for _, k := range keys {
		if err := s.backend.Remove(ctx, k); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", k, err))
		}
	}
	s.mu.Unlock()

	if err := errors.Join(errs...); err != nil {
		log.Error("reset failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	for _, t := range events.AllTopics {
		s.publish(events.Event{Topic: t, Kind: events.KindReset})
	}
	log.Info("store reset", zap.Int("keys", len(keys)))
	return nil
}

func (s *Store) read(ctx context.Context, key string) ([]byte, bool, error) {
	s.stats.Reads.Inc()
	return s.backend.Get(ctx, key)
}

func (s *Store) write(ctx context.Context, key string, value []byte) error {
	timer := metrics.StartTimer()
	err := s.backend.Set(ctx, key, value)
	s.stats.ObserveWrite(timer, err)
	if err != nil {
		logger.FromCtx(ctx).Error("store write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, key, err)
	}
	return nil
}

func (s *Store) publish(e events.Event) {
	s.stats.Events.Inc()
	s.bus.Publish(e)
}
