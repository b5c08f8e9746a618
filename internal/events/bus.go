// Package events implements the same-process notification bus the entity
// store publishes to after every successful mutation. Handlers run
// synchronously on the publishing goroutine, so a view subscribed in the
// same process observes the change before the mutating call returns.
package events

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"souq-be/internal/logger"

	"go.uber.org/zap"
)

type Topic string

const (
	// TopicProducts carries product changes.
	TopicProducts Topic = "products"
	// TopicMarketplace carries market item and shipping service changes.
	TopicMarketplace Topic = "marketplace"
	TopicOrders      Topic = "orders"
	TopicPartners    Topic = "partners"
	TopicFleet       Topic = "fleet"
	TopicPreferences Topic = "preferences"
)

// AllTopics lists every topic, in a stable order.
var AllTopics = []Topic{
	TopicProducts, TopicMarketplace, TopicOrders, TopicPartners, TopicFleet, TopicPreferences,
}

func ParseTopic(s string) (Topic, error) {
	for _, t := range AllTopics {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown topic: %q", s)
}

type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
	KindDeleted Kind = "deleted"
	KindReset   Kind = "reset"
)

type Event struct {
	Seq        uint64    `json:"seq"`
	Topic      Topic     `json:"topic"`
	Kind       Kind      `json:"kind"`
	Collection string    `json:"collection"`
	EntityID   string    `json:"entityId,omitempty"`
	Payload    any       `json:"payload,omitempty"`
	At         time.Time `json:"at"`
}

type Handler func(Event)

type subscriber struct {
	id      uint64
	topics  map[Topic]bool
	handler Handler
}

func (s *subscriber) wants(t Topic) bool {
	return len(s.topics) == 0 || s.topics[t]
}

type Bus struct {
	mu          sync.RWMutex
	subscribers []*subscriber
	nextID      uint64
	sequence    atomic.Uint64
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscription is the handle returned by Subscribe. Close is idempotent.
type Subscription struct {
	bus  *Bus
	id   uint64
	once sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() { s.bus.remove(s.id) })
}

// Subscribe registers handler for the given topics; no topics means all.
func (b *Bus) Subscribe(handler Handler, topics ...Topic) *Subscription {
	set := make(map[Topic]bool, len(topics))
	for _, t := range topics {
		set[t] = true
	}

	b.mu.Lock()
	b.nextID++
	sub := &subscriber{id: b.nextID, topics: set, handler: handler}
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()

	return &Subscription{bus: b, id: sub.id}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscribers {
		if sub.id == id {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish stamps the event and calls every interested handler in
// subscription order. A panicking handler is logged and skipped.
func (b *Bus) Publish(e Event) Event {
	e.Seq = b.sequence.Add(1)
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.RLock()
	targets := make([]*subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if sub.wants(e.Topic) {
			targets = append(targets, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		b.dispatch(sub, e)
	}
	return e
}

func (b *Bus) dispatch(sub *subscriber, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("event handler panicked",
				zap.String("topic", string(e.Topic)),
				zap.String("kind", string(e.Kind)),
				zap.Any("panic", r),
			)
		}
	}()
	sub.handler(e)
}

// Stream delivers events to a buffered channel for asynchronous consumers.
// Events are dropped when the channel is full. cancel unsubscribes and
// closes the channel.
func (b *Bus) Stream(buffer int, topics ...Topic) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	var mu sync.Mutex
	closed := false

	sub := b.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- e:
		default: // drop if channel full
		}
	}, topics...)

	cancel := func() {
		sub.Close()
		mu.Lock()
		if !closed {
			closed = true
			close(ch)
		}
		mu.Unlock()
	}
	return ch, cancel
}

// Subscribers reports the current subscriber count.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
