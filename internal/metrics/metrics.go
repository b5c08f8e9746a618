package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// StoreStats counts entity store activity. The zero value is ready to use.
type StoreStats struct {
	Reads          Counter
	Writes         Counter
	WriteFailures  Counter
	DecodeFailures Counter
	Events         Counter

	lastWriteNanos int64
}

func (s *StoreStats) ObserveWrite(t *Timer, err error) {
	if err != nil {
		s.WriteFailures.Inc()
		return
	}
	s.Writes.Inc()
	atomic.StoreInt64(&s.lastWriteNanos, int64(t.Duration()))
}

// Snapshot is the JSON shape served on /debug/metrics.
type Snapshot struct {
	Reads          uint64  `json:"reads"`
	Writes         uint64  `json:"writes"`
	WriteFailures  uint64  `json:"writeFailures"`
	DecodeFailures uint64  `json:"decodeFailures"`
	Events         uint64  `json:"events"`
	LastWriteMs    float64 `json:"lastWriteMs"`
}

func (s *StoreStats) Snapshot() Snapshot {
	return Snapshot{
		Reads:          s.Reads.Load(),
		Writes:         s.Writes.Load(),
		WriteFailures:  s.WriteFailures.Load(),
		DecodeFailures: s.DecodeFailures.Load(),
		Events:         s.Events.Load(),
		LastWriteMs:    float64(atomic.LoadInt64(&s.lastWriteNanos)) / float64(time.Millisecond),
	}
}
