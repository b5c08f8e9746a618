package metrics

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)

	assert.Equal(t, uint64(60), c.Load())
}

func TestStoreStats(t *testing.T) {
	var s StoreStats

	s.Reads.Inc()
	s.ObserveWrite(StartTimer(), nil)
	s.ObserveWrite(StartTimer(), errors.New("quota exceeded"))
	s.DecodeFailures.Inc()
	s.Events.Add(2)

	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.Reads)
	assert.Equal(t, uint64(1), snap.Writes)
	assert.Equal(t, uint64(1), snap.WriteFailures)
	assert.Equal(t, uint64(1), snap.DecodeFailures)
	assert.Equal(t, uint64(2), snap.Events)
	assert.GreaterOrEqual(t, snap.LastWriteMs, 0.0)
}
