package monitoring

import (
	"sync"

	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

// IngestStats counts readings seen by a Tracker since it was created
type IngestStats struct {
	Accepted uint64
	Negative uint64
	Invalid  uint64
}

// Rejected returns the total of rejected readings
func (s IngestStats) Rejected() uint64 {
	return s.Negative + s.Invalid
}

// Tracker guards a fuel.Monitor for use from several goroutines, e.g. an
// ingest loop and a metrics scrape
type Tracker struct {
	mu      sync.RWMutex
	monitor fuel.Monitor
	stats   IngestStats
}

// NewTracker creates a tracker with an empty monitor
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record inserts an accepted reading
func (t *Tracker) Record(level fuel.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.monitor.Insert(level)
	t.stats.Accepted++
}

// Reject counts a reading that failed validation with the given kind
func (t *Tracker) Reject(kind fuel.ErrorKind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch kind {
	case fuel.KindNegative:
		t.stats.Negative++
	default:
		t.stats.Invalid++
	}
}

// Snapshot returns the monitor's current aggregates
func (t *Tracker) Snapshot() fuel.Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.monitor.Snapshot()
}

// Readings returns the held readings from oldest to newest
func (t *Tracker) Readings() []fuel.Level {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.monitor.Readings()
}

// Stats returns the ingest counters
func (t *Tracker) Stats() IngestStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.stats
}
