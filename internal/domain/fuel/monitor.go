package fuel

import (
	"iter"
	"math"
)

// Monitor tracks the most recent fuel readings and answers min, max and
// mean over them. The zero value is an empty monitor ready for use.
//
// Monitor does no locking; callers sharing one across goroutines must
// synchronise access themselves.
type Monitor struct {
	readings history
}

// Summary is a point-in-time view of a monitor's aggregates.
// Min, Max and Mean are only meaningful when HasData is true.
type Summary struct {
	Count   int
	Min     Level
	Max     Level
	Mean    Level
	HasData bool
}

// NewMonitor creates a monitor with no readings
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Insert records a reading as the newest entry. When the monitor already
// holds HistoryCapacity readings the oldest one is dropped.
func (m *Monitor) Insert(level Level) {
	m.readings.push(level)
}

// Len returns the number of readings currently held
func (m *Monitor) Len() int {
	return m.readings.len()
}

// Cap returns the fixed history capacity
func (m *Monitor) Cap() int {
	return HistoryCapacity
}

// All yields the held readings from oldest to newest
func (m *Monitor) All() iter.Seq[Level] {
	return m.readings.oldestOrdered()
}

// Readings returns a copy of the held readings from oldest to newest
func (m *Monitor) Readings() []Level {
	out := make([]Level, 0, m.readings.len())
	for level := range m.readings.oldestOrdered() {
		out = append(out, level)
	}
	return out
}

// Min returns the smallest reading, or false if there are none.
// Which of several equal readings is returned is unspecified.
func (m *Monitor) Min() (Level, bool) {
	return m.extreme(func(candidate, best Level) bool { return candidate.Less(best) })
}

// Max returns the largest reading, or false if there are none.
// Which of several equal readings is returned is unspecified.
func (m *Monitor) Max() (Level, bool) {
	return m.extreme(func(candidate, best Level) bool { return best.Less(candidate) })
}

// Mean returns the arithmetic mean of the held readings, or false if there are none
func (m *Monitor) Mean() (Level, bool) {
	n := m.readings.len()
	if n == 0 {
		return Level{}, false
	}
	return WithLitres(m.meanLitres(n)), true
}

// Snapshot computes every aggregate at once
func (m *Monitor) Snapshot() Summary {
	s := Summary{Count: m.readings.len()}
	if s.Count == 0 {
		return s
	}
	s.HasData = true
	s.Min, _ = m.Min()
	s.Max, _ = m.Max()
	s.Mean, _ = m.Mean()
	return s
}

func (m *Monitor) extreme(better func(candidate, best Level) bool) (Level, bool) {
	var (
		best  Level
		found bool
	)
	for level := range m.readings.oldestOrdered() {
		if !found || better(level, best) {
			best = level
			found = true
		}
	}
	return best, found
}

// meanLitres requires n > 0. Every held value is finite and non-negative,
// so the plain sum can only go wrong by overflowing to +Inf; the running
// mean used then stays between the smallest and largest reading.
func (m *Monitor) meanLitres(n int) float64 {
	var total float64
	for level := range m.readings.oldestOrdered() {
		total += level.Litres()
	}
	if !math.IsInf(total, 0) {
		return total / float64(n)
	}

	var mean float64
	i := 0
	for level := range m.readings.oldestOrdered() {
		i++
		mean += (level.Litres() - mean) / float64(i)
	}
	return mean
}
