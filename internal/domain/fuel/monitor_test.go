package fuel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

func litres(values ...float64) []fuel.Level {
	out := make([]fuel.Level, len(values))
	for i, v := range values {
		out[i] = fuel.WithLitres(v)
	}
	return out
}

func monitorWith(values ...float64) *fuel.Monitor {
	m := fuel.NewMonitor()
	for _, level := range litres(values...) {
		m.Insert(level)
	}
	return m
}

func TestMonitor_Empty(t *testing.T) {
	m := fuel.NewMonitor()

	_, ok := m.Min()
	assert.False(t, ok)
	_, ok = m.Max()
	assert.False(t, ok)
	_, ok = m.Mean()
	assert.False(t, ok)

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, fuel.HistoryCapacity, m.Cap())
	assert.Empty(t, m.Readings())
	assert.Equal(t, fuel.Summary{}, m.Snapshot())
}

func TestMonitor_ZeroValueIsUsable(t *testing.T) {
	var m fuel.Monitor
	m.Insert(fuel.WithLitres(4))

	mean, ok := m.Mean()
	require.True(t, ok)
	assert.Equal(t, 4.0, mean.Litres())
}

func TestMonitor_MinMaxMean(t *testing.T) {
	m := monitorWith(1.0, 2.0, 3.0)

	minLevel, ok := m.Min()
	require.True(t, ok)
	assert.Equal(t, fuel.WithLitres(1.0), minLevel)

	maxLevel, ok := m.Max()
	require.True(t, ok)
	assert.Equal(t, fuel.WithLitres(3.0), maxLevel)

	mean, ok := m.Mean()
	require.True(t, ok)
	assert.Equal(t, fuel.WithLitres(2.0), mean)
}

func TestMonitor_UnorderedInput(t *testing.T) {
	m := monitorWith(5, 0.5, 9, 2)

	minLevel, _ := m.Min()
	maxLevel, _ := m.Max()
	mean, _ := m.Mean()

	assert.Equal(t, 0.5, minLevel.Litres())
	assert.Equal(t, 9.0, maxLevel.Litres())
	assert.Equal(t, 4.125, mean.Litres())
}

func TestMonitor_TiesCompareByMagnitude(t *testing.T) {
	m := monitorWith(2, 7, 2, 7)

	minLevel, _ := m.Min()
	maxLevel, _ := m.Max()

	assert.True(t, minLevel.Equal(fuel.WithLitres(2)))
	assert.True(t, maxLevel.Equal(fuel.WithLitres(7)))
}

func TestMonitor_KeepsInsertionOrderBeforeWrap(t *testing.T) {
	m := monitorWith(3, 1, 2)

	assert.Equal(t, litres(3, 1, 2), m.Readings())
}

func TestMonitor_EvictsOldestPastCapacity(t *testing.T) {
	m := fuel.NewMonitor()
	for i := 1; i <= 17; i++ {
		m.Insert(fuel.WithLitres(float64(i)))
	}

	require.Equal(t, fuel.HistoryCapacity, m.Len())

	minLevel, _ := m.Min()
	assert.Equal(t, 2.0, minLevel.Litres())
	maxLevel, _ := m.Max()
	assert.Equal(t, 17.0, maxLevel.Litres())
	mean, _ := m.Mean()
	assert.Equal(t, 9.5, mean.Litres())

	readings := m.Readings()
	assert.Equal(t, fuel.WithLitres(2), readings[0])
	assert.Equal(t, fuel.WithLitres(17), readings[len(readings)-1])
}

func TestMonitor_MultipleWraps(t *testing.T) {
	m := fuel.NewMonitor()
	for i := 0; i < 100; i++ {
		m.Insert(fuel.WithLitres(float64(i)))
	}

	assert.Equal(t, fuel.HistoryCapacity, m.Len())

	want := make([]float64, 0, fuel.HistoryCapacity)
	for i := 100 - fuel.HistoryCapacity; i < 100; i++ {
		want = append(want, float64(i))
	}
	assert.Equal(t, litres(want...), m.Readings())
}

func TestMonitor_AllStopsEarly(t *testing.T) {
	m := monitorWith(1, 2, 3, 4)

	var seen []fuel.Level
	for level := range m.All() {
		seen = append(seen, level)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, litres(1, 2), seen)
}

func TestMonitor_QueriesAreIdempotent(t *testing.T) {
	m := monitorWith(4, 8, 6)

	min1, _ := m.Min()
	max1, _ := m.Max()
	mean1, _ := m.Mean()
	before := m.Readings()

	min2, _ := m.Min()
	max2, _ := m.Max()
	mean2, _ := m.Mean()

	assert.Equal(t, min1, min2)
	assert.Equal(t, max1, max2)
	assert.Equal(t, mean1, mean2)
	assert.Equal(t, before, m.Readings())
}

func TestMonitor_ReadingsIsACopy(t *testing.T) {
	m := monitorWith(1, 2)

	readings := m.Readings()
	readings[0] = fuel.WithLitres(99)

	assert.Equal(t, litres(1, 2), m.Readings())
}

func TestMonitor_MeanOfHugeValuesStaysFinite(t *testing.T) {
	m := fuel.NewMonitor()
	for i := 0; i < fuel.HistoryCapacity; i++ {
		m.Insert(fuel.WithLitres(math.MaxFloat64))
	}

	var mean fuel.Level
	assert.NotPanics(t, func() { mean, _ = m.Mean() })
	assert.False(t, math.IsInf(mean.Litres(), 0))
	assert.Equal(t, math.MaxFloat64, mean.Litres())
}

func TestMonitor_MeanWithZeros(t *testing.T) {
	m := monitorWith(0, 0, 0)

	mean, ok := m.Mean()
	require.True(t, ok)
	assert.True(t, mean.IsZero())
}

func TestMonitor_Snapshot(t *testing.T) {
	m := monitorWith(1, 2, 3)

	snapshot := m.Snapshot()

	assert.Equal(t, fuel.Summary{
		Count:   3,
		Min:     fuel.WithLitres(1),
		Max:     fuel.WithLitres(3),
		Mean:    fuel.WithLitres(2),
		HasData: true,
	}, snapshot)
}
