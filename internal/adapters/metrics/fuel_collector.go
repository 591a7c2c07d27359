package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring"
	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

// SummarySource is what the collector reads on every scrape
type SummarySource interface {
	Snapshot() fuel.Summary
	Stats() monitoring.IngestStats
}

// FuelCollector exposes the tracked fuel history as gauges. Values are
// read at scrape time, so nothing has to be pushed when readings arrive.
type FuelCollector struct {
	source SummarySource

	minLitres       *prometheus.Desc
	maxLitres       *prometheus.Desc
	meanLitres      *prometheus.Desc
	readings        *prometheus.Desc
	capacity        *prometheus.Desc
	referenceLitres *prometheus.Desc
	readingsTotal   *prometheus.Desc
}

// NewFuelCollector creates a collector reading from source
func NewFuelCollector(source SummarySource) *FuelCollector {
	return &FuelCollector{
		source: source,

		minLitres: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, monitorSubsystem, "level_min_litres"),
			"Smallest fuel level in the reading history",
			nil, nil,
		),
		maxLitres: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, monitorSubsystem, "level_max_litres"),
			"Largest fuel level in the reading history",
			nil, nil,
		),
		meanLitres: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, monitorSubsystem, "level_mean_litres"),
			"Mean fuel level over the reading history",
			nil, nil,
		),
		readings: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, monitorSubsystem, "readings"),
			"Number of readings currently held in the history",
			nil, nil,
		),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, monitorSubsystem, "capacity"),
			"Maximum number of readings the history retains",
			nil, nil,
		),
		referenceLitres: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, monitorSubsystem, "level_max_reference_litres"),
			"Configured tank ceiling reference level",
			nil, nil,
		),
		readingsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, ingestSubsystem, "readings_total"),
			"Total sensor readings processed by validation result",
			[]string{"result"}, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *FuelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.minLitres
	ch <- c.maxLitres
	ch <- c.meanLitres
	ch <- c.readings
	ch <- c.capacity
	ch <- c.referenceLitres
	ch <- c.readingsTotal
}

// Collect implements prometheus.Collector
func (c *FuelCollector) Collect(ch chan<- prometheus.Metric) {
	summary := c.source.Snapshot()
	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.readings, prometheus.GaugeValue, float64(summary.Count))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(fuel.HistoryCapacity))
	ch <- prometheus.MustNewConstMetric(c.referenceLitres, prometheus.GaugeValue, fuel.MaxLevel.Litres())

	// No data means no aggregate; a zero gauge would read as an empty tank
	if summary.HasData {
		ch <- prometheus.MustNewConstMetric(c.minLitres, prometheus.GaugeValue, summary.Min.Litres())
		ch <- prometheus.MustNewConstMetric(c.maxLitres, prometheus.GaugeValue, summary.Max.Litres())
		ch <- prometheus.MustNewConstMetric(c.meanLitres, prometheus.GaugeValue, summary.Mean.Litres())
	}

	ch <- prometheus.MustNewConstMetric(c.readingsTotal, prometheus.CounterValue, float64(stats.Accepted), "accepted")
	ch <- prometheus.MustNewConstMetric(c.readingsTotal, prometheus.CounterValue, float64(stats.Negative), "negative")
	ch <- prometheus.MustNewConstMetric(c.readingsTotal, prometheus.CounterValue, float64(stats.Invalid), "invalid")
}
