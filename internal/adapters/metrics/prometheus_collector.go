package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all metrics
	namespace = "fuelmon"
	// Subsystem for fuel history metrics
	monitorSubsystem = "monitor"
	// Subsystem for reading ingestion and command metrics
	ingestSubsystem = "ingest"
)

// NewRegistry creates a Prometheus registry preloaded with the Go runtime
// and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RegisterAll registers every given collector, stopping at the first error
func RegisterAll(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
