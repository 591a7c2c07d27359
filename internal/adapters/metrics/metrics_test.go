package metrics_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelmon-go/internal/adapters/metrics"
	"github.com/andrescamacho/fuelmon-go/internal/application/common"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring"
	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/logging"
)

func TestFuelCollector_EmptyTrackerOmitsAggregates(t *testing.T) {
	collector := metrics.NewFuelCollector(monitoring.NewTracker())

	expected := `
# HELP fuelmon_monitor_capacity Maximum number of readings the history retains
# TYPE fuelmon_monitor_capacity gauge
fuelmon_monitor_capacity 16
# HELP fuelmon_monitor_readings Number of readings currently held in the history
# TYPE fuelmon_monitor_readings gauge
fuelmon_monitor_readings 0
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"fuelmon_monitor_capacity",
		"fuelmon_monitor_readings",
		"fuelmon_monitor_level_min_litres",
		"fuelmon_monitor_level_max_litres",
		"fuelmon_monitor_level_mean_litres",
	)
	assert.NoError(t, err)
}

func TestFuelCollector_ReportsAggregates(t *testing.T) {
	tracker := monitoring.NewTracker()
	tracker.Record(fuel.WithLitres(1))
	tracker.Record(fuel.WithLitres(2))
	tracker.Record(fuel.WithLitres(3))
	tracker.Reject(fuel.KindNegative)
	tracker.Reject(fuel.KindInvalid)
	tracker.Reject(fuel.KindInvalid)

	collector := metrics.NewFuelCollector(tracker)

	expected := `
# HELP fuelmon_ingest_readings_total Total sensor readings processed by validation result
# TYPE fuelmon_ingest_readings_total counter
fuelmon_ingest_readings_total{result="accepted"} 3
fuelmon_ingest_readings_total{result="invalid"} 2
fuelmon_ingest_readings_total{result="negative"} 1
# HELP fuelmon_monitor_level_max_litres Largest fuel level in the reading history
# TYPE fuelmon_monitor_level_max_litres gauge
fuelmon_monitor_level_max_litres 3
# HELP fuelmon_monitor_level_max_reference_litres Configured tank ceiling reference level
# TYPE fuelmon_monitor_level_max_reference_litres gauge
fuelmon_monitor_level_max_reference_litres 10
# HELP fuelmon_monitor_level_mean_litres Mean fuel level over the reading history
# TYPE fuelmon_monitor_level_mean_litres gauge
fuelmon_monitor_level_mean_litres 2
# HELP fuelmon_monitor_level_min_litres Smallest fuel level in the reading history
# TYPE fuelmon_monitor_level_min_litres gauge
fuelmon_monitor_level_min_litres 1
# HELP fuelmon_monitor_readings Number of readings currently held in the history
# TYPE fuelmon_monitor_readings gauge
fuelmon_monitor_readings 3
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"fuelmon_ingest_readings_total",
		"fuelmon_monitor_level_max_litres",
		"fuelmon_monitor_level_max_reference_litres",
		"fuelmon_monitor_level_mean_litres",
		"fuelmon_monitor_level_min_litres",
		"fuelmon_monitor_readings",
	)
	assert.NoError(t, err)
}

func TestFuelCollector_Lint(t *testing.T) {
	problems, err := testutil.CollectAndLint(metrics.NewFuelCollector(monitoring.NewTracker()))

	require.NoError(t, err)
	assert.Empty(t, problems)
}

type echoQuery struct{}

type failingCommand struct{}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	collector := metrics.NewCommandMetricsCollector()
	reg := prometheus.NewRegistry()
	require.NoError(t, collector.Register(reg))

	mw := metrics.PrometheusMiddleware(collector)
	ok := func(context.Context, common.Request) (common.Response, error) { return "ok", nil }
	fail := func(context.Context, common.Request) (common.Response, error) { return nil, errors.New("boom") }

	_, err := mw(context.Background(), &echoQuery{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &echoQuery{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), failingCommand{}, fail)
	require.Error(t, err)

	expected := `
# HELP fuelmon_ingest_commands_total Total number of commands executed by type and status
# TYPE fuelmon_ingest_commands_total counter
fuelmon_ingest_commands_total{command="echoQuery",status="success"} 2
fuelmon_ingest_commands_total{command="failingCommand",status="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fuelmon_ingest_commands_total"))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := metrics.PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), &echoQuery{}, func(context.Context, common.Request) (common.Response, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, resp)
}

func TestServer_ServesRegistry(t *testing.T) {
	tracker := monitoring.NewTracker()
	tracker.Record(fuel.WithLitres(4.5))

	reg := metrics.NewRegistry()
	require.NoError(t, metrics.RegisterAll(reg, metrics.NewFuelCollector(tracker)))

	server := metrics.NewServer("127.0.0.1:0", "/metrics", reg, logrus.NewEntry(logging.Discard()))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "fuelmon_monitor_level_mean_litres 4.5")
	assert.Contains(t, body, "go_goroutines")
}

func TestServer_StopsOnCancel(t *testing.T) {
	reg := metrics.NewRegistry()
	server := metrics.NewServer("127.0.0.1:0", "/metrics", reg, logrus.NewEntry(logging.Discard()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/metrics"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
