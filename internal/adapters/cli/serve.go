package cli

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/fuelmon-go/internal/adapters/metrics"
	"github.com/andrescamacho/fuelmon-go/internal/adapters/sensor"
	"github.com/andrescamacho/fuelmon-go/internal/application/common"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring/commands"
	"github.com/andrescamacho/fuelmon-go/internal/application/setup"
	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/logging"
	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		source  string
		listen  string
		pidPath string
		strict  bool
		watch   bool
		perSec  float64
	)

	cmd := &cobra.Command{
		Use:   "serve [readings-ml...]",
		Short: "Expose fuel history metrics over HTTP",
		Long: `Ingest fuel readings and expose the history min, max and mean as
Prometheus gauges until interrupted.

With --watch the readings file is followed and appended readings are
ingested as they arrive. --rate replays readings at a fixed pace, like a
sampling sensor.

Examples:
  fuelmon serve --file readings.txt
  fuelmon serve --file probe.log --watch --rate 2
  fuelmon serve --listen :9310 --pid-file /run/fuelmon.pid 1000 2000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime()
			if err != nil {
				return err
			}
			defer env.Close()

			if !cmd.Flags().Changed("file") {
				source = env.cfg.Sensor.Source
			}
			if !cmd.Flags().Changed("listen") {
				listen = env.cfg.Metrics.Address()
			}
			if !cmd.Flags().Changed("pid-file") {
				pidPath = env.cfg.Metrics.PIDFile
			}
			if !cmd.Flags().Changed("strict") {
				strict = env.cfg.Sensor.Strict
			}
			if !cmd.Flags().Changed("watch") {
				watch = env.cfg.Sensor.Watch
			}
			if !cmd.Flags().Changed("rate") {
				perSec = env.cfg.Sensor.Rate
			}
			if watch && (source == "" || source == sensor.StdinSource) {
				return fmt.Errorf("--watch needs a readings file")
			}

			logger := logging.Component(env.logger, "serve")

			if pidPath != "" {
				pid := pidfile.New(pidPath)
				if err := pid.Acquire(); err != nil {
					return err
				}
				logger.WithField("pid_file", pid.Path()).Debug("Acquired PID file")
				defer func() {
					if err := pid.Release(); err != nil {
						logger.WithError(err).WithField("pid_file", pid.Path()).Warn("Failed to release PID file")
					}
				}()
			}

			plan := feedPlan{args: args, strict: strict, perSecond: perSec}
			if watch {
				plan.follow = source
			} else if plan.readings, err = collectReadings(cmd, nil, source); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, logger, plan, listen, env.cfg.Metrics.Path)
		},
	}

	cmd.Flags().StringVarP(&source, "file", "f", "", "Readings file, or - for stdin")
	cmd.Flags().StringVar(&listen, "listen", "", "Metrics listen address (default from config)")
	cmd.Flags().StringVar(&pidPath, "pid-file", "", "PID file guarding against a second instance")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first invalid reading")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep following --file for new readings")
	cmd.Flags().Float64Var(&perSec, "rate", 0, "Replay readings at this many per second (0 = all at once)")

	return cmd
}

// feedPlan says which readings serve ingests and how
type feedPlan struct {
	args      []string
	readings  []string
	follow    string
	strict    bool
	perSecond float64
}

// serve publishes a tracker over HTTP while the plan's readings are fed
// into it. A strict rejection stops the server and is returned.
func serve(ctx context.Context, logger *logrus.Entry, plan feedPlan, listen, path string) error {
	registry := setup.NewHandlerRegistry(nil)

	reg := metrics.NewRegistry()
	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(reg); err != nil {
		return fmt.Errorf("failed to register command metrics: %w", err)
	}
	if err := metrics.RegisterAll(reg, metrics.NewFuelCollector(registry.Tracker())); err != nil {
		return fmt.Errorf("failed to register fuel metrics: %w", err)
	}

	m, err := registry.CreateConfiguredMediator(metrics.PrometheusMiddleware(commandMetrics))
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	ingest := func(ctx context.Context, readings []string) error {
		resp, err := m.Send(common.WithLogger(ctx, logger), &commands.RecordReadingsCommand{
			Readings: readings,
			Strict:   plan.strict,
		})
		if err != nil {
			return err
		}
		recorded := resp.(*commands.RecordReadingsResponse)
		logger.WithFields(logrus.Fields{
			"batch":    recorded.BatchID,
			"accepted": recorded.Accepted,
			"rejected": len(recorded.Rejected),
		}).Info("Readings ingested")
		return nil
	}
	feeder := sensor.NewFeeder(ingest, plan.perSecond, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var feedErr error
	fed := make(chan struct{})
	go func() {
		defer close(fed)
		err := feeder.Feed(ctx, slices.Concat(plan.args, plan.readings))
		if err == nil && plan.follow != "" {
			err = feeder.Follow(ctx, plan.follow)
		}
		if err != nil && ctx.Err() == nil {
			feedErr = err
			cancel()
		}
	}()

	serveErr := metrics.NewServer(listen, path, reg, logger).ListenAndServe(ctx)
	cancel()
	<-fed

	if feedErr != nil {
		return feedErr
	}
	return serveErr
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
