package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/fuelmon-go/internal/adapters/sensor"
	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/config"
	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/logging"
)

// runtimeEnv bundles what every command needs after startup
type runtimeEnv struct {
	cfg    *config.Config
	logger *logrus.Logger
	closer io.Closer
}

// Close releases the log output
func (r *runtimeEnv) Close() {
	_ = r.closer.Close()
}

// loadRuntime loads configuration and builds the logger.
// --verbose forces debug level regardless of configuration.
func loadRuntime() (*runtimeEnv, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return &runtimeEnv{cfg: cfg, logger: logger, closer: closer}, nil
}

// collectReadings merges readings given as arguments with those read from
// source; an empty source reads nothing
func collectReadings(cmd *cobra.Command, args []string, source string) ([]string, error) {
	readings := append([]string(nil), args...)

	if source != "" {
		fromSource, err := sensor.Load(source, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		readings = append(readings, fromSource...)
	}

	return readings, nil
}
