package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect fuelmon configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FUELMON_* prefix, e.g. FUELMON_LOGGING_LEVEL)
2. Config file (fuelmon.yaml, or --config)
3. Default values

Examples:
  fuelmon config show
  FUELMON_METRICS_PORT=9400 fuelmon config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				fmt.Fprintln(out)
				cfg = config.Default()
			}

			printConfig(out, cfg)
			return nil
		},
	}
}

func printConfig(w io.Writer, cfg *config.Config) {
	orUnset := func(s string) string {
		if s == "" {
			return "(not set)"
		}
		return s
	}

	fmt.Fprintln(w, "fuelmon Configuration")
	fmt.Fprintln(w, "=====================")

	fmt.Fprintln(w, "Logging:")
	fmt.Fprintf(w, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "  Output:           %s\n", cfg.Logging.Output)
	if cfg.Logging.Output == "file" {
		fmt.Fprintf(w, "  File:             %s\n", cfg.Logging.FilePath)
		fmt.Fprintf(w, "  Rotation:         %t (max %d MB, %d backups, %d days)\n",
			cfg.Logging.Rotation.Enabled, cfg.Logging.Rotation.MaxSize,
			cfg.Logging.Rotation.MaxBackups, cfg.Logging.Rotation.MaxAge)
	}

	fmt.Fprintln(w, "\nMetrics:")
	fmt.Fprintf(w, "  Address:          %s\n", cfg.Metrics.Address())
	fmt.Fprintf(w, "  Path:             %s\n", cfg.Metrics.Path)
	fmt.Fprintf(w, "  PID File:         %s\n", orUnset(cfg.Metrics.PIDFile))

	fmt.Fprintln(w, "\nSensor:")
	fmt.Fprintf(w, "  Source:           %s\n", orUnset(cfg.Sensor.Source))
	fmt.Fprintf(w, "  Strict:           %t\n", cfg.Sensor.Strict)
	fmt.Fprintf(w, "  Watch:            %t\n", cfg.Sensor.Watch)
	fmt.Fprintf(w, "  Rate:             %g/s\n", cfg.Sensor.Rate)
	fmt.Fprintf(w, "  Report Format:    %s\n", cfg.Sensor.ReportFormat)
}
