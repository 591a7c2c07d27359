package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/fuelmon-go/internal/application/common"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring/commands"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring/queries"
	"github.com/andrescamacho/fuelmon-go/internal/application/setup"
	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/logging"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	var (
		source       string
		format       string
		strict       bool
		showReadings bool
		useColors    bool
	)

	cmd := &cobra.Command{
		Use:   "report [readings-ml...]",
		Short: "Report min, max and mean over fuel readings",
		Long: `Validate fuel sensor readings given in millilitres and report the minimum,
maximum and mean of the most recent 16 valid readings.

Readings come from arguments and/or --file (use "-" for stdin). Invalid
readings (negative, NaN, infinite or unparseable) are logged and skipped,
or abort the command with --strict. Pass "--" before negative arguments.

Examples:
  fuelmon report 1000 2000 3000
  fuelmon report --file readings.txt --format yaml
  fuelmon report --file - --strict --show-readings < readings.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime()
			if err != nil {
				return err
			}
			defer env.Close()

			if !cmd.Flags().Changed("file") {
				source = env.cfg.Sensor.Source
			}
			if !cmd.Flags().Changed("format") {
				format = env.cfg.Sensor.ReportFormat
			}
			if !cmd.Flags().Changed("strict") {
				strict = env.cfg.Sensor.Strict
			}

			readings, err := collectReadings(cmd, args, source)
			if err != nil {
				return err
			}
			if len(readings) == 0 {
				return fmt.Errorf("no readings given: pass readings as arguments or use --file")
			}

			logger := logging.Component(env.logger, "report")
			summary, err := ingest(cmd.Context(), logger, readings, strict, showReadings || format == "text")
			if err != nil {
				return err
			}

			return renderReport(cmd.OutOrStdout(), format, summary, NewHistoryFormatter(useColors), showReadings)
		},
	}

	cmd.Flags().StringVarP(&source, "file", "f", "", "Readings file, or - for stdin")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first invalid reading")
	cmd.Flags().BoolVar(&showReadings, "show-readings", false, "Include the held readings in the report")
	cmd.Flags().BoolVar(&useColors, "color", false, "Colorize the reading history (text format)")

	return cmd
}

// ingest runs readings through a fresh mediator and returns the summary
func ingest(ctx context.Context, logger *logrus.Entry, readings []string, strict, includeReadings bool) (*queries.SummaryResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = common.WithLogger(ctx, logger)

	m, err := setup.NewHandlerRegistry(nil).CreateConfiguredMediator()
	if err != nil {
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	resp, err := m.Send(ctx, &commands.RecordReadingsCommand{Readings: readings, Strict: strict})
	if err != nil {
		return nil, err
	}
	recorded := resp.(*commands.RecordReadingsResponse)
	logger.WithFields(logrus.Fields{
		"batch":    recorded.BatchID,
		"accepted": recorded.Accepted,
		"rejected": len(recorded.Rejected),
	}).Info("Readings ingested")

	resp, err = m.Send(ctx, &queries.GetSummaryQuery{IncludeReadings: includeReadings})
	if err != nil {
		return nil, err
	}
	return resp.(*queries.SummaryResponse), nil
}

func renderReport(w io.Writer, format string, summary *queries.SummaryResponse, formatter *HistoryFormatter, tree bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return renderText(w, summary, formatter, tree)
	default:
		return fmt.Errorf("unsupported report format %q (want text, json or yaml)", format)
	}
}

// renderText prints the aggregates followed by the held readings, as a
// gauge tree when tree is set and as one compact line otherwise
func renderText(w io.Writer, summary *queries.SummaryResponse, formatter *HistoryFormatter, tree bool) error {
	aggregate := func(level fuel.Level) string {
		if !summary.Summary.HasData {
			return "(no data)"
		}
		return level.String()
	}

	fmt.Fprintln(w, "Fuel Monitor Report")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "  Readings:         %d/%d\n", summary.Count, summary.Capacity)
	fmt.Fprintf(w, "  Minimum:          %s\n", aggregate(summary.Summary.Min))
	fmt.Fprintf(w, "  Maximum:          %s\n", aggregate(summary.Summary.Max))
	fmt.Fprintf(w, "  Mean:             %s\n", aggregate(summary.Summary.Mean))
	fmt.Fprintf(w, "  Reference Max:    %s\n", fuel.MaxLevel)
	fmt.Fprintf(w, "  Accepted:         %d\n", summary.Accepted)
	fmt.Fprintf(w, "  Rejected:         %d\n", summary.Rejected)

	if summary.ReadingsLitres == nil {
		return nil
	}

	readings := make([]fuel.Level, len(summary.ReadingsLitres))
	for i, v := range summary.ReadingsLitres {
		readings[i] = fuel.WithLitres(v)
	}

	if !tree {
		_, err := fmt.Fprintf(w, "  Recent (litres):  %s\n", formatter.FormatCompactHistory(readings))
		return err
	}
	fmt.Fprintln(w)
	_, err := io.WriteString(w, formatter.FormatHistory(readings, fuel.MaxLevel))
	return err
}
