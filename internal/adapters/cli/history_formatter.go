package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

const gaugeWidth = 10

// HistoryFormatter renders the reading history as a tree with a fill gauge
// per reading, relative to a reference ceiling
type HistoryFormatter struct {
	useColors bool
}

// NewHistoryFormatter creates a new history formatter
func NewHistoryFormatter(useColors bool) *HistoryFormatter {
	return &HistoryFormatter{useColors: useColors}
}

// FormatHistory renders readings oldest first
func (f *HistoryFormatter) FormatHistory(readings []fuel.Level, reference fuel.Level) string {
	if len(readings) == 0 {
		return "(no readings)\n"
	}

	var builder strings.Builder
	builder.WriteString("History (oldest first)\n")

	for i, level := range readings {
		linePrefix := "├── "
		if i == len(readings)-1 {
			linePrefix = "└── "
		}

		builder.WriteString(fmt.Sprintf("%s#%-3d %-16s %s%s%s\n",
			linePrefix,
			i+1,
			level.String(),
			f.levelColor(level, reference),
			gauge(level, reference),
			f.colorReset(),
		))
	}

	return builder.String()
}

// FormatCompactHistory renders readings as a single line of litre values
func (f *HistoryFormatter) FormatCompactHistory(readings []fuel.Level) string {
	if len(readings) == 0 {
		return "(empty)"
	}

	parts := make([]string, len(readings))
	for i, level := range readings {
		parts[i] = fmt.Sprintf("%g", level.Litres())
	}
	return strings.Join(parts, " → ")
}

// gauge draws a fixed-width bar; readings above the reference are capped
// and marked with '+'
func gauge(level, reference fuel.Level) string {
	if reference.IsZero() {
		return ""
	}

	filled, overflow := gaugeWidth, "+"
	if !reference.Less(level) {
		filled = int(level.Litres()/reference.Litres()*gaugeWidth + 0.5)
		overflow = ""
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled) + "]" + overflow
}

// levelColor returns an ANSI color code by fill ratio
func (f *HistoryFormatter) levelColor(level, reference fuel.Level) string {
	if !f.useColors || reference.IsZero() {
		return ""
	}

	ratio := level.Litres() / reference.Litres()
	switch {
	case ratio >= 0.5:
		return "\033[32m" // Green
	case ratio >= 0.2:
		return "\033[33m" // Yellow
	default:
		return "\033[31m" // Red
	}
}

// colorReset returns ANSI reset code
func (f *HistoryFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}
