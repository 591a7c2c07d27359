package steps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// parseNumber accepts plain decimals as well as NaN, Inf and -Inf
func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q in step: %w", raw, err)
	}
	return v, nil
}

// parseNumberList parses "1, 2.5, 3"
func parseNumberList(raw string) ([]float64, error) {
	fields := strings.Split(raw, ",")
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := parseNumber(field)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func approxEqual(expected, actual float64) bool {
	tolerance := 1e-9 * math.Max(1, math.Abs(expected))
	return math.Abs(expected-actual) <= tolerance
}

// cellValue returns the cell of row under columnName, using the header row
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) (string, error) {
	header := table.Rows[0]
	for i, cell := range header.Cells {
		if cell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value, nil
		}
	}
	return "", fmt.Errorf("table has no column %q", columnName)
}
