package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

type fuelMonitorContext struct {
	monitor *fuel.Monitor
}

func (mc *fuelMonitorContext) reset() {
	mc.monitor = nil
}

// Given steps

func (mc *fuelMonitorContext) anEmptyFuelMonitor() error {
	mc.monitor = fuel.NewMonitor()
	return nil
}

// When steps

func (mc *fuelMonitorContext) iInsertFuelLevelsOfLitres(raw string) error {
	if mc.monitor == nil {
		return fmt.Errorf("no fuel monitor available")
	}
	values, err := parseNumberList(raw)
	if err != nil {
		return err
	}
	for _, v := range values {
		mc.monitor.Insert(fuel.WithLitres(v))
	}
	return nil
}

func (mc *fuelMonitorContext) iInsertTheFollowingFuelLevels(table *godog.Table) error {
	if mc.monitor == nil {
		return fmt.Errorf("no fuel monitor available")
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("table needs a header row and at least one reading")
	}
	for _, row := range table.Rows[1:] {
		raw, err := cellValue(table, row, "litres")
		if err != nil {
			return err
		}
		litres, err := parseNumber(raw)
		if err != nil {
			return err
		}
		mc.monitor.Insert(fuel.WithLitres(litres))
	}
	return nil
}

func (mc *fuelMonitorContext) iInsertReadingsCountingUpFromLitre(count int, start float64) error {
	if mc.monitor == nil {
		return fmt.Errorf("no fuel monitor available")
	}
	for i := 0; i < count; i++ {
		mc.monitor.Insert(fuel.WithLitres(start + float64(i)))
	}
	return nil
}

// Then steps

func (mc *fuelMonitorContext) aggregate(name string) (fuel.Level, bool, error) {
	switch name {
	case "minimum":
		level, ok := mc.monitor.Min()
		return level, ok, nil
	case "maximum":
		level, ok := mc.monitor.Max()
		return level, ok, nil
	case "mean":
		level, ok := mc.monitor.Mean()
		return level, ok, nil
	default:
		return fuel.Level{}, false, fmt.Errorf("unknown aggregate %q", name)
	}
}

func (mc *fuelMonitorContext) theMonitorAggregateShouldBeLitres(name, raw string) error {
	expected, err := parseNumber(raw)
	if err != nil {
		return err
	}
	level, ok, err := mc.aggregate(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected a %s of %v litres, but the monitor is empty", name, expected)
	}
	if !approxEqual(expected, level.Litres()) {
		return fmt.Errorf("expected %s %v litres, got %v", name, expected, level.Litres())
	}
	return nil
}

func (mc *fuelMonitorContext) theMonitorShouldHaveNoAggregate(name string) error {
	level, ok, err := mc.aggregate(name)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected no %s, got %s", name, level)
	}
	return nil
}

func (mc *fuelMonitorContext) theMonitorShouldHoldReadings(expected int) error {
	if mc.monitor.Len() != expected {
		return fmt.Errorf("expected %d readings, got %d", expected, mc.monitor.Len())
	}
	return nil
}

func (mc *fuelMonitorContext) theMonitorReadingsShouldBeLitres(raw string) error {
	expected, err := parseNumberList(raw)
	if err != nil {
		return err
	}
	actual := mc.monitor.Readings()
	if len(actual) != len(expected) {
		return fmt.Errorf("expected %d readings, got %d", len(expected), len(actual))
	}
	for i, level := range actual {
		if !approxEqual(expected[i], level.Litres()) {
			return fmt.Errorf("reading %d: expected %v litres, got %v", i+1, expected[i], level.Litres())
		}
	}
	return nil
}

func InitializeFuelMonitorScenario(ctx *godog.ScenarioContext) {
	mc := &fuelMonitorContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		mc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty fuel monitor$`, mc.anEmptyFuelMonitor)

	// When steps
	ctx.Step(`^I insert fuel levels of ([-0-9.eE+, ]+) litres$`, mc.iInsertFuelLevelsOfLitres)
	ctx.Step(`^I insert the following fuel levels:$`, mc.iInsertTheFollowingFuelLevels)
	ctx.Step(`^I insert (\d+) readings counting up from ([0-9.]+) litres?$`, mc.iInsertReadingsCountingUpFromLitre)

	// Then steps
	ctx.Step(`^the monitor (minimum|maximum|mean) should be (\S+) litres$`, mc.theMonitorAggregateShouldBeLitres)
	ctx.Step(`^the monitor should have no (minimum|maximum|mean)$`, mc.theMonitorShouldHaveNoAggregate)
	ctx.Step(`^the monitor should hold (\d+) readings?$`, mc.theMonitorShouldHoldReadings)
	ctx.Step(`^the monitor readings should be ([-0-9.eE+, ]+) litres$`, mc.theMonitorReadingsShouldBeLitres)
}
