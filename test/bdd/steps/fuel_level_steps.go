package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

type fuelLevelContext struct {
	level     fuel.Level
	other     fuel.Level
	err       error
	violation *fuel.InvariantViolation
	stringRep string
}

func (lc *fuelLevelContext) reset() {
	lc.level = fuel.Level{}
	lc.other = fuel.Level{}
	lc.err = nil
	lc.violation = nil
	lc.stringRep = ""
}

// Given steps

func (lc *fuelLevelContext) fuelLevelsOfAndLitres(a, b string) error {
	first, err := parseNumber(a)
	if err != nil {
		return err
	}
	second, err := parseNumber(b)
	if err != nil {
		return err
	}
	lc.level = fuel.WithLitres(first)
	lc.other = fuel.WithLitres(second)
	return nil
}

// When steps

func (lc *fuelLevelContext) iCreateAFuelLevelOfMillilitres(raw string) error {
	ml, err := parseNumber(raw)
	if err != nil {
		return err
	}
	lc.level, lc.err = fuel.WithMillilitres(ml)
	return nil
}

func (lc *fuelLevelContext) iParseTheReading(raw string) error {
	lc.level, lc.err = fuel.ParseMillilitres(raw)
	return nil
}

func (lc *fuelLevelContext) iCreateAFuelLevelOfLitres(raw string) (err error) {
	litres, err := parseNumber(raw)
	if err != nil {
		return err
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		violation, ok := r.(*fuel.InvariantViolation)
		if !ok {
			err = fmt.Errorf("unexpected panic value %v", r)
			return
		}
		lc.violation = violation
	}()

	lc.level = fuel.WithLitres(litres)
	return nil
}

func (lc *fuelLevelContext) iCreateAnEmptyFuelLevel() error {
	lc.level = fuel.Zero()
	return nil
}

func (lc *fuelLevelContext) iGetTheLevelStringRepresentation() error {
	lc.stringRep = lc.level.String()
	return nil
}

// Then steps

func (lc *fuelLevelContext) theLevelShouldBeLitres(raw string) error {
	expected, err := parseNumber(raw)
	if err != nil {
		return err
	}
	if lc.err != nil {
		return fmt.Errorf("expected a level, got error: %v", lc.err)
	}
	if !approxEqual(expected, lc.level.Litres()) {
		return fmt.Errorf("expected %v litres, got %v", expected, lc.level.Litres())
	}
	return nil
}

func (lc *fuelLevelContext) theLevelShouldBeMillilitres(raw string) error {
	expected, err := parseNumber(raw)
	if err != nil {
		return err
	}
	if !approxEqual(expected, lc.level.Millilitres()) {
		return fmt.Errorf("expected %v millilitres, got %v", expected, lc.level.Millilitres())
	}
	return nil
}

func (lc *fuelLevelContext) creationShouldFailWithKind(kind string) error {
	if lc.err == nil {
		return fmt.Errorf("expected creation to fail with %s, but it succeeded", kind)
	}
	var levelErr *fuel.LevelError
	if !errors.As(lc.err, &levelErr) {
		return fmt.Errorf("expected a fuel level error, got %T: %v", lc.err, lc.err)
	}
	if levelErr.Kind.String() != kind {
		return fmt.Errorf("expected kind %s, got %s", kind, levelErr.Kind)
	}
	return nil
}

func (lc *fuelLevelContext) creationShouldPanicWith(reason string) error {
	if lc.violation == nil {
		return fmt.Errorf("expected creation to panic with %q, but it did not", reason)
	}
	if lc.violation.Reason != reason {
		return fmt.Errorf("expected panic reason %q, got %q", reason, lc.violation.Reason)
	}
	return nil
}

func (lc *fuelLevelContext) theLevelStringShouldBe(expected string) error {
	if lc.stringRep != expected {
		return fmt.Errorf("expected string '%s', got '%s'", expected, lc.stringRep)
	}
	return nil
}

func (lc *fuelLevelContext) theFirstLevelShouldBeLessThanTheSecond() error {
	if !lc.level.Less(lc.other) || lc.other.Less(lc.level) {
		return fmt.Errorf("expected %s < %s", lc.level, lc.other)
	}
	return nil
}

func (lc *fuelLevelContext) theLevelsShouldBeEqual() error {
	if !lc.level.Equal(lc.other) || lc.level.Compare(lc.other) != 0 {
		return fmt.Errorf("expected %s == %s", lc.level, lc.other)
	}
	return nil
}

func (lc *fuelLevelContext) theReferenceMaximumShouldBeLitres(raw string) error {
	expected, err := parseNumber(raw)
	if err != nil {
		return err
	}
	if fuel.MaxLevel.Litres() != expected {
		return fmt.Errorf("expected reference maximum %v, got %v", expected, fuel.MaxLevel.Litres())
	}
	return nil
}

func InitializeFuelLevelScenario(ctx *godog.ScenarioContext) {
	lc := &fuelLevelContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^fuel levels of (\S+) and (\S+) litres$`, lc.fuelLevelsOfAndLitres)

	// When steps
	ctx.Step(`^I create a fuel level of (\S+) millilitres$`, lc.iCreateAFuelLevelOfMillilitres)
	ctx.Step(`^I create a fuel level of (\S+) litres$`, lc.iCreateAFuelLevelOfLitres)
	ctx.Step(`^I create an empty fuel level$`, lc.iCreateAnEmptyFuelLevel)
	ctx.Step(`^I parse the reading "([^"]*)"$`, lc.iParseTheReading)
	ctx.Step(`^I get the level string representation$`, lc.iGetTheLevelStringRepresentation)

	// Then steps
	ctx.Step(`^the level should be (\S+) litres$`, lc.theLevelShouldBeLitres)
	ctx.Step(`^the level should be (\S+) millilitres$`, lc.theLevelShouldBeMillilitres)
	ctx.Step(`^creation should fail with kind "([^"]*)"$`, lc.creationShouldFailWithKind)
	ctx.Step(`^creation should panic with "([^"]*)"$`, lc.creationShouldPanicWith)
	ctx.Step(`^the level string should be "([^"]*)"$`, lc.theLevelStringShouldBe)
	ctx.Step(`^the first level should be less than the second$`, lc.theFirstLevelShouldBeLessThanTheSecond)
	ctx.Step(`^the levels should be equal$`, lc.theLevelsShouldBeEqual)
	ctx.Step(`^the reference maximum should be (\S+) litres$`, lc.theReferenceMaximumShouldBeLitres)
}
