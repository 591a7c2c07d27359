package fuel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MillilitresPerLitre is the fixed factor between the two supported units
const MillilitresPerLitre = 1000.0

// MaxLevel is the system-wide ceiling reference of 10 litres.
// Construction does not enforce it as an upper bound.
var MaxLevel = WithLitres(10.0)

// Level is an immutable, validated quantity of fuel in the tank.
// The stored magnitude is always finite and non-negative, so the zero
// value is a valid empty tank.
type Level struct {
	litres float64
}

// Zero returns an empty fuel level
func Zero() Level {
	return Level{}
}

// WithLitres creates a level from a trusted litres value.
// Use this only for values already known to be valid (constants, derived
// aggregates). It panics with *InvariantViolation if litres is negative,
// NaN or infinite; untrusted input must go through WithMillilitres.
//
// The panic reports a programming error, not a bad reading. Callers must
// not recover it to turn it into a validation result.
func WithLitres(litres float64) Level {
	if litres < 0 {
		panic(&InvariantViolation{Value: litres, Reason: "negative fuel level not supported"})
	}
	if math.IsNaN(litres) || math.IsInf(litres, 0) {
		panic(&InvariantViolation{Value: litres, Reason: "float value is illegal"})
	}
	return Level{litres: positiveZero(litres)}
}

// WithMillilitres creates a level from an untrusted millilitres value,
// such as a sensor reading. Negativity is checked before NaN/infinity.
func WithMillilitres(ml float64) (Level, error) {
	if ml < 0 {
		return Level{}, ErrNegativeFuelLevel
	}
	if math.IsNaN(ml) || math.IsInf(ml, 0) {
		return Level{}, ErrInvalidFuelLevel
	}
	return Level{litres: positiveZero(ml / MillilitresPerLitre)}, nil
}

// ParseMillilitres parses a textual millilitres reading and validates it
// through WithMillilitres. Unparseable text is reported as ErrInvalidFuelLevel.
func ParseMillilitres(s string) (Level, error) {
	raw := strings.TrimSpace(s)
	ml, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Out-of-range input still parses to ±Inf, which WithMillilitres classifies
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			return Level{}, fmt.Errorf("parse reading %q: %w: %w", raw, ErrInvalidFuelLevel, err)
		}
	}
	level, err := WithMillilitres(ml)
	if err != nil {
		return Level{}, fmt.Errorf("reading %q: %w", raw, err)
	}
	return level, nil
}

// Litres returns the level in litres
func (l Level) Litres() float64 {
	return l.litres
}

// Millilitres returns the level in millilitres
func (l Level) Millilitres() float64 {
	return l.litres * MillilitresPerLitre
}

// Compare returns -1, 0 or +1 depending on whether l is less than, equal to
// or greater than other. Comparison is exact; no tolerance is applied.
func (l Level) Compare(other Level) int {
	switch {
	case l.litres < other.litres:
		return -1
	case l.litres > other.litres:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both levels hold the same magnitude
func (l Level) Equal(other Level) bool {
	return l.Compare(other) == 0
}

// Less reports whether l holds strictly less fuel than other
func (l Level) Less(other Level) bool {
	return l.Compare(other) < 0
}

// IsZero reports whether the tank is empty
func (l Level) IsZero() bool {
	return l.litres == 0
}

func (l Level) String() string {
	return strconv.FormatFloat(l.litres, 'g', -1, 64) + " litres"
}

// Compare orders two levels; suitable for slices.SortFunc
func Compare(a, b Level) int {
	return a.Compare(b)
}

// positiveZero folds -0 into +0 so equal magnitudes share one representation
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
