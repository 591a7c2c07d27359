package fuel

import "fmt"

// ErrorKind classifies why a fuel level could not be constructed
type ErrorKind int

const (
	// KindNegative means the input magnitude was below zero
	KindNegative ErrorKind = iota + 1
	// KindInvalid means the input magnitude was NaN or infinite
	KindInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindNegative:
		return "NegativeFuelLevel"
	case KindInvalid:
		return "InvalidFuelLevel"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// LevelError is returned by the validating constructors
type LevelError struct {
	Kind    ErrorKind
	Message string
}

func (e *LevelError) Error() string {
	return e.Message
}

// Is matches any LevelError of the same kind, so wrapped copies still satisfy errors.Is
func (e *LevelError) Is(target error) bool {
	t, ok := target.(*LevelError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	// ErrNegativeFuelLevel reports an attempt to create a level below zero
	ErrNegativeFuelLevel = &LevelError{Kind: KindNegative, Message: "negative fuel level"}

	// ErrInvalidFuelLevel reports an attempt to create a NaN or infinite level
	ErrInvalidFuelLevel = &LevelError{Kind: KindInvalid, Message: "invalid fuel level: value is NaN or infinite"}
)

// InvariantViolation is the panic value raised by WithLitres.
// It signals a programming error and is not meant to be recovered.
type InvariantViolation struct {
	Value  float64
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("fuel level invariant violated: %s (value: %v)", e.Reason, e.Value)
}
