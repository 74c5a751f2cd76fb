package decay

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when an input is non-positive, non-finite
// or otherwise outside the model's domain.
var ErrInvalidParameter = errors.New("decay: invalid parameter")

// ParameterError names the offending input. It unwraps to ErrInvalidParameter.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("decay: invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field string, value float64, reason string) error {
	return &ParameterError{Field: field, Value: value, Reason: reason}
}
