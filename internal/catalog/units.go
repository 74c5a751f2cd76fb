package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/decaysim/internal/decay"
)

var ErrUnknownUnit = errors.New("catalog: unknown time unit")

// Unit is a display time unit with its seconds-per-unit factor.
type Unit struct {
	Name    string  `json:"name" yaml:"name"`
	Symbol  string  `json:"symbol" yaml:"symbol"`
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

var (
	Second = Unit{Name: "seconds", Symbol: "s", Seconds: 1}
	Minute = Unit{Name: "minutes", Symbol: "min", Seconds: 60}
	Hour   = Unit{Name: "hours", Symbol: "h", Seconds: 3600}
	Day    = Unit{Name: "days", Symbol: "d", Seconds: 86400}
	Year   = Unit{Name: "years", Symbol: "y", Seconds: decay.JulianYear}

	units = []Unit{Second, Minute, Hour, Day, Year}
)

// DefaultUnit matches the selector's initial position.
var DefaultUnit = Year

// Units returns the selectable units from shortest to longest.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// ParseUnit accepts a unit's name, its singular form or its symbol.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, u := range units {
		if key == u.Name || key == strings.TrimSuffix(u.Name, "s") || key == u.Symbol {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// UnitNames returns the unit names in selector order.
func UnitNames() []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	return names
}

// Half-life multiple slider bounds.
const (
	MinMultiple  = 0.5
	MaxMultiple  = 10.0
	MultipleStep = 0.5
)

// ValidMultiple reports whether k lies on the slider: within
// [MinMultiple, MaxMultiple] and on a MultipleStep boundary.
func ValidMultiple(k float64) bool {
	if math.IsNaN(k) || k < MinMultiple || k > MaxMultiple {
		return false
	}
	steps := k / MultipleStep
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

// SnapMultiple rounds k to the nearest slider position.
func SnapMultiple(k float64) float64 {
	if math.IsNaN(k) {
		return decay.DefaultMultiple
	}
	k = math.Round(k/MultipleStep) * MultipleStep
	return math.Min(MaxMultiple, math.Max(MinMultiple, k))
}

// CheckMultiple returns a decay.ParameterError for values off the slider.
func CheckMultiple(k float64) error {
	if ValidMultiple(k) {
		return nil
	}
	return &decay.ParameterError{
		Field:  "half_life_multiple",
		Value:  k,
		Reason: fmt.Sprintf("must be in [%g, %g] in steps of %g", MinMultiple, MaxMultiple, MultipleStep),
	}
}
