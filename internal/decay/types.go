package decay

import "math"

const (
	// DefaultSamples is the grid resolution used by the interactive surfaces.
	DefaultSamples = 600
	// DefaultInitial is the default initial population N0.
	DefaultInitial = 1e6
	// DefaultMultiple is the default time window in half-lives.
	DefaultMultiple = 5.0
	// JulianYear is the seconds-per-year factor (365.25 days).
	JulianYear = 365.25 * 24 * 3600
)

// Isotope is a static reference record. Values are never mutated after the
// catalog is built.
type Isotope struct {
	Name         string  `json:"name" yaml:"name"`
	Symbol       string  `json:"symbol" yaml:"symbol"`
	Nuclide      int     `json:"nuclide" yaml:"nuclide"` // ZZZAAAM
	HalfLife     float64 `json:"half_life_seconds" yaml:"half_life_seconds"`
	DecayMode    string  `json:"decay_mode" yaml:"decay_mode"`
	HalfLifeNote string  `json:"half_life_note" yaml:"half_life_note"`
	Application  string  `json:"application" yaml:"application"`
}

// Z returns the atomic number.
func (i Isotope) Z() int { return i.Nuclide / 10000 }

// A returns the mass number.
func (i Isotope) A() int { return (i.Nuclide / 10) % 1000 }

// Metastable reports whether the nuclide id names an excited isomer.
func (i Isotope) Metastable() bool { return i.Nuclide%10 != 0 }

// Params holds the transient inputs of one computation.
type Params struct {
	Initial    float64 `json:"n0"`
	UnitFactor float64 `json:"unit_factor"` // seconds per display unit
	Unit       string  `json:"unit"`        // display label only
	Multiple   float64 `json:"half_life_multiple"`
	Samples    int     `json:"samples"`
}

func DefaultParams() Params {
	return Params{
		Initial:    DefaultInitial,
		UnitFactor: JulianYear,
		Unit:       "years",
		Multiple:   DefaultMultiple,
		Samples:    DefaultSamples,
	}
}

// Validate checks p against the model's domain. halfLife is validated too
// so a single call covers every input of Compute.
func (p Params) Validate(halfLife float64) error {
	if err := positive("half_life_seconds", halfLife); err != nil {
		return err
	}
	if err := positive("n0", p.Initial); err != nil {
		return err
	}
	if err := positive("unit_factor", p.UnitFactor); err != nil {
		return err
	}
	if err := positive("half_life_multiple", p.Multiple); err != nil {
		return err
	}
	if p.Samples < 2 {
		return invalid("sample_count", float64(p.Samples), "need at least 2 points")
	}
	// The grid must stay finite and strictly increasing in both units.
	maxSeconds := p.Multiple * halfLife
	maxUnit := maxSeconds / p.UnitFactor
	step := maxUnit / float64(p.Samples-1)
	if math.IsInf(maxSeconds, 0) || math.IsInf(maxUnit, 0) || math.IsInf(step, 0) || !(step > 0) {
		return invalid("half_life_multiple", p.Multiple, "time window not representable")
	}
	return nil
}

func positive(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return invalid(field, v, "must be finite")
	case v <= 0:
		return invalid(field, v, "must be > 0")
	}
	return nil
}

// Sample is one point of a decay curve. T is expressed in the selected unit.
type Sample struct {
	T float64 `json:"t"`
	N float64 `json:"n"`
	A float64 `json:"activity"`
}
