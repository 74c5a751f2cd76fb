package decay

import (
	"iter"
	"math"
)

// DecayConstant returns λ = ln2 / t½ in s⁻¹.
func DecayConstant(halfLife float64) float64 {
	return math.Ln2 / halfLife
}

// MeanLifetime returns τ = 1/λ in seconds.
func MeanLifetime(halfLife float64) float64 {
	return 1 / DecayConstant(halfLife)
}

// Compute validates the inputs and returns the sampled decay curve as a lazy
// sequence. Nothing is evaluated until the sequence is ranged over, and it
// may be ranged over any number of times with identical results.
func Compute(iso Isotope, p Params) (iter.Seq[Sample], error) {
	if err := p.Validate(iso.HalfLife); err != nil {
		return nil, err
	}

	lambda := DecayConstant(iso.HalfLife)
	maxUnit := p.Multiple * iso.HalfLife / p.UnitFactor
	step := maxUnit / float64(p.Samples-1)
	n0, factor, last := p.Initial, p.UnitFactor, p.Samples-1

	return func(yield func(Sample) bool) {
		for i := 0; i <= last; i++ {
			t := float64(i) * step
			if i == last {
				t = maxUnit
			}
			n := n0 * math.Exp(-lambda*t*factor)
			if !yield(Sample{T: t, N: n, A: lambda * n}) {
				return
			}
		}
	}, nil
}

// Evaluate returns the population and activity at tSeconds after t=0.
// The returned sample's T is in seconds.
func Evaluate(iso Isotope, n0, tSeconds float64) (Sample, error) {
	if err := positive("half_life_seconds", iso.HalfLife); err != nil {
		return Sample{}, err
	}
	if err := positive("n0", n0); err != nil {
		return Sample{}, err
	}
	if math.IsNaN(tSeconds) || math.IsInf(tSeconds, 0) || tSeconds < 0 {
		return Sample{}, invalid("t_seconds", tSeconds, "must be finite and >= 0")
	}
	lambda := DecayConstant(iso.HalfLife)
	n := n0 * math.Exp(-lambda*tSeconds)
	return Sample{T: tSeconds, N: n, A: lambda * n}, nil
}
