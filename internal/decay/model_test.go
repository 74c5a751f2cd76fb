package decay

import (
	"errors"
	"math"
	"testing"
)

const (
	hour = 3600.0
	day  = 86400.0
)

var (
	iodine     = Isotope{Name: "Iodine-131 (I-131)", Symbol: "I-131", Nuclide: 531310, HalfLife: 8.02 * day}
	technetium = Isotope{Name: "Technetium-99m (Tc-99m)", Symbol: "Tc-99m", Nuclide: 430991, HalfLife: 6 * hour}
)

func relClose(a, b, tol float64) bool {
	if b == 0 {
		return math.Abs(a) <= tol
	}
	return math.Abs(a-b)/math.Abs(b) <= tol
}

func collect(t *testing.T, iso Isotope, p Params) []Sample {
	t.Helper()
	seq, err := Compute(iso, p)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	var out []Sample
	for s := range seq {
		out = append(out, s)
	}
	return out
}

func TestDecayConstantIdentity(t *testing.T) {
	for _, hl := range []float64{1, 6 * hour, 8.02 * day, 4.468e9 * JulianYear} {
		lambda := DecayConstant(hl)
		tau := MeanLifetime(hl)
		if !relClose(lambda*tau, 1, 1e-12) {
			t.Errorf("half-life %g: λτ = %v, want 1", hl, lambda*tau)
		}
		if lambda <= 0 {
			t.Errorf("half-life %g: λ = %v, want > 0", hl, lambda)
		}
	}
}

func TestComputeIodineOneHalfLife(t *testing.T) {
	p := Params{Initial: 1e6, UnitFactor: day, Unit: "days", Multiple: 1, Samples: DefaultSamples}
	samples := collect(t, iodine, p)

	if len(samples) != 600 {
		t.Fatalf("expected 600 samples, got %d", len(samples))
	}
	if samples[0].T != 0 {
		t.Errorf("expected first t=0, got %v", samples[0].T)
	}
	if samples[0].N != 1e6 {
		t.Errorf("expected first N=1e6, got %v", samples[0].N)
	}
	last := samples[len(samples)-1]
	if last.T != 8.02 {
		t.Errorf("expected last t=8.02, got %v", last.T)
	}
	if !relClose(last.N, 500000, 1e-9) {
		t.Errorf("expected last N≈500000, got %v", last.N)
	}
}

func TestComputeTechnetiumQuarters(t *testing.T) {
	for _, tt := range []struct {
		hours float64
		want  float64
	}{
		{6, 0.5},
		{12, 0.25},
		{18, 0.125},
	} {
		s, err := Evaluate(technetium, 1, tt.hours*hour)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if !relClose(s.N, tt.want, 1e-9) {
			t.Errorf("N(%vh) = %v, want %v", tt.hours, s.N, tt.want)
		}
	}

	p := Params{Initial: 1, UnitFactor: hour, Unit: "hours", Multiple: 5, Samples: 601}
	samples := collect(t, technetium, p)
	// 601 points over 30h puts a grid point on every 0.05h.
	for _, idx := range []int{120, 240, 360} {
		want := math.Pow(0.5, samples[idx].T/6)
		if !relClose(samples[idx].N, want, 1e-9) {
			t.Errorf("sample %d (t=%v): N=%v, want %v", idx, samples[idx].T, samples[idx].N, want)
		}
	}
}

func TestComputeMonotonic(t *testing.T) {
	p := DefaultParams()
	p.UnitFactor = day
	samples := collect(t, iodine, p)

	for i := 1; i < len(samples); i++ {
		if samples[i].N > samples[i-1].N {
			t.Fatalf("N increased at %d: %v > %v", i, samples[i].N, samples[i-1].N)
		}
		if samples[i].A > samples[i-1].A {
			t.Fatalf("A increased at %d: %v > %v", i, samples[i].A, samples[i-1].A)
		}
		if samples[i].T <= samples[i-1].T {
			t.Fatalf("time not increasing at %d", i)
		}
		if samples[i].N < 0 || samples[i].A < 0 {
			t.Fatalf("negative sample at %d: %+v", i, samples[i])
		}
	}
}

func TestComputeRestartable(t *testing.T) {
	seq, err := Compute(iodine, Params{Initial: 10, UnitFactor: day, Multiple: 2, Samples: 5})
	if err != nil {
		t.Fatal(err)
	}

	var first, second []Sample
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}
	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("expected 5 samples per pass, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("pass mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestComputeEarlyBreak(t *testing.T) {
	seq, err := Compute(iodine, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("expected to stop after 3, got %d", n)
	}
}

func TestComputeInvalid(t *testing.T) {
	valid := Params{Initial: 1e6, UnitFactor: day, Multiple: 1, Samples: 600}

	tests := []struct {
		name  string
		iso   Isotope
		p     func(Params) Params
		field string
	}{
		{"zero n0", iodine, func(p Params) Params { p.Initial = 0; return p }, "n0"},
		{"negative n0", iodine, func(p Params) Params { p.Initial = -1; return p }, "n0"},
		{"one sample", iodine, func(p Params) Params { p.Samples = 1; return p }, "sample_count"},
		{"zero unit", iodine, func(p Params) Params { p.UnitFactor = 0; return p }, "unit_factor"},
		{"zero multiple", iodine, func(p Params) Params { p.Multiple = 0; return p }, "half_life_multiple"},
		{"NaN multiple", iodine, func(p Params) Params { p.Multiple = math.NaN(); return p }, "half_life_multiple"},
		{"infinite n0", iodine, func(p Params) Params { p.Initial = math.Inf(1); return p }, "n0"},
		{"zero half-life", Isotope{Name: "x"}, func(p Params) Params { return p }, "half_life_seconds"},
		{"window overflows", Isotope{Name: "x", HalfLife: 1e300}, func(p Params) Params { p.UnitFactor = 1e-10; p.Multiple = 5; return p }, "half_life_multiple"},
		{"window underflows", Isotope{Name: "x", HalfLife: 1e-300}, func(p Params) Params { p.UnitFactor = 1e300; return p }, "half_life_multiple"},
		{"seconds overflow", Isotope{Name: "x", HalfLife: 1e300}, func(p Params) Params { p.UnitFactor = 1e300; p.Multiple = 1e10; return p }, "half_life_multiple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Compute(tt.iso, tt.p(valid))
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if seq != nil {
				t.Error("expected no sequence on failure")
			}
			var pe *ParameterError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParameterError, got %T", err)
			}
			if pe.Field != tt.field {
				t.Errorf("field = %q, want %q", pe.Field, tt.field)
			}
		})
	}
}

func TestEvaluateNegativeTime(t *testing.T) {
	if _, err := Evaluate(iodine, 1, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestParameterErrorMessage(t *testing.T) {
	err := &ParameterError{Field: "n0", Value: 0, Reason: "must be > 0"}
	expected := "decay: invalid parameter n0=0: must be > 0"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestIsotopeNuclide(t *testing.T) {
	if iodine.Z() != 53 || iodine.A() != 131 || iodine.Metastable() {
		t.Errorf("I-131 decoded as Z=%d A=%d m=%v", iodine.Z(), iodine.A(), iodine.Metastable())
	}
	if technetium.Z() != 43 || technetium.A() != 99 || !technetium.Metastable() {
		t.Errorf("Tc-99m decoded as Z=%d A=%d m=%v", technetium.Z(), technetium.A(), technetium.Metastable())
	}
}
