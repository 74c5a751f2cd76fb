package decay

// Curve is the materialised result of one computation.
type Curve struct {
	Isotope    Isotope  `json:"isotope"`
	Params     Params   `json:"params"`
	Lambda     float64  `json:"lambda"`
	Tau        float64  `json:"tau"`
	MaxSeconds float64  `json:"t_max_seconds"`
	MaxUnit    float64  `json:"t_max_unit"`
	Samples    []Sample `json:"samples"`
}

// NewCurve runs Compute and collects the sequence.
func NewCurve(iso Isotope, p Params) (*Curve, error) {
	seq, err := Compute(iso, p)
	if err != nil {
		return nil, err
	}

	c := &Curve{
		Isotope:    iso,
		Params:     p,
		Lambda:     DecayConstant(iso.HalfLife),
		Tau:        MeanLifetime(iso.HalfLife),
		MaxSeconds: p.Multiple * iso.HalfLife,
		MaxUnit:    p.Multiple * iso.HalfLife / p.UnitFactor,
		Samples:    make([]Sample, 0, p.Samples),
	}
	for s := range seq {
		c.Samples = append(c.Samples, s)
	}
	return c, nil
}

func (c *Curve) Len() int { return len(c.Samples) }

// Last returns the final sample. The curve always holds at least two.
func (c *Curve) Last() Sample { return c.Samples[len(c.Samples)-1] }

// Head returns at most n leading samples.
func (c *Curve) Head(n int) []Sample {
	if n > len(c.Samples) {
		n = len(c.Samples)
	}
	if n < 0 {
		n = 0
	}
	return c.Samples[:n]
}

func (c *Curve) Times() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = s.T
	}
	return out
}

func (c *Curve) Populations() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = s.N
	}
	return out
}

func (c *Curve) Activities() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = s.A
	}
	return out
}

// Summary holds derived single-point values shown next to the plot.
type Summary struct {
	Lambda           float64 `json:"lambda"`
	Tau              float64 `json:"tau"`
	InitialActivity  float64 `json:"initial_activity"`
	HalfLifeActivity float64 `json:"half_life_activity"`
	HalfLifeFraction float64 `json:"half_life_fraction"`
}

// Summarize evaluates the model at t=0 and at one half-life.
func Summarize(iso Isotope, n0 float64) (Summary, error) {
	at0, err := Evaluate(iso, n0, 0)
	if err != nil {
		return Summary{}, err
	}
	atHalf, err := Evaluate(iso, n0, iso.HalfLife)
	if err != nil {
		return Summary{}, err
	}
	lambda := DecayConstant(iso.HalfLife)
	return Summary{
		Lambda:           lambda,
		Tau:              1 / lambda,
		InitialActivity:  at0.A,
		HalfLifeActivity: atHalf.A,
		HalfLifeFraction: atHalf.N / n0,
	}, nil
}

// Summary returns the derived values for the curve's isotope and N0.
func (c *Curve) Summary() Summary {
	s, _ := Summarize(c.Isotope, c.Params.Initial)
	return s
}
