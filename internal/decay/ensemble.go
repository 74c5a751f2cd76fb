package decay

import (
	"context"
	"sync"
)

// Ensemble computes curves for several isotopes under shared parameters.
type Ensemble struct {
	isotopes []Isotope
	params   Params
}

func NewEnsemble(isotopes []Isotope, p Params) *Ensemble {
	return &Ensemble{isotopes: isotopes, params: p}
}

// Run builds one curve per isotope concurrently. Results keep input order.
// The first error (by index) is returned and no curves are.
func (e *Ensemble) Run(ctx context.Context) ([]*Curve, error) {
	results := make([]*Curve, len(e.isotopes))
	errs := make([]error, len(e.isotopes))

	var wg sync.WaitGroup
	for i, iso := range e.isotopes {
		wg.Add(1)
		go func(idx int, iso Isotope) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = NewCurve(iso, e.params)
		}(i, iso)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
