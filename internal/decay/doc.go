// Package decay implements the exponential radioactive decay model.
//
// The package evaluates N(t) = N0·exp(-λt) over an evenly spaced time grid:
//
//   - [Isotope]: immutable reference record for a nuclide
//   - [Params]: per-computation inputs (N0, unit factor, window, samples)
//   - [Sample]: one (time, population, activity) point
//   - [Compute]: lazy, restartable sequence of samples
//   - [Curve]: materialised result handed to renderers and exporters
//
// # Example
//
//	iso, _ := catalog.Lookup("I-131")
//	p := decay.DefaultParams()
//	p.UnitFactor = catalog.Day.Seconds
//	p.Multiple = 1
//	curve, err := decay.NewCurve(iso, p)
//
// # Activity
//
// Activity is reported as λ·N(t) with λ in s⁻¹. It is proportional to the
// decay rate and is not calibrated in becquerel.
//
// Every function in the package is pure and safe for concurrent use.
package decay
