// Package viz renders decay curves in the terminal.
//
// The package provides:
//
//   - [PlotCurve]: asciigraph line plot of N(t), optionally on a log axis
//   - [SummaryPanel]: model parameters and proportional activity
//   - [App]: interactive Bubble Tea application
//
// # Key Bindings
//
//	j/k   - Move between isotopes or parameters
//	h/l   - Adjust the selected parameter
//	enter - Select isotope / edit value
//	e     - Export the data table as CSV
//	s     - Save the run to the local store
//	t     - Cycle color themes
//	?     - Show notes
//
// Every parameter change recomputes the curve immediately.
package viz
