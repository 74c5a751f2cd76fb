package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/decaysim/internal/decay"
)

type PlotOptions struct {
	Width    int
	Height   int
	LogScale bool
	Color    asciigraph.AnsiColor
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 80, Height: 15, Color: CurrentTheme.Curve}
}

// PlotSeries returns the y values drawn for the curve. With logScale the
// populations are mapped to log10; the curve is left unchanged.
func PlotSeries(c *decay.Curve, logScale bool) []float64 {
	ys := c.Populations()
	if !logScale {
		return ys
	}
	out := make([]float64, 0, len(ys))
	for _, y := range ys {
		if y > 0 {
			out = append(out, math.Log10(y))
		}
	}
	return out
}

// PlotCurve draws N(t) against time for the terminal.
func PlotCurve(c *decay.Curve, opts PlotOptions) string {
	if c == nil || c.Len() < 2 {
		return ""
	}

	caption := fmt.Sprintf("decay of %s   t [%s]: 0 → %s", c.Isotope.Name, c.Params.Unit, formatSci(c.MaxUnit))
	if opts.LogScale {
		caption += "   (log10 N)"
	}

	graphOpts := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Caption(caption),
		asciigraph.Precision(2),
	}
	if opts.Width > 0 {
		graphOpts = append(graphOpts, asciigraph.Width(opts.Width))
	}
	if opts.Color != asciigraph.Default {
		graphOpts = append(graphOpts, asciigraph.SeriesColors(opts.Color))
	}
	if !opts.LogScale {
		graphOpts = append(graphOpts, asciigraph.LowerBound(0))
	}

	return asciigraph.Plot(PlotSeries(c, opts.LogScale), graphOpts...)
}

func formatSci(v float64) string {
	a := math.Abs(v)
	if a != 0 && (a >= 1e5 || a < 1e-2) {
		return fmt.Sprintf("%.3e", v)
	}
	return fmt.Sprintf("%.3f", v)
}
