package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/decaysim/internal/decay"
)

type Point struct{ X, Y float64 }

// CurveToSVG draws N(t) as a line chart. With logScale the y axis shows
// log10 N; the samples themselves are not modified.
func CurveToSVG(c *decay.Curve, width, height int, logScale bool) string {
	points := make([]Point, 0, c.Len())
	for _, s := range c.Samples {
		y := s.N
		if logScale {
			if s.N <= 0 {
				continue
			}
			y = math.Log10(s.N)
		}
		points = append(points, Point{X: s.T, Y: y})
	}

	ylabel := "N(t)"
	if logScale {
		ylabel = "log10 N(t)"
	}
	title := fmt.Sprintf("Decay of %s", c.Isotope.Name)
	xlabel := fmt.Sprintf("t [%s]", c.Params.Unit)
	return TrajectoryToSVG(points, width, height, "#00ffff", title, xlabel, ylabel)
}

// TrajectoryToSVG creates an SVG line chart from points.
func TrajectoryToSVG(points []Point, width, height int, strokeColor, title, xlabel, ylabel string) string {
	if len(points) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	const margin = 50.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="%.0f" y="%.0f" fill="#ffffff" font-family="monospace" font-size="14" text-anchor="middle">%s</text>
`, width, height, width, height, float64(width)/2, margin/2, html.EscapeString(title))

	// Axes
	fmt.Fprintf(&sb, `<g stroke="#444466" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, margin, margin, margin, margin+plotH, margin, margin+plotH, margin+plotW, margin+plotH)

	fmt.Fprintf(&sb, `<g fill="#888899" font-family="monospace" font-size="11">
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
<text x="%.1f" y="%.1f">%s</text>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
<text x="%.1f" y="%.1f" transform="rotate(-90 %.1f %.1f)" text-anchor="middle">%s</text>
</g>
`,
		margin-4, margin+4, axisLabel(maxY),
		margin-4, margin+plotH, axisLabel(minY),
		margin, margin+plotH+14, axisLabel(minX),
		margin+plotW, margin+plotH+14, axisLabel(maxX),
		margin+plotW/2, margin+plotH+32, html.EscapeString(xlabel),
		margin/3, margin+plotH/2, margin/3, margin+plotH/2, html.EscapeString(ylabel))

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, p := range points {
		x := margin + (p.X-minX)/rangeX*plotW
		y := margin + plotH - (p.Y-minY)/rangeY*plotH

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func axisLabel(v float64) string {
	a := math.Abs(v)
	if a != 0 && (a >= 1e5 || a < 1e-2) {
		return fmt.Sprintf("%.2e", v)
	}
	return fmt.Sprintf("%.2f", v)
}
