package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/decaysim/internal/decay"
)

// Notes explains the simplifications of the model.
const Notes = `- Simple exponential decay model with approximate values, for teaching.
- Activity is proportional to λN(t) and is not calibrated in Bq unless the
  real number of nuclei and the decay rate in s⁻¹ are given.
- The time window is set in multiples of the half-life for readability.
- The application note is editable.`

// SummaryLines returns the label/value pairs of the summary panel.
func SummaryLines(c *decay.Curve) [][2]string {
	s := c.Summary()
	return [][2]string{
		{"half-life t½", c.Isotope.HalfLifeNote},
		{"decay constant λ", fmt.Sprintf("%.3e s⁻¹", s.Lambda)},
		{"mean lifetime τ = 1/λ", fmt.Sprintf("%.3e s", s.Tau)},
		{"decay mode", c.Isotope.DecayMode},
		{"initial activity A₀ = λN₀", fmt.Sprintf("%.3e (arb. u.)", s.InitialActivity)},
		{"activity at t = t½", fmt.Sprintf("%.3e (arb. u.)", s.HalfLifeActivity)},
		{"remaining at t = t½", fmt.Sprintf("%.0f%%", s.HalfLifeFraction*100)},
	}
}

// SummaryPanel renders the model parameters and proportional activity.
func SummaryPanel(c *decay.Curve, application string) string {
	var b strings.Builder
	lines := SummaryLines(c)

	b.WriteString(HeaderStyle.Render("model parameters") + "\n")
	b.WriteString(MetricLabel.Render("N(t) = N₀ e^(-λt)") + "\n")
	for _, l := range lines[:4] {
		b.WriteString(fmt.Sprintf("%s %s\n", MetricLabel.Render(fmt.Sprintf("%-24s", l[0])), MetricValue.Render(l[1])))
	}
	b.WriteString("\n" + HeaderStyle.Render("activity (proportional)") + "\n")
	for _, l := range lines[4:] {
		b.WriteString(fmt.Sprintf("%s %s\n", MetricLabel.Render(fmt.Sprintf("%-24s", l[0])), MetricValue.Render(l[1])))
	}
	b.WriteString("\n" + HeaderStyle.Render("application") + "\n")
	b.WriteString(lipgloss.NewStyle().Width(60).Render(application))

	return GlassPanel.Render(b.String())
}

// PreviewTable renders the first rows of the data table.
func PreviewTable(c *decay.Curve, rows int) string {
	var b strings.Builder
	b.WriteString(MetricLabel.Render(fmt.Sprintf("%14s  %14s  %16s", "t ("+c.Params.Unit+")", "N(t)", "activity ∝ λN(t)")) + "\n")
	for _, s := range c.Head(rows) {
		b.WriteString(fmt.Sprintf("%14.6g  %14.6g  %16.6g\n", s.T, s.N, s.A))
	}
	return b.String()
}
