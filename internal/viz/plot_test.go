package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/decaysim/internal/catalog"
	"github.com/san-kum/decaysim/internal/decay"
)

func curveFor(t *testing.T, symbol string) *decay.Curve {
	t.Helper()
	iso, err := catalog.Lookup(symbol)
	if err != nil {
		t.Fatal(err)
	}
	c, err := decay.NewCurve(iso, decay.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPlotCurve(t *testing.T) {
	c := curveFor(t, "C-14")
	out := PlotCurve(c, PlotOptions{Width: 60, Height: 10})
	if out == "" {
		t.Fatal("expected plot output")
	}
	if !strings.Contains(out, "decay of Carbon-14 (C-14)") {
		t.Error("expected caption")
	}
	if strings.Contains(out, "log10") {
		t.Error("linear plot should not mention log10")
	}
}

func TestPlotSeriesLog(t *testing.T) {
	c := curveFor(t, "Cs-137")
	ys := PlotSeries(c, true)
	if len(ys) != c.Len() {
		t.Fatalf("expected %d points, got %d", c.Len(), len(ys))
	}
	if math.Abs(ys[0]-6) > 1e-12 {
		t.Errorf("log10(1e6) = %v, want 6", ys[0])
	}
	if c.Samples[0].N != 1e6 {
		t.Error("log series modified curve")
	}
}

func TestPlotCurveNil(t *testing.T) {
	if PlotCurve(nil, DefaultPlotOptions()) != "" {
		t.Error("expected empty plot for nil curve")
	}
}

func TestSummaryLines(t *testing.T) {
	c := curveFor(t, "Tc-99m")
	lines := SummaryLines(c)
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
	if lines[6][1] != "50%" {
		t.Errorf("remaining fraction = %q, want 50%%", lines[6][1])
	}
	if lines[0][1] != "6 hours" {
		t.Errorf("half-life note = %q", lines[0][1])
	}
}

func TestPreviewTable(t *testing.T) {
	c := curveFor(t, "I-131")
	out := PreviewTable(c, 10)
	if got := strings.Count(out, "\n"); got != 11 {
		t.Errorf("expected header + 10 rows, got %d lines", got)
	}
}

func TestSparklineWidth(t *testing.T) {
	if SparklineChart(nil, 5) != "─────" {
		t.Error("expected placeholder for empty values")
	}
}

func TestNextThemeWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("expected wrap to first theme")
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		th, err := GetTheme(name)
		if err != nil || th.Name != name {
			t.Errorf("GetTheme(%q) = %q, %v", name, th.Name, err)
		}
	}
	if _, err := GetTheme("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("expected ErrUnknownTheme, got %v", err)
	}
}
