// Package catalog holds the static isotope reference table and the
// selectable time units. All data is read-only after package init.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/decaysim/internal/decay"
)

var ErrUnknownIsotope = errors.New("catalog: unknown isotope")

const (
	hour = 3600.0
	day  = 86400.0
	year = decay.JulianYear
)

// Approximate literature values, for teaching use.
var isotopes = []decay.Isotope{
	{
		Name:         "Carbon-14 (C-14)",
		Symbol:       "C-14",
		Nuclide:      60140,
		HalfLife:     5730 * year,
		DecayMode:    "β⁻",
		HalfLifeNote: "5730 years",
		Application:  "Radiocarbon dating in archaeology and geology.",
	},
	{
		Name:         "Uranium-238 (U-238)",
		Symbol:       "U-238",
		Nuclide:      922380,
		HalfLife:     4.468e9 * year,
		DecayMode:    "α",
		HalfLifeNote: "4.47 × 10⁹ years",
		Application:  "Geological clocks and a source of the Earth's internal heat.",
	},
	{
		Name:         "Iodine-131 (I-131)",
		Symbol:       "I-131",
		Nuclide:      531310,
		HalfLife:     8.02 * day,
		DecayMode:    "β⁻, γ",
		HalfLifeNote: "≈ 8 days",
		Application:  "Diagnosis and treatment of thyroid disorders.",
	},
	{
		Name:         "Cobalt-60 (Co-60)",
		Symbol:       "Co-60",
		Nuclide:      270600,
		HalfLife:     5.27 * year,
		DecayMode:    "β⁻, γ",
		HalfLifeNote: "5.27 years",
		Application:  "Radiotherapy and industrial gamma radiography.",
	},
	{
		Name:         "Technetium-99m (Tc-99m)",
		Symbol:       "Tc-99m",
		Nuclide:      430991,
		HalfLife:     6 * hour,
		DecayMode:    "isomeric transition → γ",
		HalfLifeNote: "6 hours",
		Application:  "Medical imaging (nuclear medicine).",
	},
	{
		Name:         "Caesium-137 (Cs-137)",
		Symbol:       "Cs-137",
		Nuclide:      551370,
		HalfLife:     30.17 * year,
		DecayMode:    "β⁻, γ",
		HalfLifeNote: "30.17 years",
		Application:  "Detector calibration and environmental tracing.",
	},
	{
		Name:         "Radon-222 (Rn-222)",
		Symbol:       "Rn-222",
		Nuclide:      862220,
		HalfLife:     3.8235 * day,
		DecayMode:    "α",
		HalfLifeNote: "≈ 3.82 days",
		Application:  "Tracer in ventilation studies and geophysics.",
	},
	{
		Name:         "Plutonium-239 (Pu-239)",
		Symbol:       "Pu-239",
		Nuclide:      942390,
		HalfLife:     24100 * year,
		DecayMode:    "α",
		HalfLifeNote: "24 100 years",
		Application:  "Reactor fuel and neutron sources.",
	},
}

var index = func() map[string]int {
	m := make(map[string]int, len(isotopes)*2)
	for i, iso := range isotopes {
		m[strings.ToLower(iso.Name)] = i
		m[strings.ToLower(iso.Symbol)] = i
	}
	return m
}()

// DefaultIsotope is the first catalog entry.
func DefaultIsotope() decay.Isotope { return isotopes[0] }

// Lookup finds an isotope by display name or symbol, ignoring case.
func Lookup(key string) (decay.Isotope, error) {
	i, ok := index[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return decay.Isotope{}, fmt.Errorf("%w: %q", ErrUnknownIsotope, key)
	}
	return isotopes[i], nil
}

// Names returns display names in catalog order.
func Names() []string {
	names := make([]string, len(isotopes))
	for i, iso := range isotopes {
		names[i] = iso.Name
	}
	return names
}

// All returns a copy of the catalog in display order.
func All() []decay.Isotope {
	out := make([]decay.Isotope, len(isotopes))
	copy(out, isotopes)
	return out
}

func Len() int { return len(isotopes) }
