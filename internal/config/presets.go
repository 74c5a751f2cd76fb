package config

import "sort"

var Presets = map[string]*Config{
	"radiocarbon": {
		Isotope: "C-14", Initial: 1e6, Unit: "years", Multiple: 10.0, Samples: 600,
	},
	"geological": {
		Isotope: "U-238", Initial: 1e6, Unit: "years", Multiple: 3.0, Samples: 600,
	},
	"thyroid": {
		Isotope: "I-131", Initial: 1e6, Unit: "days", Multiple: 5.0, Samples: 600,
	},
	"imaging": {
		Isotope: "Tc-99m", Initial: 1e6, Unit: "hours", Multiple: 5.0, Samples: 600, LogScale: true,
	},
	"radiotherapy": {
		Isotope: "Co-60", Initial: 1e6, Unit: "years", Multiple: 4.0, Samples: 600,
	},
	"fallout": {
		Isotope: "Cs-137", Initial: 1e6, Unit: "years", Multiple: 10.0, Samples: 600, LogScale: true,
	},
	"radon": {
		Isotope: "Rn-222", Initial: 1e6, Unit: "days", Multiple: 6.0, Samples: 600,
	},
	"reactor_waste": {
		Isotope: "Pu-239", Initial: 1e6, Unit: "years", Multiple: 8.0, Samples: 600, LogScale: true,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's model fields onto c, leaving the plot, server
// and logging settings alone.
func (c *Config) Apply(p *Config) {
	c.Isotope = p.Isotope
	c.Initial = p.Initial
	c.Unit = p.Unit
	c.Multiple = p.Multiple
	c.Samples = p.Samples
	c.LogScale = p.LogScale
}
