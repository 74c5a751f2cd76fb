package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/decaysim/internal/catalog"
	"github.com/san-kum/decaysim/internal/decay"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIsotope    = "Carbon-14 (C-14)"
	DefaultUnit       = "years"
	DefaultPlotWidth  = 80
	DefaultPlotHeight = 15
	DefaultAddr       = ":8080"
	DefaultCacheTTL   = 10 * time.Minute
	DefaultDataDir    = ".decaysim"
)

type Config struct {
	Isotope  string       `yaml:"isotope"`
	Initial  float64      `yaml:"n0"`
	Unit     string       `yaml:"unit"`
	Multiple float64      `yaml:"half_life_multiple"`
	Samples  int          `yaml:"samples"`
	LogScale bool         `yaml:"log_scale"`
	DataDir  string       `yaml:"data_dir"`
	Plot     PlotConfig   `yaml:"plot"`
	Server   ServerConfig `yaml:"server"`
	Log      LogConfig    `yaml:"log"`
}

type PlotConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ServerConfig struct {
	Addr     string        `yaml:"addr"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Isotope:  DefaultIsotope,
		Initial:  decay.DefaultInitial,
		Unit:     DefaultUnit,
		Multiple: decay.DefaultMultiple,
		Samples:  decay.DefaultSamples,
		DataDir:  DefaultDataDir,
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
		Server: ServerConfig{
			Addr:     DefaultAddr,
			CacheTTL: DefaultCacheTTL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate applies the input-surface rules: a known isotope and unit, a
// positive N0, and a half-life multiple on the slider.
func (c *Config) Validate() error {
	_, _, err := c.Resolve()
	return err
}

// Resolve looks up the isotope and unit and builds the model parameters.
func (c *Config) Resolve() (decay.Isotope, decay.Params, error) {
	iso, err := catalog.Lookup(c.Isotope)
	if err != nil {
		return decay.Isotope{}, decay.Params{}, err
	}
	unit, err := catalog.ParseUnit(c.Unit)
	if err != nil {
		return decay.Isotope{}, decay.Params{}, err
	}
	if err := catalog.CheckMultiple(c.Multiple); err != nil {
		return decay.Isotope{}, decay.Params{}, err
	}

	p := decay.Params{
		Initial:    c.Initial,
		UnitFactor: unit.Seconds,
		Unit:       unit.Name,
		Multiple:   c.Multiple,
		Samples:    c.Samples,
	}
	if err := p.Validate(iso.HalfLife); err != nil {
		return decay.Isotope{}, decay.Params{}, err
	}
	return iso, p, nil
}
