package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// MaxHunters is the largest tribe the camp has room for.
const MaxHunters = 32

type Config struct {
	Version     string      `yaml:"version" json:"version"`
	Preset      string      `yaml:"preset" json:"preset"`
	Tribe       Tribe       `yaml:"tribe" json:"tribe"`
	SeededRNG   SeededRNG   `yaml:"seeded_rng" json:"seeded_rng"`
	Luck        Luck        `yaml:"luck" json:"luck"`
	Termination Termination `yaml:"termination" json:"termination"`
	Log         Log         `yaml:"log" json:"log"`
}

type Tribe struct {
	Hunters    int `yaml:"hunters" json:"hunters"`
	Days       int `yaml:"days" json:"days"`
	MaxHunters int `yaml:"max_hunters" json:"max_hunters"`
}

type SeededRNG struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Seed    int64 `yaml:"seed" json:"seed"`
}

type Luck struct {
	// SuccessChance is the odds of a hunt succeeding when not forced to fail.
	SuccessChance *float64 `yaml:"success_chance" json:"success_chance,omitempty"`
}

// Chance returns the configured odds, 0.5 when unset.
func (l Luck) Chance() float64 {
	if l.SuccessChance == nil {
		return 0.5
	}
	return *l.SuccessChance
}

type Termination struct {
	// SurplusReleases is added to the tribe size when flushing parked hunters.
	SurplusReleases int `yaml:"surplus_releases" json:"surplus_releases"`
}

type Log struct {
	Format string `yaml:"format" json:"format"`
	Prefix string `yaml:"prefix" json:"prefix"`
}

func (t *Tribe) ApplyDefaults() {
	if t.MaxHunters == 0 || t.MaxHunters > MaxHunters {
		t.MaxHunters = MaxHunters
	}
}

func (t *Termination) ApplyDefaults() {
	if t.SurplusReleases <= 0 {
		t.SurplusReleases = 4
	}
}

func (l *Log) ApplyDefaults() {
	if l.Format == "" {
		l.Format = "text"
	}
}

func (c *Config) ApplyDefaults() {
	c.Tribe.ApplyDefaults()
	c.Termination.ApplyDefaults()
	c.Log.ApplyDefaults()
}

// Load reads a yaml config. Luck the file leaves unset stays nil so an
// environment preset can still fill it; Chance reports 0.5 until then.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	if r.Preset != "" {
		if err := r.applyPreset(r.Preset); err != nil {
			return nil, err
		}
	}
	r.ApplyDefaults()
	return &r, nil
}

// Validate checks the run parameters before any hunter is spawned.
func (c *Config) Validate() error {
	if c.Tribe.Hunters == 0 {
		return &ConfigError{Kind: ErrDoomedTribe, Field: "tribe.hunters"}
	}
	if c.Tribe.Hunters < 0 || c.Tribe.Hunters > c.Tribe.MaxHunters {
		return invalidf("tribe.hunters", "must be between 1 and %d, got %d", c.Tribe.MaxHunters, c.Tribe.Hunters)
	}
	if c.Tribe.Days <= 0 {
		return invalidf("tribe.days", "must be positive, got %d", c.Tribe.Days)
	}
	if p := c.Luck.Chance(); p < 0 || p > 1 {
		return invalidf("luck.success_chance", "must be within [0, 1], got %g", p)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalidf("log.format", "unknown format %q", c.Log.Format)
	}
	return nil
}
