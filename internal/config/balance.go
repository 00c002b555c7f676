package config

// Default returns the fair-coin tribe: every unforced hunt is a 50/50 flip.
func Default() Config {
	cfg := Config{
		Version: "1",
		Preset:  "default",
		Tribe: Tribe{
			Hunters:    5,
			Days:       10,
			MaxHunters: MaxHunters,
		},
		Luck:        Luck{SuccessChance: chance(0.5)},
		Termination: Termination{SurplusReleases: 4},
		Log:         Log{Format: "text"},
	}
	return cfg
}

// Lean returns a harsh season where game is scarce.
func Lean() Config {
	cfg := Default()
	cfg.Preset = "lean"
	cfg.Luck.SuccessChance = chance(0.3)
	return cfg
}

// Plentiful returns a rich season; most hunts come back with meat.
func Plentiful() Config {
	cfg := Default()
	cfg.Preset = "plentiful"
	cfg.Luck.SuccessChance = chance(0.8)
	return cfg
}

// Preset looks up a named preset.
func Preset(name string) (Config, bool) {
	switch name {
	case "", "default":
		return Default(), true
	case "lean":
		return Lean(), true
	case "plentiful":
		return Plentiful(), true
	}
	return Config{}, false
}

// applyPreset fills luck settings the file left unset from the named preset.
func (c *Config) applyPreset(name string) error {
	p, ok := Preset(name)
	if !ok {
		return invalidf("preset", "unknown preset %q", name)
	}
	c.Preset = p.Preset
	if c.Luck.SuccessChance == nil {
		c.Luck.SuccessChance = p.Luck.SuccessChance
	}
	return nil
}

func chance(p float64) *float64 { return &p }
