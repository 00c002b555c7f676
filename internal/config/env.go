package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv copies variables from a .env file into the process environment
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// FromEnv loads the tribe configuration from environment variables.
// Falls back to defaults if variables are not set.
func FromEnv() Config {
	cfg := Default()
	if mode := os.Getenv("TRIBE_PRESET"); mode != "" {
		if p, ok := Preset(mode); ok {
			cfg = p
		}
	}
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overrides cfg with every TRIBE_* variable that is set and parses.
// TRIBE_PRESET only fills luck that cfg leaves unset, the same way a preset
// named in the file does; TRIBE_SUCCESS_CHANCE always wins.
func ApplyEnv(cfg *Config) {
	if mode := os.Getenv("TRIBE_PRESET"); mode != "" && cfg.Luck.SuccessChance == nil {
		if p, ok := Preset(mode); ok {
			cfg.Preset = p.Preset
			cfg.Luck.SuccessChance = p.Luck.SuccessChance
		}
	}
	if val, ok := getEnvInt("TRIBE_HUNTERS"); ok {
		cfg.Tribe.Hunters = val
	}
	if val, ok := getEnvInt("TRIBE_DAYS"); ok {
		cfg.Tribe.Days = val
	}
	if val, ok := getEnvInt("TRIBE_SURPLUS_RELEASES"); ok && val > 0 {
		cfg.Termination.SurplusReleases = val
	}
	if val := os.Getenv("TRIBE_SEED"); val != "" {
		if seed, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.SeededRNG.Enabled = true
			cfg.SeededRNG.Seed = seed
		}
	}
	if val := os.Getenv("TRIBE_SUCCESS_CHANCE"); val != "" {
		if p, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Luck.SuccessChance = &p
		}
	}
	if val := strings.TrimSpace(os.Getenv("TRIBE_LOG_FORMAT")); val != "" {
		cfg.Log.Format = strings.ToLower(val)
	}
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return num, true
}
