package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunters/internal/config"
	"hunters/internal/tribe"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TRIBE_PRESET", "TRIBE_HUNTERS", "TRIBE_DAYS", "TRIBE_SURPLUS_RELEASES",
		"TRIBE_SEED", "TRIBE_SUCCESS_CHANCE", "TRIBE_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func resolve(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	rf, err := parseFlags("run", args, io.Discard)
	require.NoError(t, err)
	return resolveConfig(rf)
}

func TestResolveConfig_PositionalArguments(t *testing.T) {
	clearEnv(t)
	cfg, err := resolve(t, "7", "12")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Tribe.Hunters)
	assert.Equal(t, 12, cfg.Tribe.Days)
}

func TestResolveConfig_FlagsWinOverEnvAndPositional(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIBE_HUNTERS", "3")
	t.Setenv("TRIBE_DAYS", "4")

	cfg, err := resolve(t, "-hunters", "9", "-seed", "11", "2", "5")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Tribe.Hunters)
	assert.Equal(t, 5, cfg.Tribe.Days)
	assert.True(t, cfg.SeededRNG.Enabled)
	assert.Equal(t, int64(11), cfg.SeededRNG.Seed)
}

func TestResolveConfig_ReadsFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tribe.yml")
	require.NoError(t, os.WriteFile(path, []byte("preset: lean\ntribe:\n  hunters: 6\n  days: 8\n"), 0o644))

	cfg, err := resolve(t, "-config", path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Tribe.Hunters)
	assert.Equal(t, 8, cfg.Tribe.Days)
	assert.InDelta(t, 0.3, cfg.Luck.Chance(), 1e-9)
}

func TestResolveConfig_EnvPresetKeepsFileChance(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIBE_PRESET", "default")
	path := filepath.Join(t.TempDir(), "tribe.yml")
	require.NoError(t, os.WriteFile(path, []byte("luck:\n  success_chance: 0.9\ntribe:\n  hunters: 4\n  days: 3\n"), 0o644))

	cfg, err := resolve(t, "-config", path)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, cfg.Luck.Chance(), 1e-9)
}

func TestResolveConfig_EnvPresetFillsFileWithoutChance(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIBE_PRESET", "plentiful")
	path := filepath.Join(t.TempDir(), "tribe.yml")
	require.NoError(t, os.WriteFile(path, []byte("tribe:\n  hunters: 4\n  days: 3\n"), 0o644))

	cfg, err := resolve(t, "-config", path)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, cfg.Luck.Chance(), 1e-9)
}

func TestResolveConfig_UsageErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "one positional", args: []string{"5"}},
		{name: "not a number", args: []string{"five", "10"}},
		{name: "doomed tribe", args: []string{"0", "10"}},
		{name: "too many hunters", args: []string{"-hunters", "33"}},
		{name: "bad format", args: []string{"-format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve(t, tt.args...)
			var uerr *usageError
			assert.ErrorAs(t, err, &uerr)
		})
	}
}

func TestResolveConfig_DoomedTribeIsNamed(t *testing.T) {
	clearEnv(t)
	_, err := resolve(t, "-hunters", "0")
	assert.ErrorIs(t, err, config.ErrDoomedTribe)
}

func TestParseFlags_UnknownFlagIsUsageError(t *testing.T) {
	_, err := parseFlags("run", []string{"-nope"}, io.Discard)
	var uerr *usageError
	assert.ErrorAs(t, err, &uerr)
}

func TestCmdRun_WritesChronicleAndSummary(t *testing.T) {
	clearEnv(t)
	var out bytes.Buffer
	err := cmdRun(context.Background(), []string{"-seed", "42", "-summary", "4", "3"}, &out, io.Discard)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "The tribe of 4 hunters sets out for 3 days")
	assert.Contains(t, text, "===== Day 1 begins. Hunters alive: 4 =====")
	assert.Contains(t, text, "outcome:")
	assert.Contains(t, text, "The cook ends the simulation")
}

func TestCmdStats_IsReproducibleWithASeed(t *testing.T) {
	clearEnv(t)
	runOnce := func() statsOutput {
		var out bytes.Buffer
		err := cmdStats(context.Background(), []string{"-seed", "7", "-hunters", "10", "-days", "15"}, &out, io.Discard)
		require.NoError(t, err)

		var got statsOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		return got
	}

	a, b := runOnce(), runOnce()
	assert.Equal(t, a.Result.Reports, b.Result.Reports)
	assert.Equal(t, a.Result.Survivors, b.Result.Survivors)
	assert.Equal(t, a.Result.Days, a.Stats.Days)
	assert.Equal(t, a.Result.Alive, a.Stats.FinalAlive)
	assert.Equal(t, a.Result.Outcome == tribe.OutcomeExtinct, a.Stats.Extinct)
}
