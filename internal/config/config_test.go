package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/slimecount/internal/simulation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Slime Count", cfg.Window.Title)
	assert.Equal(t, "resource", cfg.Assets.Dir)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "bgm.wav", cfg.Audio.File)
	assert.Equal(t, 2*time.Second, cfg.Audio.FadeDuration)
	assert.Equal(t, "easy", cfg.Round.Difficulty)
	assert.Equal(t, 20*time.Second, cfg.Round.Duration)
	assert.Equal(t, simulation.DefaultDurations(), cfg.Round.Durations)

	rc, err := cfg.RoundDefaults()
	require.NoError(t, err)
	assert.Equal(t, simulation.DefaultRoundConfig(), rc)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := writeConfig(t, `{
		"logLevel": "debug",
		"audio": { "enabled": false },
		"round": { "difficulty": "veryhard", "duration": "30s", "durations": ["5s", "30s"] }
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, "bgm.wav", cfg.Audio.File)
	assert.Equal(t, []time.Duration{5 * time.Second, 30 * time.Second}, cfg.Round.Durations)

	rc, err := cfg.RoundDefaults()
	require.NoError(t, err)
	assert.Equal(t, simulation.VeryHard, rc.Difficulty)
	assert.Equal(t, 30*time.Second, rc.Duration)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, `{ "round": { "difficulty": "medium" } }`)
	t.Setenv("SLIMECOUNT_ROUND_DIFFICULTY", "hard")
	t.Setenv("SLIMECOUNT_ASSETS_DIR", "/srv/slimes")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "hard", cfg.Round.Difficulty)
	assert.Equal(t, "/srv/slimes", cfg.Assets.Dir)
}

func TestLoad_WindowSize(t *testing.T) {
	dir := writeConfig(t, `{ "window": { "width": 1500 } }`)
	t.Setenv("SLIMECOUNT_WINDOW_HEIGHT", "1080")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, `{ "logLevel": `)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"difficulty", `{ "round": { "difficulty": "nightmare" } }`, "round.difficulty"},
		{"duration", `{ "round": { "duration": "0s" } }`, "round duration must be positive"},
		{"log level", `{ "logLevel": "loud" }`, "log level"},
		{"fade", `{ "audio": { "fadeDuration": "-1s" } }`, "fadeDuration"},
		{"window", `{ "window": { "width": 0 } }`, "window size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
