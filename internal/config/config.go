// Package config loads settings from an optional slimecount.json and SLIMECOUNT_* environment
// variables on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"chosenoffset.com/slimecount/internal/logging"
	"chosenoffset.com/slimecount/internal/simulation"
)

// FileName is the config file looked up in the config directory.
const FileName = "slimecount.json"

const envPrefix = "SLIMECOUNT"

type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

type AssetsConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

type AudioConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	File         string        `json:"file" mapstructure:"file"`
	FadeDuration time.Duration `json:"fadeDuration" mapstructure:"fadeDuration"`
}

// RoundConfig holds the selections offered before a round.
type RoundConfig struct {
	Difficulty string          `json:"difficulty" mapstructure:"difficulty"`
	Duration   time.Duration   `json:"duration" mapstructure:"duration"`
	Durations  []time.Duration `json:"durations" mapstructure:"durations"`
}

// Config is the complete application configuration.
type Config struct {
	LogLevel string       `json:"logLevel" mapstructure:"logLevel"`
	Window   WindowConfig `json:"window" mapstructure:"window"`
	Assets   AssetsConfig `json:"assets" mapstructure:"assets"`
	Audio    AudioConfig  `json:"audio" mapstructure:"audio"`
	Round    RoundConfig  `json:"round" mapstructure:"round"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", simulation.CanvasWidth)
	v.SetDefault("window.height", simulation.CanvasHeight+120)
	v.SetDefault("window.title", "Slime Count")

	v.SetDefault("assets.dir", "resource")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.file", "bgm.wav")
	v.SetDefault("audio.fadeDuration", "2s")

	v.SetDefault("round.difficulty", "easy")
	v.SetDefault("round.duration", "20s")
	v.SetDefault("round.durations", []string{"10s", "20s", "30s", "60s"})
}

// Load reads dir/slimecount.json if it exists, applies environment overrides and validates the
// result. A missing file is not an error.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, ".json"))
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.Dir == "" {
		return errors.New("assets.dir must not be empty")
	}
	if c.Audio.FadeDuration <= 0 {
		return fmt.Errorf("audio.fadeDuration must be positive, got %s", c.Audio.FadeDuration)
	}
	if _, err := c.RoundDefaults(); err != nil {
		return err
	}
	if len(c.Round.Durations) == 0 {
		return errors.New("round.durations must not be empty")
	}
	for _, d := range c.Round.Durations {
		if d <= 0 {
			return fmt.Errorf("round.durations contains non-positive duration %s", d)
		}
	}
	return nil
}

// RoundDefaults returns the round selection shown on launch.
func (c Config) RoundDefaults() (simulation.RoundConfig, error) {
	d, err := simulation.ParseDifficulty(c.Round.Difficulty)
	if err != nil {
		return simulation.RoundConfig{}, fmt.Errorf("round.difficulty: %w", err)
	}
	rc := simulation.RoundConfig{Difficulty: d, Duration: c.Round.Duration}
	if err := rc.Validate(); err != nil {
		return simulation.RoundConfig{}, fmt.Errorf("round: %w", err)
	}
	return rc, nil
}
