// Package config loads game settings from TOML with environment overrides,
// and loads question packs.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/tiltpick/audio"
	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
)

// Environment overrides
const (
	EnvAudioEnabled = "TILTPICK_AUDIO_ENABLED"
	EnvMasterVolume = "TILTPICK_MASTER_VOLUME" // 0-100
	EnvClipDir      = "TILTPICK_CLIP_DIR"
	EnvPacks        = "TILTPICK_PACKS"
)

// Sentinel errors
var (
	ErrNoPacks     = errors.New("no packs defined")
	ErrInvalidPack = errors.New("invalid pack")
	ErrInvalid     = errors.New("invalid config")
)

// Config is the full settings tree
type Config struct {
	Arena   ArenaConfig   `toml:"arena"`
	Physics PhysicsConfig `toml:"physics"`
	Audio   AudioConfig   `toml:"audio"`
	Game    GameConfig    `toml:"game"`
}

// ArenaConfig sizes the arena for headless runs, which have no terminal to measure
type ArenaConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// PhysicsConfig selects boundaries
type PhysicsConfig struct {
	OpenTop bool `toml:"open_top"` // Let bodies leave through the top edge
}

// AudioConfig controls output and narration sources
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	SampleRate   int     `toml:"sample_rate"`
	MasterVolume float64 `toml:"master_volume"`
	MusicVolume  float64 `toml:"music_volume"`
	DuckVolume   float64 `toml:"duck_volume"`
	Music        bool    `toml:"music"`
	Speech       bool    `toml:"speech"`
	ClipDir      string  `toml:"clip_dir"`
}

// GameConfig holds session options
type GameConfig struct {
	Packs string `toml:"packs"` // Pack file path, empty for the built-in number packs
	Seed  uint64 `toml:"seed"`  // Zero seeds from the clock
}

// Default returns settings matching the built-in tuning
func Default() Config {
	return Config{
		Arena: ArenaConfig{Width: 800, Height: 600},
		Audio: AudioConfig{
			Enabled:      true,
			SampleRate:   parameter.AudioSampleRate,
			MasterVolume: parameter.MasterVolume,
			MusicVolume:  parameter.MusicVolume,
			DuckVolume:   parameter.DuckVolume,
			Music:        true,
			Speech:       true,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides
// An empty path skips the file
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
		for _, key := range md.Undecoded() {
			slog.Warn("unknown config key", "path", path, "key", key.String())
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = b
		}
	}

	// 0-100 converted to 0.0-1.0
	if v := os.Getenv(EnvMasterVolume); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Audio.MasterVolume = min(max(float64(n)/100.0, 0), 1)
		}
	}

	if v := os.Getenv(EnvClipDir); v != "" {
		cfg.Audio.ClipDir = v
	}
	if v := os.Getenv(EnvPacks); v != "" {
		cfg.Game.Packs = v
	}
}

// Validate checks ranges
func (c Config) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena %gx%g", ErrInvalid, c.Arena.Width, c.Arena.Height)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	for name, v := range map[string]float64{
		"master_volume": c.Audio.MasterVolume,
		"music_volume":  c.Audio.MusicVolume,
		"duck_volume":   c.Audio.DuckVolume,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %g outside [0,1]", ErrInvalid, name, v)
		}
	}
	return nil
}

// Walls maps boundary options to the physics wall mask
func (c Config) Walls() physics.Walls {
	if c.Physics.OpenTop {
		return physics.WallsAll &^ physics.WallTop
	}
	return physics.WallsAll
}

// Output returns the audio backend settings
func (c Config) Output() audio.Config {
	return audio.Config{
		Enabled:      c.Audio.Enabled,
		SampleRate:   c.Audio.SampleRate,
		MasterVolume: c.Audio.MasterVolume,
		MusicVolume:  c.Audio.MusicVolume,
		Music:        c.Audio.Music,
	}
}

// ArenaSize returns the configured arena
func (c Config) ArenaSize() physics.Arena {
	return physics.Arena{Width: c.Arena.Width, Height: c.Arena.Height}
}
