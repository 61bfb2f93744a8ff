// Package config holds the LM Box runtime settings: screen geometry,
// camera selection, difficulty scaling, and per-game tick rates.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Difficulty selects one of the preset difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyNormal Difficulty = "Normal"
	DifficultyHard   Difficulty = "Hard"
)

// Multipliers are the per-difficulty scaling factors. Speed is applied
// uniformly to every engine's base speed; Score scales awarded points.
type Multipliers struct {
	Speed float64
	Score float64
}

// difficultyTable maps each difficulty level to its multipliers.
var difficultyTable = map[Difficulty]Multipliers{
	DifficultyEasy:   {Speed: 0.7, Score: 0.8},
	DifficultyNormal: {Speed: 1.0, Score: 1.0},
	DifficultyHard:   {Speed: 1.3, Score: 1.2},
}

// Config is the resolved LM Box configuration.
type Config struct {
	// ScreenWidth and ScreenHeight are the resolved display geometry
	// provided by the external menu.
	ScreenWidth  int
	ScreenHeight int

	// CameraIndex is the preferred camera device; two alternates are
	// tried when it fails.
	CameraIndex int

	// CaptureFPS is the camera capture-and-detect rate.
	CaptureFPS int

	// TickRate is the simulation rate in Hz for the game loops.
	TickRate int

	// Difficulty selects the multiplier preset.
	Difficulty Difficulty

	// SoundVolume and MusicVolume range 0-10.
	SoundVolume int
	MusicVolume int

	// DBPath is the SQLite database location for users and high scores.
	DBPath string

	// DiagAddr enables the diagnostics HTTP server when non-empty.
	DiagAddr string
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 720,
		CameraIndex:  0,
		CaptureFPS:   30,
		TickRate:     30,
		Difficulty:   DifficultyNormal,
		SoundVolume:  10,
		MusicVolume:  10,
		DBPath:       "",
		DiagAddr:     "",
	}
}

// Load builds a Config from defaults plus LMBOX_* environment overrides.
// A .env file in the working directory is loaded first when present.
func Load() (Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := Default()

	var err error
	if cfg.ScreenWidth, err = envInt("LMBOX_SCREEN_WIDTH", cfg.ScreenWidth); err != nil {
		return cfg, err
	}
	if cfg.ScreenHeight, err = envInt("LMBOX_SCREEN_HEIGHT", cfg.ScreenHeight); err != nil {
		return cfg, err
	}
	if cfg.CameraIndex, err = envInt("LMBOX_CAMERA", cfg.CameraIndex); err != nil {
		return cfg, err
	}
	if cfg.CaptureFPS, err = envInt("LMBOX_CAPTURE_FPS", cfg.CaptureFPS); err != nil {
		return cfg, err
	}
	if cfg.TickRate, err = envInt("LMBOX_TICK_RATE", cfg.TickRate); err != nil {
		return cfg, err
	}
	if cfg.SoundVolume, err = envInt("LMBOX_SOUND_VOLUME", cfg.SoundVolume); err != nil {
		return cfg, err
	}
	if cfg.MusicVolume, err = envInt("LMBOX_MUSIC_VOLUME", cfg.MusicVolume); err != nil {
		return cfg, err
	}

	if v := os.Getenv("LMBOX_DIFFICULTY"); v != "" {
		cfg.Difficulty = Difficulty(v)
	}
	if v := os.Getenv("LMBOX_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LMBOX_DIAG_ADDR"); v != "" {
		cfg.DiagAddr = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen geometry %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.TickRate < 1 || c.TickRate > 120 {
		return fmt.Errorf("tick rate %d out of range [1,120]", c.TickRate)
	}
	if c.CaptureFPS < 1 {
		return fmt.Errorf("capture fps %d must be positive", c.CaptureFPS)
	}
	if _, ok := difficultyTable[c.Difficulty]; !ok {
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	if c.SoundVolume < 0 || c.SoundVolume > 10 {
		return fmt.Errorf("sound volume %d out of range [0,10]", c.SoundVolume)
	}
	if c.MusicVolume < 0 || c.MusicVolume > 10 {
		return fmt.Errorf("music volume %d out of range [0,10]", c.MusicVolume)
	}
	return nil
}

// Multipliers returns the scaling factors for the configured difficulty.
func (c Config) Multipliers() Multipliers {
	m, ok := difficultyTable[c.Difficulty]
	if !ok {
		return difficultyTable[DifficultyNormal]
	}
	return m
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
