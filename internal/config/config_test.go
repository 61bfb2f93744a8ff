package config

import "testing"

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LMBOX_SCREEN_WIDTH", "1920")
	t.Setenv("LMBOX_SCREEN_HEIGHT", "1080")
	t.Setenv("LMBOX_DIFFICULTY", "Hard")
	t.Setenv("LMBOX_CAMERA", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ScreenWidth != 1920 || cfg.ScreenHeight != 1080 {
		t.Errorf("geometry = %dx%d, want 1920x1080", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %q, want Hard", cfg.Difficulty)
	}
	if cfg.CameraIndex != 1 {
		t.Errorf("CameraIndex = %d, want 1", cfg.CameraIndex)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric width", "LMBOX_SCREEN_WIDTH", "wide"},
		{"zero height", "LMBOX_SCREEN_HEIGHT", "0"},
		{"unknown difficulty", "LMBOX_DIFFICULTY", "Nightmare"},
		{"tick rate too high", "LMBOX_TICK_RATE", "500"},
		{"volume out of range", "LMBOX_SOUND_VOLUME", "11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}

func TestMultipliers(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		speed      float64
		score      float64
	}{
		{DifficultyEasy, 0.7, 0.8},
		{DifficultyNormal, 1.0, 1.0},
		{DifficultyHard, 1.3, 1.2},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			cfg := Default()
			cfg.Difficulty = tt.difficulty

			m := cfg.Multipliers()
			if m.Speed != tt.speed || m.Score != tt.score {
				t.Errorf("Multipliers() = %+v, want speed=%v score=%v", m, tt.speed, tt.score)
			}
		})
	}

	// Unknown difficulty falls back to Normal rather than zeroing speeds.
	cfg := Config{Difficulty: "Unknown"}
	if m := cfg.Multipliers(); m.Speed != 1.0 {
		t.Errorf("unknown difficulty Multipliers() = %+v, want Normal", m)
	}
}
