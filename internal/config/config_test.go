package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}

	def := DefaultBreakoutConfig()
	if cfg.World != def.World || cfg.Paddle != def.Paddle || cfg.Ball != def.Ball {
		t.Errorf("embedded defaults differ from DefaultBreakoutConfig():\n%+v\n%+v", cfg, def)
	}
	if cfg.Timing.Tick != 20*time.Millisecond {
		t.Errorf("Timing.Tick = %v, expected 20ms", cfg.Timing.Tick)
	}
	if len(cfg.Blocks.Columns) != 2 || cfg.Blocks.Columns[0] != 8 || cfg.Blocks.Columns[1] != 7 {
		t.Errorf("Blocks.Columns = %v, expected [8 7]", cfg.Blocks.Columns)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("ball:\n  launch_speed: 3.5\ntiming:\n  tick: 10ms\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Ball.LaunchSpeed != 3.5 {
		t.Errorf("LaunchSpeed = %v, expected 3.5", cfg.Ball.LaunchSpeed)
	}
	if cfg.Ball.Radius != 8 {
		t.Errorf("Radius should keep its default, got %v", cfg.Ball.Radius)
	}
	if cfg.Timing.Tick != 10*time.Millisecond {
		t.Errorf("Tick = %v, expected 10ms", cfg.Timing.Tick)
	}
	if cfg.TicksPerSecond() != 100 {
		t.Errorf("TicksPerSecond() = %v, expected 100", cfg.TicksPerSecond())
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
		field  string
	}{
		{"negative world", func(c *BreakoutConfig) { c.World.Width = -1 }, "world.width"},
		{"zero paddle height", func(c *BreakoutConfig) { c.Paddle.Height = 0 }, "paddle.height"},
		{"paddle wider than world", func(c *BreakoutConfig) { c.Paddle.Width = 500 }, "paddle.width"},
		{"negative radius", func(c *BreakoutConfig) { c.Ball.Radius = -8 }, "ball.radius"},
		{"negative block gap", func(c *BreakoutConfig) { c.Blocks.GapX = -4 }, "blocks.gap_x"},
		{"empty columns", func(c *BreakoutConfig) { c.Blocks.Columns = nil }, "blocks.columns"},
		{"zero tick", func(c *BreakoutConfig) { c.Timing.Tick = 0 }, "timing.tick"},
		{"max below launch", func(c *BreakoutConfig) { c.Ball.MaxSpeed = 1 }, "ball.max_speed"},
		{"nan paddle width", func(c *BreakoutConfig) { c.Paddle.Width = math.NaN() }, "paddle.width"},
		{"nan block gap", func(c *BreakoutConfig) { c.Blocks.GapY = math.NaN() }, "blocks.gap_y"},
		{"infinite radius", func(c *BreakoutConfig) { c.Ball.Radius = math.Inf(1) }, "ball.radius"},
		{"infinite paddle speed", func(c *BreakoutConfig) { c.Paddle.Speed = math.Inf(1) }, "paddle.speed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q should mention %s", err, tc.field)
			}
		})
	}

	if err := DefaultBreakoutConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	cfg.World.Height = 0
	cfg.Blocks.Width = -2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, field := range []string{"world.height", "blocks.width"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q should mention %s", err, field)
		}
	}
}

func TestLoadBreakoutCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "breakout.yaml")
	if err := os.WriteFile(path, []byte("paddle:\n  speed: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout() failed: %v", err)
	}
	if cfg.Paddle.Speed != 4 {
		t.Errorf("Paddle.Speed = %v, expected 4", cfg.Paddle.Speed)
	}

	if _, err := LoadBreakout(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadBreakout() should fail for a missing custom path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world:\n  width: -10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(bad); err == nil {
		t.Error("LoadBreakout() should reject an invalid config")
	}
}

func TestParseRejectsNaN(t *testing.T) {
	_, err := Parse([]byte("world:\n  width: .nan\n"))
	if err == nil {
		t.Fatal("Parse() should reject a NaN world width")
	}
	if !strings.Contains(err.Error(), "world.width") {
		t.Errorf("error %q should mention world.width", err)
	}
}

func TestLoadBreakoutRejectsInvalidUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, AppDir, "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "breakout.yaml")
	if err := os.WriteFile(path, []byte("paddle:\n  width: -64\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadBreakout("")
	if err == nil {
		t.Fatal("LoadBreakout() should reject an invalid user config")
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), "paddle.width") {
		t.Errorf("error %q should name %s and paddle.width", err, path)
	}

	if err := os.WriteFile(path, []byte("paddle:\n  speed: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadBreakout("")
	if err != nil {
		t.Fatalf("LoadBreakout() failed: %v", err)
	}
	if cfg.Paddle.Speed != 3 {
		t.Errorf("Paddle.Speed = %v, expected 3", cfg.Paddle.Speed)
	}
}

func TestLoadBreakoutRejectsInvalidWorkingDirFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	t.Chdir(wd)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "breakout.yaml"), []byte("timing:\n  tick: 0s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(""); err == nil {
		t.Error("LoadBreakout() should reject an invalid ./configs/breakout.yaml")
	}

	if err := os.Remove(filepath.Join("configs", "breakout.yaml")); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadBreakout("")
	if err != nil {
		t.Fatalf("LoadBreakout() without any file failed: %v", err)
	}
	if cfg.Timing.Tick != 20*time.Millisecond {
		t.Errorf("Timing.Tick = %v, expected the embedded 20ms", cfg.Timing.Tick)
	}
}

func TestMarshalRoundTripKeepsTick(t *testing.T) {
	data, err := Marshal(DefaultBreakoutConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "tick: 20ms") {
		t.Errorf("encoded config should spell the tick as a duration:\n%s", data)
	}
}
