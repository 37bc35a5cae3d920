package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	p := Defaults()
	if p.Time.DayLengthS != 30 || p.Time.DaylightS != 15 {
		t.Errorf("day cadence = %v/%v, want 30/15", p.Time.DayLengthS, p.Time.DaylightS)
	}
	if p.Energy.Meal != 25 || p.Energy.Max != 100 {
		t.Errorf("energy economy = %v/%v, want 25/100", p.Energy.Meal, p.Energy.Max)
	}
	if p.Physics.Gravity != 9.81 {
		t.Errorf("gravity = %v, want 9.81", p.Physics.Gravity)
	}
	if p.Jump.DistanceCells != 2 || p.Jump.AscentMaxCells != 3 {
		t.Errorf("jump geometry = %d/%d, want 2/3", p.Jump.DistanceCells, p.Jump.AscentMaxCells)
	}
	if p.World.DefaultWidth <= 0 || p.World.DefaultHeight <= 0 {
		t.Error("default world geometry must be positive")
	}
}

func TestDecaySeconds(t *testing.T) {
	p := Defaults()
	if p.CorpseDecayS() != 5*30 {
		t.Errorf("corpse decay = %v, want 150", p.CorpseDecayS())
	}
	if p.RockDecayS() != 10*30 {
		t.Errorf("rock decay = %v, want 300", p.RockDecayS())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	overlay := []byte("time:\n  day_length_s: 60.0\nrocks:\n  mass: 5.0\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Time.DayLengthS != 60 {
		t.Errorf("overlaid day length = %v, want 60", p.Time.DayLengthS)
	}
	if p.Rocks.Mass != 5 {
		t.Errorf("overlaid rock mass = %v, want 5", p.Rocks.Mass)
	}
	// Untouched fields keep their defaults.
	if p.Time.DaylightS != 15 {
		t.Errorf("daylight = %v, want default 15", p.Time.DaylightS)
	}
	if p.Energy.Meal != 25 {
		t.Errorf("meal = %v, want default 25", p.Energy.Meal)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if p.Time.DayLengthS != 30 {
		t.Error("empty path should return defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should error")
	}
}
