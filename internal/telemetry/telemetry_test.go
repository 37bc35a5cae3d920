package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterAppendsWithSingleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.csv")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	if err := w.Append(DayStats{Day: 1, Alive: 30, Moves: 12, MeanEnergy: 55.5}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Append(DayStats{Day: 2, Alive: 28, Moves: 20, MovesMA7: 16, MeanEnergy: 50}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus two rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "day,alive,") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "day,alive,") != 1 {
		t.Error("the header should appear exactly once")
	}
	if !strings.HasPrefix(lines[1], "1,30,") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2,28,") {
		t.Errorf("row 2 = %q", lines[2])
	}
}
