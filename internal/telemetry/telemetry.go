// Package telemetry streams per-day simulation statistics to CSV for
// offline analysis.
package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// DayStats is one CSV row of daily simulation output.
type DayStats struct {
	Day           int     `csv:"day"`
	Alive         int     `csv:"alive"`
	Landers       int     `csv:"landers"`
	Flyers        int     `csv:"flyers"`
	Spawned       int     `csv:"spawned"`
	Died          int     `csv:"died"`
	Eaten         int     `csv:"eaten"`
	RockDeaths    int     `csv:"rock_deaths"`
	Starved       int     `csv:"starved"`
	Reproductions int     `csv:"reproductions"`
	Moves         int     `csv:"moves"`
	MovesMA7      float64 `csv:"moves_ma7"`
	MeanEnergy    float64 `csv:"mean_energy"`
}

// Writer appends DayStats rows to a CSV file, writing the header once.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// NewWriter creates or truncates the CSV file at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create telemetry file: %w", err)
	}
	return &Writer{file: f}, nil
}

// Append writes one row, emitting the header on the first call.
func (w *Writer) Append(row DayStats) error {
	rows := []DayStats{row}
	var err error
	if !w.headerWritten {
		err = gocsv.MarshalFile(&rows, w.file)
		w.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, w.file)
	}
	if err != nil {
		return fmt.Errorf("write telemetry row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	return w.file.Close()
}
