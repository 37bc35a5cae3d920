// Package engine provides the tick-based simulation loop.
package engine

import (
	"context"
	"log/slog"
	"time"
)

// Engine drives the simulation forward at a wall-clock cadence. Each tick
// advances the world by DT sim-seconds.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Wall-clock interval per tick
	DT       float64       // Sim-seconds advanced per tick

	// Callbacks populated during setup. OnStep runs every tick with the
	// sim-time delta; OnDay runs once per completed sim-day.
	OnStep func(tick uint64, dt float64)
	OnDay  func(day int)

	simTime float64
	lastDay int
	stop    chan struct{}
}

// New creates an engine with the given cadence. dayLengthS sets the
// sim-seconds per day used for the OnDay callback; zero disables it.
func New(interval time.Duration, dt float64) *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: interval,
		DT:       dt,
		stop:     make(chan struct{}),
	}
}

// Run starts the simulation loop and blocks until Stop is called or the
// context is canceled.
func (e *Engine) Run(ctx context.Context, dayLengthS float64) {
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed, "dt", e.DT)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation engine stopped", "tick", e.Tick, "reason", "context")
			return
		case <-e.stop:
			slog.Info("simulation engine stopped", "tick", e.Tick)
			return
		default:
		}

		if e.Speed <= 0 {
			// Paused. Sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.step(dayLengthS)

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}
}

// RunSteps advances exactly n ticks back to back with no wall-clock pacing.
// Used for batch runs and tests.
func (e *Engine) RunSteps(n int, dayLengthS float64) {
	for i := 0; i < n; i++ {
		e.step(dayLengthS)
	}
}

// Stop halts the simulation loop. Safe to call once.
func (e *Engine) Stop() {
	close(e.stop)
}

// step advances one tick. Speed changes the wall-clock pacing only; every
// tick moves sim time by exactly DT.
func (e *Engine) step(dayLengthS float64) {
	e.Tick++
	e.simTime += e.DT
	if e.OnStep != nil {
		e.OnStep(e.Tick, e.DT)
	}
	if dayLengthS > 0 && e.OnDay != nil {
		if day := int(e.simTime / dayLengthS); day > e.lastDay {
			e.lastDay = day
			e.OnDay(day)
		}
	}
}
