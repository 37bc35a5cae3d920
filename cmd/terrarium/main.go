// Command terrarium runs the letter-ecology world simulation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/terrarium/internal/chronicle"
	"github.com/talgya/terrarium/internal/config"
	"github.com/talgya/terrarium/internal/engine"
	"github.com/talgya/terrarium/internal/entropy"
	"github.com/talgya/terrarium/internal/sim"
	"github.com/talgya/terrarium/internal/telemetry"
	"github.com/talgya/terrarium/internal/terrain"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "YAML config overlay (optional)")
		seed      = flag.Int64("seed", 42, "world seed (0 = time-based)")
		width     = flag.Int("width", 0, "world width in cells (0 = config default)")
		height    = flag.Int("height", 0, "world height in cells (0 = config default)")
		pop       = flag.Int("population", 40, "seeded population size")
		steps     = flag.Int("steps", 0, "run N ticks flat out and exit (0 = run paced)")
		dt        = flag.Float64("dt", 0.5, "sim-seconds per tick")
		interval  = flag.Duration("interval", 500*time.Millisecond, "wall-clock time per tick")
		dataDir   = flag.String("data", "data", "output directory for ledger and telemetry")
		noiseTer  = flag.Bool("noise-terrain", false, "use simplex terrain instead of a random walk")
		autoRocks = flag.Bool("auto-rocks", true, "droppers occasionally release rocks unprompted")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	params, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	w, h := params.World.DefaultWidth, params.World.DefaultHeight
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		slog.Error("failed to create data dir", "error", err)
		os.Exit(1)
	}
	ledger, err := chronicle.Open(filepath.Join(*dataDir, "terrarium.db"), *seed)
	if err != nil {
		slog.Error("failed to open run ledger", "error", err)
		os.Exit(1)
	}
	defer ledger.Close()

	csvOut, err := telemetry.NewWriter(filepath.Join(*dataDir, "terrarium_days.csv"))
	if err != nil {
		slog.Error("failed to open telemetry output", "error", err)
		os.Exit(1)
	}
	defer csvOut.Close()

	newWorld := func(worldSeed int64) *sim.Simulation {
		s := sim.New(w, h, params, entropy.NewSource(worldSeed))
		if *noiseTer {
			s.Terrain = terrain.GenerateNoise(w, h, params.World.SeaLevelOffset, params.World.Amplitude, worldSeed)
		} else {
			s.Terrain = terrain.Generate(w, h, params.World.SeaLevelOffset, params.World.Amplitude, worldSeed)
		}
		s.Life.SeedNoise(worldSeed+1, 0.12)
		s.AutoRocks = *autoRocks
		s.SeedPopulation(*pop, worldSeed+2)
		return s
	}

	world := newWorld(*seed)
	slog.Info("world seeded",
		"width", w, "height", h,
		"population", world.AliveCount(),
		"seed", *seed,
		"run_id", ledger.RunID(),
	)

	// prevTotals carries yesterday's counters so the day report shows deltas.
	var prevTotals chronicle.DaySummary

	eng := engine.New(*interval, *dt)
	eng.OnStep = func(tick uint64, stepDT float64) {
		world.Step(stepDT)
		if world.AliveCount() == 0 {
			day := world.Clock.DayIndex()
			slog.Warn("extinction, reseeding world", "day", day, "tick", tick)
			for _, d := range world.DrainDeaths() {
				detail := fmt.Sprintf("%c %s %s", d.Species, d.ID, d.Cause)
				if err := ledger.RecordEvent(d.Day, "death", detail); err != nil {
					slog.Error("ledger write failed", "error", err)
				}
			}
			if err := ledger.RecordEvent(day, "extinction", "all automata dead, world reseeded"); err != nil {
				slog.Error("ledger write failed", "error", err)
			}
			world = newWorld(*seed + int64(tick))
			prevTotals = chronicle.DaySummary{}
		}
	}
	eng.OnDay = func(day int) {
		for _, d := range world.DrainDeaths() {
			detail := fmt.Sprintf("%c %s %s", d.Species, d.ID, d.Cause)
			if err := ledger.RecordEvent(d.Day, "death", detail); err != nil {
				slog.Error("ledger write failed", "error", err)
			}
		}
		census := world.Census()
		moves := world.MovementStats()
		summary := chronicle.DaySummary{
			Day:           day,
			Alive:         census.Alive,
			Spawned:       world.SpawnedTotal,
			Died:          world.DiedTotal,
			Eaten:         world.EatenTotal,
			RockDeaths:    world.RockDeathsTotal,
			Starved:       world.StarvedTotal,
			Reproductions: world.ReproductionsTotal,
			Moves:         moves.Total,
			MeanEnergy:    world.EnergyMean(),
		}
		if err := ledger.RecordDay(summary); err != nil {
			slog.Error("ledger write failed", "error", err)
		}
		if err := csvOut.Append(telemetry.DayStats{
			Day:           day,
			Alive:         census.Alive,
			Landers:       census.Landers,
			Flyers:        census.Flyers,
			Spawned:       summary.Spawned,
			Died:          summary.Died,
			Eaten:         summary.Eaten,
			RockDeaths:    summary.RockDeaths,
			Starved:       summary.Starved,
			Reproductions: summary.Reproductions,
			Moves:         summary.Moves,
			MovesMA7:      moves.MA7,
			MeanEnergy:    summary.MeanEnergy,
		}); err != nil {
			slog.Error("telemetry write failed", "error", err)
		}

		slog.Info("day complete",
			"day", day,
			"alive", census.Alive,
			"landers", census.Landers,
			"flyers", census.Flyers,
			"born", summary.Spawned-prevTotals.Spawned,
			"died", summary.Died-prevTotals.Died,
			"moves_total", humanize.Comma(int64(moves.Total)),
			"moves_ma7", fmt.Sprintf("%.1f", moves.MA7),
			"mean_energy", fmt.Sprintf("%.1f", summary.MeanEnergy),
		)
		prevTotals = summary
	}

	if *steps > 0 {
		eng.RunSteps(*steps, params.Time.DayLengthS)
		slog.Info("batch run complete",
			"ticks", humanize.Comma(int64(eng.Tick)),
			"days", world.Clock.DayIndex(),
			"alive", world.AliveCount(),
		)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	eng.Run(ctx, params.Time.DayLengthS)
}
