package sim

import (
	"math"
	"testing"

	"github.com/talgya/terrarium/internal/automata"
)

func TestRockStrikesAlongSweptPath(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	victim := place(s, 'E', 5, 18, 5) // too weak to move out of the way
	s.Rocks = append(s.Rocks, &automata.Rock{X: 5, Y: 10, Active: true})

	s.Step(1)

	if victim.Alive {
		t.Fatal("a rock falling through the cell should kill the weakened automaton")
	}
	if s.RockDeathsTotal != 1 {
		t.Errorf("rock deaths = %d, want 1", s.RockDeathsTotal)
	}
	if s.Rocks[0].Active {
		t.Error("the rock should spend itself on the impact")
	}
	if s.StaticRockAt(Cell{5, 18}) {
		t.Error("a spent rock leaves no surface obstacle")
	}
	if !s.CorpseAt(Cell{5, 18}) {
		t.Error("the kill should leave a corpse")
	}
}

func TestRockDamageScalesWithFallSpeed(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	victim := place(s, 'E', 5, 18, 5)
	// Dropped from barely above so the short tick still sweeps row 18.
	s.Rocks = append(s.Rocks, &automata.Rock{X: 5, Y: 17.99, Active: true})

	s.Step(0.05)

	// Damage = 0.5 * vy^2 * mass with vy = g * 0.05.
	vy := 9.81 * 0.05
	want := 5 - 0.5*vy*vy*20
	if victim.Energy >= 5 || math.Abs(victim.Energy-want) > 0.5 {
		t.Errorf("energy = %v, want about %v", victim.Energy, want)
	}
	if !victim.Alive {
		t.Error("a slow rock should wound, not kill")
	}
}

func TestRockLandsAsObstacle(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	s.Rocks = append(s.Rocks, &automata.Rock{X: 5, Y: 17, Active: true})

	s.Step(1)

	r := s.Rocks[0]
	if r.Active {
		t.Fatal("a rock reaching the surface should deactivate")
	}
	if r.Y != 19 {
		t.Errorf("rock rests at %v, want the surface row 19", r.Y)
	}
	if !s.StaticRockAt(Cell{5, 18}) {
		t.Error("a landed rock should occupy the cell above the surface")
	}
}

func TestAutoRockDrop(t *testing.T) {
	s := newWorld(fixedStream{f: 0.0, n: 40})
	s.AutoRocks = true
	place(s, 'X', 5, 8, 100)

	s.Step(0)

	if len(s.Rocks) != 1 {
		t.Fatalf("rocks = %d, want an opportunistic drop", len(s.Rocks))
	}

	// Disabled auto-rocks never draw.
	s = newWorld(fixedStream{f: 0.0, n: 40})
	place(s, 'X', 5, 8, 100)
	s.Step(0)
	if len(s.Rocks) != 0 {
		t.Error("auto-rocks off should mean no spontaneous drops")
	}
}

func TestCorpseDecayRaisesTerrain(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	s.corpses[Cell{3, 18}] = 0

	s.Step(150) // five 30-second days

	if s.CorpseAt(Cell{3, 18}) {
		t.Fatal("the corpse should be absorbed")
	}
	if s.Terrain[3] != 18 {
		t.Errorf("terrain[3] = %d, want raised to 18", s.Terrain[3])
	}
}

func TestRockDecayRaisesTerrain(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	s.staticRocks[Cell{4, 18}] = 0

	s.Step(299)
	if !s.StaticRockAt(Cell{4, 18}) {
		t.Fatal("the rock should persist for ten days")
	}
	s.Step(1)
	if s.StaticRockAt(Cell{4, 18}) {
		t.Fatal("the rock should be absorbed after ten days")
	}
	if s.Terrain[4] != 18 {
		t.Errorf("terrain[4] = %d, want raised to 18", s.Terrain[4])
	}
}

func TestCorpseScavenging(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	a := place(s, 'A', 6, 18, 50)
	s.corpses[Cell{6, 18}] = 0

	s.consumeCorpses()

	if s.CorpseAt(Cell{6, 18}) {
		t.Fatal("the corpse should be eaten")
	}
	if a.Energy != 75 {
		t.Errorf("scavenger energy = %v, want 75", a.Energy)
	}
	if !a.AteTick {
		t.Error("scavenging should mark the tick flag")
	}

	// Non-base species walk past corpses.
	s = newWorld(fixedStream{f: 0.9, n: 40})
	place(s, 'E', 6, 18, 50)
	s.corpses[Cell{6, 18}] = 0
	s.consumeCorpses()
	if !s.CorpseAt(Cell{6, 18}) {
		t.Error("only base species scavenge")
	}
}

func TestStarvationSweep(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	a := place(s, 'P', 5, 10, 0.05)

	s.Step(1) // drains past zero

	if a.Alive {
		t.Fatal("drained automaton should starve")
	}
	if s.StarvedTotal != 1 {
		t.Errorf("starved = %d, want 1", s.StarvedTotal)
	}
	if !s.CorpseAt(Cell{5, 18}) {
		t.Error("starvation should leave a corpse at the surface")
	}
}

func TestTransformation(t *testing.T) {
	s := newWorld(fixedStream{f: 0.9, n: 40})
	a := place(s, 'C', 5, 18, 10) // immobile, so position stays put
	a.AgeS = 900                  // thirty 30-second days, one interval

	s.Step(0)

	if a.Species != 'E' {
		t.Errorf("species = %c, want promoted to E", a.Species)
	}
	if a.TransformsDone != 1 {
		t.Errorf("transforms = %d, want 1", a.TransformsDone)
	}

	// A long-lived M crosses into the flyer range and stops there.
	s = newWorld(fixedStream{f: 0.9, n: 40})
	m := place(s, 'M', 5, 18, 10)
	m.AgeS = 5 * 900
	s.Step(0)
	if m.Species != 'O' {
		t.Errorf("species = %c, want O and no further", m.Species)
	}
}
