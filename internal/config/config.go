// Package config provides tunable simulation parameters loaded from YAML.
// Embedded defaults are always applied first; a user file overlays only the
// fields it names.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Params holds every tunable constant of the simulation.
type Params struct {
	Time         TimeParams         `yaml:"time"`
	Energy       EnergyParams       `yaml:"energy"`
	Physics      PhysicsParams      `yaml:"physics"`
	Rocks        RockParams         `yaml:"rocks"`
	Reproduction ReproductionParams `yaml:"reproduction"`
	Jump         JumpParams         `yaml:"jump"`
	Decay        DecayParams        `yaml:"decay"`
	Behavior     BehaviorParams     `yaml:"behavior"`
	World        WorldParams        `yaml:"world"`
}

// TimeParams sets the day/night cadence.
type TimeParams struct {
	DayLengthS float64 `yaml:"day_length_s"` // Full day in sim-seconds
	DaylightS  float64 `yaml:"daylight_s"`   // Sunlit portion of the day
}

// EnergyParams sets the energy economy.
type EnergyParams struct {
	Meal             float64 `yaml:"meal"`                // Energy in one meal
	Max              float64 `yaml:"max"`                 // Upper clamp for all energy values
	MinMove          float64 `yaml:"min_move"`            // Below this an automaton cannot move
	MinFly           float64 `yaml:"min_fly"`             // Below this a flyer cannot fly
	WalkCostPerS     float64 `yaml:"walk_cost_per_s"`     // Charged only while translating
	FlightCostPerS   float64 `yaml:"flight_cost_per_s"`
	PassiveDrainPerS float64 `yaml:"passive_drain_per_s"` // Drain when unable to move
	IdleDrainPerS    float64 `yaml:"idle_drain_per_s"`    // Drain when no move/eat/repro this tick
	RetaliationMax   float64 `yaml:"retaliation_max"`     // Attacker energy at or below this can be retaliated against
}

// PhysicsParams sets the motion integrator constants.
type PhysicsParams struct {
	Gravity          float64 `yaml:"gravity"`
	AirDrag          float64 `yaml:"air_drag"`
	GroundFriction   float64 `yaml:"ground_friction"`
	Restitution      float64 `yaml:"restitution"`
	FlyerClimbAccel  float64 `yaml:"flyer_climb_accel"`
	FlyerKick        float64 `yaml:"flyer_kick"`         // Upward takeoff speed
	WalkSpeed        float64 `yaml:"walk_speed"`         // Lander intent speed, cells/s
	FlyerSpeed       float64 `yaml:"flyer_speed"`        // Flyer horizontal intent speed
	FlyerImpulse     float64 `yaml:"flyer_impulse"`      // Vertical impulse per direction vote
	LifeNudge        float64 `yaml:"life_nudge"`         // Horizontal nudge from the life field
	StagnationAfterS float64 `yaml:"stagnation_after_s"` // Seconds in one cell before a nudge
	StagnationNudge  float64 `yaml:"stagnation_nudge"`   // Magnitude of the anti-stagnation nudge
}

// RockParams sets projectile behavior.
type RockParams struct {
	Mass           float64 `yaml:"mass"`             // Scales impact energy into damage
	DropThreshold  float64 `yaml:"drop_threshold"`   // Minimum energy to drop a rock
	AutoDropChance float64 `yaml:"auto_drop_chance"` // Per-tick opportunistic drop probability
}

// ReproductionParams sets mating and spawning rules.
type ReproductionParams struct {
	EnergyThreshold  float64 `yaml:"energy_threshold"`   // Both parents need at least this
	BirthEnergy      float64 `yaml:"birth_energy"`       // Energy of every newborn
	FlyerMinAltitude float64 `yaml:"flyer_min_altitude"` // Rows above terrain required for flyer mating
	AsexualThreshold float64 `yaml:"asexual_threshold"`  // Z reproduces alone above this energy
	AutoSpawnDays    float64 `yaml:"auto_spawn_days"`    // A/B fallback spawn after this many barren days
	TransformDays    float64 `yaml:"transform_days"`     // Lander evolution interval in days
}

// JumpParams sets the lander jump rule.
type JumpParams struct {
	CooldownDays   float64 `yaml:"cooldown_days"`
	AscentMaxCells int     `yaml:"ascent_max_cells"`
	DistanceCells  int     `yaml:"distance_cells"`
	Chance         float64 `yaml:"chance"`
	EnergyCost     float64 `yaml:"energy_cost"`
}

// DecayParams sets corpse and rock absorption times.
type DecayParams struct {
	CorpseDays float64 `yaml:"corpse_days"`
	RockDays   float64 `yaml:"rock_days"`
}

// BehaviorParams sets AI scan and bias constants.
type BehaviorParams struct {
	VisionRange      int     `yaml:"vision_range"`      // Chebyshev scan radius
	FarVisibility    float64 `yaml:"far_visibility"`    // Chance to see at the scan edge
	MateEnergyFloor  float64 `yaml:"mate_energy_floor"` // Minimum energy to seek a mate
	WeightHorizontal float64 `yaml:"weight_horizontal"` // Flyer base vote, left/right
	WeightUp         float64 `yaml:"weight_up"`
	WeightDown       float64 `yaml:"weight_down"`
	DropVoteFactor   float64 `yaml:"drop_vote_factor"` // Drop option weight relative to the down vote
}

// WorldParams sets default world geometry and seeding.
type WorldParams struct {
	DefaultWidth   int     `yaml:"default_width"`
	DefaultHeight  int     `yaml:"default_height"`
	SeaLevelOffset int     `yaml:"sea_level_offset"` // Baseline rows above the bottom
	Amplitude      int     `yaml:"amplitude"`        // Surface variation around the baseline
	FlyerFraction  float64 `yaml:"flyer_fraction"`   // Share of flyers in balanced seeding
	SeedEnergy     float64 `yaml:"seed_energy"`      // Energy of seeded automata
	HistoryDays    int     `yaml:"history_days"`     // Daily movement buckets retained
}

// CorpseDecayS returns the corpse absorption time in seconds.
func (p *Params) CorpseDecayS() float64 { return p.Decay.CorpseDays * p.Time.DayLengthS }

// RockDecayS returns the landed-rock absorption time in seconds.
func (p *Params) RockDecayS() float64 { return p.Decay.RockDays * p.Time.DayLengthS }

// Defaults returns the embedded default parameters.
func Defaults() *Params {
	p := &Params{}
	if err := yaml.Unmarshal(defaultsYAML, p); err != nil {
		// The embedded defaults are part of the build; failing to parse them
		// is a programming error, not a runtime condition.
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return p
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Params, error) {
	p := Defaults()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return p, nil
}
