package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/athanor/almagest/internal/core/model"
)

// Weights holds every tunable numeric constant of the engine. The zero
// value is not usable; start from DefaultWeights and override via TOML.
// Loaded once at startup and read-only thereafter.
type Weights struct {
	// Strength (base role weights and modifiers).
	HourRoleWeight    float64 `toml:"hour_role_weight"`    // 10.0
	DayRoleWeight     float64 `toml:"day_role_weight"`     // 6.5
	AmbientRoleWeight float64 `toml:"ambient_role_weight"` // 4.0
	DualRulerBonus    float64 `toml:"dual_ruler_bonus"`    // 1.5

	DomicileMultiplier   float64 `toml:"domicile_multiplier"`   // 1.5
	ExaltationMultiplier float64 `toml:"exaltation_multiplier"` // 1.25
	PeregrineMultiplier  float64 `toml:"peregrine_multiplier"`  // 1.0
	DetrimentMultiplier  float64 `toml:"detriment_multiplier"`  // 0.75
	FallMultiplier       float64 `toml:"fall_multiplier"`       // 0.5

	CazimiBonus       float64 `toml:"cazimi_bonus"`        // +0.5
	CombustPenalty    float64 `toml:"combust_penalty"`     // -1.8
	UnderBeamsPenalty float64 `toml:"under_beams_penalty"` // -0.5

	BelowHorizonCeiling float64 `toml:"below_horizon_ceiling"` // 0.25
	MoonPhaseBound      float64 `toml:"moon_phase_bound"`      // 0.15 of base
	StrengthFloor       float64 `toml:"strength_floor"`        // 0.1

	// Condition thresholds.
	CazimiThresholdDeg     float64 `toml:"cazimi_threshold_deg"`      // 0.283
	CombustThresholdDeg    float64 `toml:"combust_threshold_deg"`     // 8.5
	UnderBeamsThresholdDeg float64 `toml:"under_beams_threshold_deg"` // 17.0
	StationaryEpsilonDeg   float64 `toml:"stationary_epsilon_deg"`    // 0.01 deg/day

	// Dominance.
	DominanceRatio float64 `toml:"dominance_ratio"` // 2.0

	// Correspondence weighting.
	RelationHourRuled float64 `toml:"relation_hour_ruled"` // 10.0
	RelationDayRuled  float64 `toml:"relation_day_ruled"`  // 6.0
	RelationAnalogy   float64 `toml:"relation_analogy"`    // 3.0
	RelationGeneric   float64 `toml:"relation_generic"`    // 2.0
	DecayExponent     float64 `toml:"decay_exponent"`      // 1.5
	MaxHops           int     `toml:"max_hops"`            // 3

	SpiritualModifier float64 `toml:"spiritual_modifier"` // 1.2
	MaterialModifier  float64 `toml:"material_modifier"`  // 1.0
	ActionModifier    float64 `toml:"action_modifier"`    // 0.8

	EdgeRetrogradePenalty   float64 `toml:"edge_retrograde_penalty"`    // 0.3
	EdgeBelowHorizonPenalty float64 `toml:"edge_below_horizon_penalty"` // 0.5
	MutedFloor              float64 `toml:"muted_floor"`                // 0.5
	WeightFloor             float64 `toml:"weight_floor"`               // 0.1

	// Conflict resolution.
	ConflictDayVsHourPenalty    float64 `toml:"conflict_day_vs_hour_penalty"`   // 3.0
	ConflictCombustPenalty      float64 `toml:"conflict_combust_penalty"`       // 2.0
	ConflictRetrogradePenalty   float64 `toml:"conflict_retrograde_penalty"`    // 1.0
	ConflictBelowHorizonPenalty float64 `toml:"conflict_below_horizon_penalty"` // 1.5
	ConfidenceFloor             float64 `toml:"confidence_floor"`               // 0.1

	// Assembly (visual-intent hints only).
	WeightCeiling      float64 `toml:"weight_ceiling"`      // 100.0, normalization scale
	SizeMin            float64 `toml:"size_min"`            // 10
	SizeMax            float64 `toml:"size_max"`            // 40
	OpacityMin         float64 `toml:"opacity_min"`         // 0.3
	OpacityMax         float64 `toml:"opacity_max"`         // 1.0
	WidthMin           float64 `toml:"width_min"`           // 1
	WidthMax           float64 `toml:"width_max"`           // 8
	ProminentThreshold float64 `toml:"prominent_threshold"` // 40.0
	MutedThreshold     float64 `toml:"muted_threshold"`     // 5.0
}

// DignityMultiplier maps an essential dignity onto its strength multiplier.
func (w Weights) DignityMultiplier(d model.Dignity) float64 {
	switch d {
	case model.DignityDomicile:
		return w.DomicileMultiplier
	case model.DignityExaltation:
		return w.ExaltationMultiplier
	case model.DignityDetriment:
		return w.DetrimentMultiplier
	case model.DignityFall:
		return w.FallMultiplier
	default:
		return w.PeregrineMultiplier
	}
}

// EntityModifier maps an entity class onto its weighting modifier.
func (w Weights) EntityModifier(c model.EntityClass) float64 {
	switch c {
	case model.ClassSpiritual:
		return w.SpiritualModifier
	case model.ClassAction:
		return w.ActionModifier
	default:
		return w.MaterialModifier
	}
}

// DefaultWeights returns the documented defaults for every constant.
func DefaultWeights() Weights {
	return Weights{
		HourRoleWeight:    10.0,
		DayRoleWeight:     6.5,
		AmbientRoleWeight: 4.0,
		DualRulerBonus:    1.5,

		DomicileMultiplier:   1.5,
		ExaltationMultiplier: 1.25,
		PeregrineMultiplier:  1.0,
		DetrimentMultiplier:  0.75,
		FallMultiplier:       0.5,

		CazimiBonus:       0.5,
		CombustPenalty:    -1.8,
		UnderBeamsPenalty: -0.5,

		BelowHorizonCeiling: 0.25,
		MoonPhaseBound:      0.15,
		StrengthFloor:       0.1,

		CazimiThresholdDeg:     0.283,
		CombustThresholdDeg:    8.5,
		UnderBeamsThresholdDeg: 17.0,
		StationaryEpsilonDeg:   0.01,

		DominanceRatio: 2.0,

		RelationHourRuled: 10.0,
		RelationDayRuled:  6.0,
		RelationAnalogy:   3.0,
		RelationGeneric:   2.0,
		DecayExponent:     1.5,
		MaxHops:           3,

		SpiritualModifier: 1.2,
		MaterialModifier:  1.0,
		ActionModifier:    0.8,

		EdgeRetrogradePenalty:   0.3,
		EdgeBelowHorizonPenalty: 0.5,
		MutedFloor:              0.5,
		WeightFloor:             0.1,

		ConflictDayVsHourPenalty:    3.0,
		ConflictCombustPenalty:      2.0,
		ConflictRetrogradePenalty:   1.0,
		ConflictBelowHorizonPenalty: 1.5,
		ConfidenceFloor:             0.1,

		WeightCeiling:      100.0,
		SizeMin:            10,
		SizeMax:            40,
		OpacityMin:         0.3,
		OpacityMax:         1.0,
		WidthMin:           1,
		WidthMax:           8,
		ProminentThreshold: 40.0,
		MutedThreshold:     5.0,
	}
}

type StoreConfig struct {
	URI                 string `toml:"uri"`
	User                string `toml:"user"`
	Password            string `toml:"password"`
	QueryTimeoutSeconds int    `toml:"query_timeout_seconds"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	Server  ServerConfig `toml:"server"`
	Store   StoreConfig  `toml:"store"`
	Weights Weights      `toml:"weights"`
}

// Default returns a runnable configuration with documented weight defaults
// and a local store.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Store: StoreConfig{
			URI:                 "bolt://localhost:7687",
			QueryTimeoutSeconds: 10,
		},
		Weights: DefaultWeights(),
	}
}

// Load reads a TOML config file on top of the defaults, so a partial file
// only overrides what it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
