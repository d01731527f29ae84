package strength

import (
	"go.uber.org/zap"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core/common"
	"github.com/athanor/almagest/internal/core/model"
)

// Calculator reduces a PlanetaryCondition to a single non-negative scalar.
// It is a pure function of the condition and the weight table: identical
// input yields identical strength.
type Calculator struct {
	Weights config.Weights
	Log     *zap.Logger
}

func NewCalculator(w config.Weights, log *zap.Logger) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calculator{Weights: w, Log: log}
}

// Strength computes
//
//	base_role × dignity_multiplier × visibility + condition_modifiers
//
// floored at the configured minimum so downstream multiplicative weighting
// stays well-defined. Retrograde carries no penalty here; it applies only
// at the correspondence level, where entity-class sensitivity is known.
func (c *Calculator) Strength(cond model.PlanetaryCondition) model.PlanetStrength {
	w := c.Weights
	role := cond.Role()

	base := w.AmbientRoleWeight
	switch role {
	case model.RoleHour, model.RoleBoth:
		base = w.HourRoleWeight
	case model.RoleDay:
		base = w.DayRoleWeight
	}

	s := base * w.DignityMultiplier(cond.Dignity) * c.Visibility(cond.Altitude)

	if role == model.RoleBoth {
		s += w.DualRulerBonus
	}

	switch cond.Combustion {
	case model.CombustionCazimi:
		s += w.CazimiBonus
	case model.CombustionCombust:
		s += w.CombustPenalty
	case model.CombustionUnderBeams:
		s += w.UnderBeamsPenalty
	}

	if cond.Planet == model.Moon && cond.MoonPhaseModifier != nil {
		bound := w.MoonPhaseBound * base
		s += common.Clamp(*cond.MoonPhaseModifier, -bound, bound)
	}

	if s < w.StrengthFloor {
		s = w.StrengthFloor
	}

	return model.PlanetStrength{Planet: cond.Planet, Value: s, Role: role}
}

// Visibility scales strength by how high the planet stands. Above the
// horizon it is altitude/90 clamped to [0,1]; below, a reduced ceiling
// decays linearly toward zero at -90.
func (c *Calculator) Visibility(altitude float64) float64 {
	if altitude >= 0 {
		return common.Clamp(altitude/90, 0, 1)
	}
	return common.Clamp(c.Weights.BelowHorizonCeiling*(1+altitude/90), 0, c.Weights.BelowHorizonCeiling)
}
