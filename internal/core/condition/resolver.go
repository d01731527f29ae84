package condition

import (
	"math"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core/model"
)

// Resolver maps raw ephemeris facts onto a PlanetaryCondition. It never
// fails: missing fields degrade to neutral defaults (peregrine dignity, no
// combustion, direct motion) so one planet's bad data cannot abort an
// evaluation.
type Resolver struct {
	Weights config.Weights
}

func NewResolver(w config.Weights) *Resolver {
	return &Resolver{Weights: w}
}

// Resolve builds the condition record for one planet at the evaluation
// instant. hourRuler and dayRuler come from the global context.
func (r *Resolver) Resolve(p model.Planet, snap model.PositionSnapshot, hourRuler, dayRuler model.Planet) model.PlanetaryCondition {
	cond := model.PlanetaryCondition{
		Planet:      p,
		Sign:        snap.ZodiacSign,
		IsHourRuler: p == hourRuler,
		IsDayRuler:  p == dayRuler,
	}

	if snap.ZodiacSign.Valid() {
		cond.Dignity = DignityOf(p, snap.ZodiacSign)
	} else {
		cond.Dignity = model.DignityPeregrine
		cond.Degraded = true
	}

	cond.Combustion = r.combustion(p, snap.SunSeparation)
	if p != model.Sun && snap.SunSeparation == nil {
		cond.Degraded = true
	}

	cond.Motion = r.motion(snap.DailyMotion)
	if snap.DailyMotion == nil {
		cond.Degraded = true
	}

	if snap.Altitude != nil {
		cond.Altitude = *snap.Altitude
	} else {
		cond.Degraded = true
	}

	if p == model.Moon {
		if snap.PhaseAngle != nil {
			m := MoonPhaseModifier(*snap.PhaseAngle)
			cond.MoonPhaseModifier = &m
		} else {
			cond.Degraded = true
		}
	}

	return cond
}

// DignityOf is a pure table lookup; planets matching no entry are peregrine.
func DignityOf(p model.Planet, sign model.Sign) model.Dignity {
	table, ok := model.Dignities(p)
	if !ok {
		return model.DignityPeregrine
	}
	switch sign {
	case table.Domicile:
		return model.DignityDomicile
	case table.Exaltation:
		return model.DignityExaltation
	case table.Detriment:
		return model.DignityDetriment
	case table.Fall:
		return model.DignityFall
	}
	return model.DignityPeregrine
}

// combustion classifies angular separation from the Sun. The Sun itself is
// never combust. Thresholds are strict classical values: cazimi inside
// 0.283 degrees, combust inside 8.5, under the beams inside 17.
func (r *Resolver) combustion(p model.Planet, separation *float64) model.Combustion {
	if p == model.Sun || separation == nil {
		return model.CombustionNone
	}
	sep := math.Abs(*separation)
	switch {
	case sep <= r.Weights.CazimiThresholdDeg:
		return model.CombustionCazimi
	case sep <= r.Weights.CombustThresholdDeg:
		return model.CombustionCombust
	case sep <= r.Weights.UnderBeamsThresholdDeg:
		return model.CombustionUnderBeams
	}
	return model.CombustionNone
}

func (r *Resolver) motion(dailyDelta *float64) model.Motion {
	if dailyDelta == nil {
		return model.MotionDirect
	}
	switch {
	case math.Abs(*dailyDelta) < r.Weights.StationaryEpsilonDeg:
		return model.MotionStationary
	case *dailyDelta < 0:
		return model.MotionRetrograde
	}
	return model.MotionDirect
}

// MoonPhaseModifier maps the Moon's phase angle (0 = new, 180 = full) onto
// a strength modifier: positive near full moon, negative near new moon.
// Piecewise-linear over the four quarters.
func MoonPhaseModifier(phaseAngle float64) float64 {
	a := math.Mod(phaseAngle, 360)
	if a < 0 {
		a += 360
	}
	switch {
	case a <= 90: // new moon to first quarter, waxing
		return -0.7 + (a/90)*1.0
	case a <= 180: // first quarter to full, waxing
		return 0.3 + ((a-90)/90)*0.9
	case a <= 270: // full to last quarter, waning
		return 1.2 - ((a-180)/90)*1.6
	default: // last quarter to new, waning
		return -0.4 - ((a-270)/90)*0.3
	}
}
