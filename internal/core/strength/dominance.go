package strength

import (
	"go.uber.org/zap"

	"github.com/athanor/almagest/internal/core/model"
)

// Dominance decides which rulership layer governs the moment. A strength
// gap above the configured ratio (2x by default) is decisive; closer gaps
// yield a balanced view rather than a binary switch, which avoids visual
// flicker for near-tied conditions. Comparisons are strict: H == 2D and
// D == 2H both resolve to balanced.
func (c *Calculator) Dominance(hour, day model.PlanetStrength) model.DominanceLayer {
	h := hour.Value
	d := day.Value

	// A strength below the floor is a programming defect upstream; clamp
	// and keep going rather than propagate.
	if h < c.Weights.StrengthFloor {
		c.Log.Warn("hour strength below floor, clamping",
			zap.String("planet", string(hour.Planet)),
			zap.Float64("value", h))
		h = c.Weights.StrengthFloor
	}
	if d < c.Weights.StrengthFloor {
		c.Log.Warn("day strength below floor, clamping",
			zap.String("planet", string(day.Planet)),
			zap.Float64("value", d))
		d = c.Weights.StrengthFloor
	}

	// When one planet holds both roles the layers coincide and the hour
	// layer, being the finer-grained one, governs.
	if hour.Planet == day.Planet {
		return model.LayerHour
	}

	switch {
	case h > c.Weights.DominanceRatio*d:
		return model.LayerHour
	case d > c.Weights.DominanceRatio*h:
		return model.LayerDay
	}
	return model.LayerBalanced
}
