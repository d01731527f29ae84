package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/athanor/almagest/internal/core/model"
)

func ps(p model.Planet, v float64) model.PlanetStrength {
	return model.PlanetStrength{Planet: p, Value: v}
}

func TestDominanceGrid(t *testing.T) {
	c := newCalculator()

	cases := []struct {
		h, d float64
		want model.DominanceLayer
	}{
		{10, 4, model.LayerHour},       // 10 > 8
		{4, 10, model.LayerDay},        // 10 > 8
		{8.6, 4.4, model.LayerBalanced}, // 8.6 <= 8.8
		{4.4, 8.6, model.LayerBalanced},
		{10, 5, model.LayerBalanced}, // H == 2D exactly: strict comparison
		{5, 10, model.LayerBalanced}, // D == 2H exactly
		{0.1, 0.1, model.LayerBalanced},
		{7.1, 0.8, model.LayerHour},
		{0.8, 7.1, model.LayerDay},
		{0.1, 0.21, model.LayerDay},
	}

	for _, tc := range cases {
		got := c.Dominance(ps(model.Saturn, tc.h), ps(model.Venus, tc.d))
		assert.Equal(t, tc.want, got, "H=%v D=%v", tc.h, tc.d)
	}
}

func TestDominanceSamePlanetRulesBoth(t *testing.T) {
	c := newCalculator()
	// Coinciding layers: the hour layer governs.
	got := c.Dominance(ps(model.Mars, 8.2), ps(model.Mars, 8.2))
	assert.Equal(t, model.LayerHour, got)
}

func TestDominanceClampsBelowFloorInputs(t *testing.T) {
	c := newCalculator()
	// A zero strength is a programming defect upstream; the resolver clamps
	// to the floor instead of dividing the decision by zero.
	got := c.Dominance(ps(model.Saturn, 0), ps(model.Venus, 0.19))
	assert.Equal(t, model.LayerBalanced, got)

	got = c.Dominance(ps(model.Saturn, 0), ps(model.Venus, 0.21))
	assert.Equal(t, model.LayerDay, got)
}
