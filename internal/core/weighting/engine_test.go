package weighting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core/model"
	"github.com/athanor/almagest/internal/core/subgraph"
)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultWeights(), nil)
}

func marsArena() *subgraph.Arena {
	return subgraph.Build(model.Subgraph{
		Entities: []model.CorrespondenceEntity{
			{ID: "planet:mars", Name: "Mars", Class: model.ClassPlanet, Planet: model.Mars},
			{ID: "angel:samael", Name: "Samael", Class: model.ClassSpiritual},
			{ID: "metal:iron", Name: "Iron", Class: model.ClassMaterial},
			{ID: "ritual:war", Name: "War Working", Class: model.ClassAction},
			{ID: "stone:garnet", Name: "Garnet", Class: model.ClassMaterial},
			{ID: "day:tuesday", Name: "Tuesday", Class: model.ClassTemporal},
		},
		Links: []model.Link{
			{From: "angel:samael", To: "planet:mars", Relation: model.RelationHourRuledBy},
			{From: "day:tuesday", To: "planet:mars", Relation: model.RelationDayRuledBy},
			{From: "planet:mars", To: "metal:iron", Relation: model.RelationGeneric},
			{From: "planet:mars", To: "ritual:war", Relation: model.RelationGeneric},
			{From: "metal:iron", To: "stone:garnet", Relation: model.RelationAnalogy},
		},
	})
}

func marsInput(a *subgraph.Arena, cond model.PlanetaryCondition) Input {
	return Input{
		Arena:     a,
		HourRuler: model.Mars,
		DayRuler:  model.Mars,
		Conditions: map[model.Planet]model.PlanetaryCondition{
			model.Mars: cond,
		},
		Strengths: map[model.Planet]model.PlanetStrength{
			model.Mars: {Planet: model.Mars, Value: 10},
		},
		Dominance: model.LayerHour,
	}
}

func directCond() model.PlanetaryCondition {
	return model.PlanetaryCondition{
		Planet:     model.Mars,
		Dignity:    model.DignityDomicile,
		Combustion: model.CombustionNone,
		Motion:     model.MotionDirect,
		Altitude:   45,
	}
}

func claimFor(t *testing.T, claims []model.Claim, target string, layer model.DominanceLayer) model.Claim {
	t.Helper()
	for _, c := range claims {
		if c.Target.ID == target && c.Layer == layer {
			return c
		}
	}
	t.Fatalf("no claim on %s in layer %s", target, layer)
	return model.Claim{}
}

func TestDistanceDecay(t *testing.T) {
	e := newTestEngine()

	assert.InDelta(t, 1.0, e.DistanceDecay(1), 1e-9)
	assert.InDelta(t, 1/math.Pow(2, 1.5), e.DistanceDecay(2), 1e-9)
	assert.InDelta(t, 1/math.Pow(3, 1.5), e.DistanceDecay(3), 1e-9)
	assert.Greater(t, e.DistanceDecay(1), e.DistanceDecay(2))
	assert.Greater(t, e.DistanceDecay(2), e.DistanceDecay(3))
	// Degenerate hop values never amplify.
	assert.InDelta(t, 1.0, e.DistanceDecay(0), 1e-9)
}

func TestWeighDirectClaims(t *testing.T) {
	e := newTestEngine()
	claims := e.Weigh(marsInput(marsArena(), directCond()))

	// Single layer when hour and day rulers coincide.
	for _, c := range claims {
		assert.Equal(t, model.LayerHour, c.Layer)
		assert.False(t, c.Muted)
	}

	samael := claimFor(t, claims, "angel:samael", model.LayerHour)
	assert.Equal(t, 1, samael.Hop)
	assert.InDelta(t, 10*10*1.0*1.2, samael.Weight, 1e-9)

	iron := claimFor(t, claims, "metal:iron", model.LayerHour)
	assert.InDelta(t, 10*2*1.0*1.0, iron.Weight, 1e-9)

	war := claimFor(t, claims, "ritual:war", model.LayerHour)
	assert.InDelta(t, 10*2*1.0*0.8, war.Weight, 1e-9)

	garnet := claimFor(t, claims, "stone:garnet", model.LayerHour)
	assert.Equal(t, 2, garnet.Hop)
	assert.Equal(t, "metal:iron", garnet.From)
	assert.InDelta(t, 10*3*(1/math.Pow(2, 1.5))*1.0, garnet.Weight, 1e-9)
}

func TestRulershipRelationOnlyCountsOnDirectLayerLink(t *testing.T) {
	e := newTestEngine()
	claims := e.Weigh(marsInput(marsArena(), directCond()))

	// A DAY_RULED_BY link traversed in the hour layer is just a generic
	// correspondence.
	tuesday := claimFor(t, claims, "day:tuesday", model.LayerHour)
	assert.InDelta(t, 10*2*1.0*1.0, tuesday.Weight, 1e-9)
}

func TestRulershipRelationDecaysToGenericBeyondHopOne(t *testing.T) {
	e := newTestEngine()
	a := subgraph.Build(model.Subgraph{
		Entities: []model.CorrespondenceEntity{
			{ID: "planet:mars", Class: model.ClassPlanet, Planet: model.Mars},
			{ID: "metal:iron", Class: model.ClassMaterial},
			{ID: "angel:remote", Class: model.ClassSpiritual},
		},
		Links: []model.Link{
			{From: "planet:mars", To: "metal:iron", Relation: model.RelationGeneric},
			{From: "angel:remote", To: "metal:iron", Relation: model.RelationHourRuledBy},
		},
	})

	claims := e.Weigh(marsInput(a, directCond()))
	remote := claimFor(t, claims, "angel:remote", model.LayerHour)
	assert.Equal(t, 2, remote.Hop)
	assert.InDelta(t, 10*2*(1/math.Pow(2, 1.5))*1.2, remote.Weight, 1e-9)
}

func TestRetrogradePenaltyOnlyForTimeSensitiveTargets(t *testing.T) {
	e := newTestEngine()
	cond := directCond()
	cond.Motion = model.MotionRetrograde
	claims := e.Weigh(marsInput(marsArena(), cond))

	samael := claimFor(t, claims, "angel:samael", model.LayerHour)
	assert.InDelta(t, 10*10*1.2-0.3, samael.Weight, 1e-9)

	war := claimFor(t, claims, "ritual:war", model.LayerHour)
	assert.InDelta(t, 10*2*0.8-0.3, war.Weight, 1e-9)

	// Material correspondences hold at full weight.
	iron := claimFor(t, claims, "metal:iron", model.LayerHour)
	assert.InDelta(t, 10*2*1.0, iron.Weight, 1e-9)
}

func TestBelowHorizonPenaltyOnlyForActionTargets(t *testing.T) {
	e := newTestEngine()
	cond := directCond()
	cond.Altitude = -15
	claims := e.Weigh(marsInput(marsArena(), cond))

	war := claimFor(t, claims, "ritual:war", model.LayerHour)
	assert.InDelta(t, 10*2*0.8-0.5, war.Weight, 1e-9)

	samael := claimFor(t, claims, "angel:samael", model.LayerHour)
	assert.InDelta(t, 10*10*1.2, samael.Weight, 1e-9)
}

func TestEdgeWeightFloor(t *testing.T) {
	e := newTestEngine()
	in := marsInput(marsArena(), directCond())
	in.Conditions[model.Mars] = model.PlanetaryCondition{
		Planet: model.Mars, Dignity: model.DignityFall,
		Combustion: model.CombustionCombust, Motion: model.MotionRetrograde,
		Altitude: -40,
	}
	in.Strengths[model.Mars] = model.PlanetStrength{Planet: model.Mars, Value: 0.1}

	claims := e.Weigh(in)
	for _, c := range claims {
		assert.GreaterOrEqual(t, c.Weight, 0.1, "target %s", c.Target.ID)
	}
}

func TestMutedLayerCarriesFixedFloor(t *testing.T) {
	e := newTestEngine()
	a := subgraph.Build(model.Subgraph{
		Entities: []model.CorrespondenceEntity{
			{ID: "planet:mars", Class: model.ClassPlanet, Planet: model.Mars},
			{ID: "planet:venus", Class: model.ClassPlanet, Planet: model.Venus},
			{ID: "metal:iron", Class: model.ClassMaterial},
			{ID: "metal:copper", Class: model.ClassMaterial},
		},
		Links: []model.Link{
			{From: "planet:mars", To: "metal:iron", Relation: model.RelationGeneric},
			{From: "planet:venus", To: "metal:copper", Relation: model.RelationGeneric},
		},
	})

	in := Input{
		Arena:     a,
		HourRuler: model.Mars,
		DayRuler:  model.Venus,
		Conditions: map[model.Planet]model.PlanetaryCondition{
			model.Mars:  directCond(),
			model.Venus: {Planet: model.Venus, Dignity: model.DignityPeregrine, Motion: model.MotionDirect, Altitude: 30},
		},
		Strengths: map[model.Planet]model.PlanetStrength{
			model.Mars:  {Planet: model.Mars, Value: 12},
			model.Venus: {Planet: model.Venus, Value: 5},
		},
		Dominance: model.LayerHour,
	}

	claims := e.Weigh(in)

	iron := claimFor(t, claims, "metal:iron", model.LayerHour)
	assert.False(t, iron.Muted)
	assert.InDelta(t, 12*2*1.0, iron.Weight, 1e-9)

	copper := claimFor(t, claims, "metal:copper", model.LayerDay)
	assert.True(t, copper.Muted)
	assert.Equal(t, 0.5, copper.Weight)
}

func TestBalancedDominanceMutesNeither(t *testing.T) {
	e := newTestEngine()
	a := subgraph.Build(model.Subgraph{
		Entities: []model.CorrespondenceEntity{
			{ID: "planet:mars", Class: model.ClassPlanet, Planet: model.Mars},
			{ID: "planet:venus", Class: model.ClassPlanet, Planet: model.Venus},
			{ID: "metal:iron", Class: model.ClassMaterial},
			{ID: "metal:copper", Class: model.ClassMaterial},
		},
		Links: []model.Link{
			{From: "planet:mars", To: "metal:iron", Relation: model.RelationGeneric},
			{From: "planet:venus", To: "metal:copper", Relation: model.RelationGeneric},
		},
	})

	in := Input{
		Arena:     a,
		HourRuler: model.Mars,
		DayRuler:  model.Venus,
		Conditions: map[model.Planet]model.PlanetaryCondition{
			model.Mars:  directCond(),
			model.Venus: {Planet: model.Venus, Motion: model.MotionDirect, Altitude: 30},
		},
		Strengths: map[model.Planet]model.PlanetStrength{
			model.Mars:  {Planet: model.Mars, Value: 6},
			model.Venus: {Planet: model.Venus, Value: 5},
		},
		Dominance: model.LayerBalanced,
	}

	for _, c := range e.Weigh(in) {
		assert.False(t, c.Muted, "target %s layer %s", c.Target.ID, c.Layer)
	}
}

func TestLateralLinksYieldNoClaim(t *testing.T) {
	e := newTestEngine()
	a := subgraph.Build(model.Subgraph{
		Entities: []model.CorrespondenceEntity{
			{ID: "planet:mars", Class: model.ClassPlanet, Planet: model.Mars},
			{ID: "metal:iron", Class: model.ClassMaterial},
			{ID: "color:red", Class: model.ClassMaterial},
		},
		Links: []model.Link{
			{From: "planet:mars", To: "metal:iron", Relation: model.RelationGeneric},
			{From: "planet:mars", To: "color:red", Relation: model.RelationGeneric},
			// Both endpoints sit at hop 1.
			{From: "metal:iron", To: "color:red", Relation: model.RelationAnalogy},
		},
	})

	claims := e.Weigh(marsInput(a, directCond()))
	assert.Len(t, claims, 2)
	for _, c := range claims {
		assert.NotEqual(t, model.RelationAnalogy, c.Relation)
	}
}

func TestMissingRulerProducesNoClaims(t *testing.T) {
	e := newTestEngine()
	in := marsInput(marsArena(), directCond())
	in.HourRuler = model.Saturn
	in.DayRuler = model.Saturn
	in.Conditions[model.Saturn] = directCond()
	in.Strengths[model.Saturn] = model.PlanetStrength{Planet: model.Saturn, Value: 5}

	assert.Empty(t, e.Weigh(in))
}
