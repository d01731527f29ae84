package weighting

import (
	"math"

	"go.uber.org/zap"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core/model"
	"github.com/athanor/almagest/internal/core/subgraph"
)

// Engine turns the raw correspondence subgraph into weighted claims. One
// breadth-first pass per ruling planet supplies shortest-path hop
// distances; each reachable link then yields one claim on its farther
// endpoint.
type Engine struct {
	Weights config.Weights
	Log     *zap.Logger
}

func NewEngine(w config.Weights, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Weights: w, Log: log}
}

// Input carries everything the weighting pass needs for one evaluation.
type Input struct {
	Arena      *subgraph.Arena
	HourRuler  model.Planet
	DayRuler   model.Planet
	Conditions map[model.Planet]model.PlanetaryCondition
	Strengths  map[model.Planet]model.PlanetStrength
	Dominance  model.DominanceLayer
}

// Weigh computes the per-edge claims for both rulership layers. When one
// layer dominates, the other layer's subgraph is still traversed but every
// claim carries the fixed muted floor weight, so its nodes stay visible
// and visually subordinate rather than absent.
func (e *Engine) Weigh(in Input) []model.Claim {
	var claims []model.Claim

	layers := []struct {
		layer model.DominanceLayer
		ruler model.Planet
	}{
		{model.LayerHour, in.HourRuler},
		{model.LayerDay, in.DayRuler},
	}
	// Coinciding rulers would double every claim; the hour layer subsumes.
	if in.HourRuler == in.DayRuler {
		layers = layers[:1]
	}

	for _, l := range layers {
		muted := in.Dominance != model.LayerBalanced && in.Dominance != l.layer
		claims = append(claims, e.weighLayer(in, l.layer, l.ruler, muted)...)
	}

	return claims
}

func (e *Engine) weighLayer(in Input, layer model.DominanceLayer, ruler model.Planet, muted bool) []model.Claim {
	root, ok := in.Arena.PlanetNode(ruler)
	if !ok {
		e.Log.Warn("ruling planet missing from correspondence subgraph",
			zap.String("planet", string(ruler)),
			zap.String("layer", string(layer)))
		return nil
	}

	dist := in.Arena.Distances(root, e.Weights.MaxHops)
	cond := in.Conditions[ruler]
	strength := in.Strengths[ruler].Value

	var claims []model.Claim
	for _, link := range in.Arena.Links {
		from, _ := in.Arena.IndexOf(link.From)
		to, _ := in.Arena.IndexOf(link.To)
		df, dt := dist[from], dist[to]
		if df == -1 || dt == -1 || df == dt {
			// Unreachable within the hop bound, or a lateral link between
			// equidistant nodes; neither defines a claim target.
			continue
		}

		near, far := from, to
		if df > dt {
			near, far = to, from
		}
		hop := dist[far]
		target := in.Arena.Entities[far]

		claim := model.Claim{
			Source:   ruler,
			Relation: link.Relation,
			Target:   target,
			From:     in.Arena.Entities[near].ID,
			Hop:      hop,
			Layer:    layer,
			Muted:    muted,
		}

		if muted {
			claim.Weight = e.Weights.MutedFloor
		} else {
			claim.Weight = e.edgeWeight(link.Relation, layer, hop, strength, cond, target)
		}

		claims = append(claims, claim)
	}
	return claims
}

func (e *Engine) edgeWeight(rel model.RelationType, layer model.DominanceLayer, hop int, strength float64, cond model.PlanetaryCondition, target model.CorrespondenceEntity) float64 {
	w := e.Weights

	weight := strength * e.relationBase(rel, layer, hop) * e.DistanceDecay(hop) * w.EntityModifier(target.Class)

	// Entity-sensitive penalties live here, not in planet strength, so a
	// retrograde ruler still claims metals at full weight while its claims
	// on angels and timed operations are weakened.
	if cond.Motion == model.MotionRetrograde && target.Class.TimeSensitive() {
		weight -= w.EdgeRetrogradePenalty
	}
	if cond.Altitude < 0 && target.Class.ActionSensitive() {
		weight -= w.EdgeBelowHorizonPenalty
	}

	if weight < w.WeightFloor {
		weight = w.WeightFloor
	}
	return weight
}

// relationBase returns the base weight of a relation type. The rulership
// relations only carry their full base on a direct link from the matching
// ruler; anywhere else they fall back to the generic correspondence weight.
func (e *Engine) relationBase(rel model.RelationType, layer model.DominanceLayer, hop int) float64 {
	w := e.Weights
	switch rel {
	case model.RelationHourRuledBy:
		if layer == model.LayerHour && hop == 1 {
			return w.RelationHourRuled
		}
		return w.RelationGeneric
	case model.RelationDayRuledBy:
		if layer == model.LayerDay && hop == 1 {
			return w.RelationDayRuled
		}
		return w.RelationGeneric
	case model.RelationAnalogy:
		return w.RelationAnalogy
	}
	return w.RelationGeneric
}

// DistanceDecay is 1/d^1.5: strictly decreasing, DistanceDecay(1) == 1,
// so direct correspondences dominate multi-hop chains without zeroing
// them out.
func (e *Engine) DistanceDecay(hop int) float64 {
	if hop < 1 {
		hop = 1
	}
	return 1 / math.Pow(float64(hop), e.Weights.DecayExponent)
}
