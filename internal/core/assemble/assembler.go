package assemble

import (
	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core/common"
	"github.com/athanor/almagest/internal/core/model"
	"github.com/athanor/almagest/internal/core/subgraph"
)

// Assembler merges resolved claims into the final annotated graph document.
// Size, opacity and tier are rendering hints only; the engine owns no
// layout.
type Assembler struct {
	Weights config.Weights
}

func NewAssembler(w config.Weights) *Assembler {
	return &Assembler{Weights: w}
}

// Input is everything the assembly stage consumes.
type Input struct {
	Arena        *subgraph.Arena
	Claims       []model.Claim
	Conditions   map[model.Planet]model.PlanetaryCondition
	HourStrength model.PlanetStrength
	DayStrength  model.PlanetStrength
	Dominance    model.DominanceLayer
}

// Assemble produces the graph document. Node and edge order follows
// first-seen claim order, so identical input yields identical output.
func (a *Assembler) Assemble(evaluationID string, in Input) *model.GraphDocument {
	doc := &model.GraphDocument{
		EvaluationID: evaluationID,
		Claims:       in.Claims,
		Metadata: model.Metadata{
			Dominant:     in.Dominance,
			HourStrength: common.Round2(in.HourStrength.Value),
			DayStrength:  common.Round2(in.DayStrength.Value),
		},
	}

	type nodeState struct {
		weight float64
		layers map[model.DominanceLayer]bool
		muted  bool
		label  string
	}
	states := make(map[string]*nodeState)
	var nodeOrder []string

	touch := func(id, label string, layer model.DominanceLayer, weight float64, muted bool) {
		st, ok := states[id]
		if !ok {
			st = &nodeState{layers: make(map[model.DominanceLayer]bool), muted: true, label: label}
			states[id] = st
			nodeOrder = append(nodeOrder, id)
		}
		if weight > st.weight {
			st.weight = weight
		}
		st.layers[layer] = true
		if !muted {
			st.muted = false
		}
	}

	// Ruler planet nodes anchor each layer at the strength scale of their
	// direct rulership links. Coinciding rulers collapse into the hour
	// layer, matching the single traversal upstream; anchoring both would
	// mislabel the node as spanning two layers.
	touch(a.planetID(in.Arena, in.HourStrength.Planet), string(in.HourStrength.Planet),
		model.LayerHour, in.HourStrength.Value*a.Weights.RelationHourRuled,
		in.Dominance == model.LayerDay)
	if in.DayStrength.Planet != in.HourStrength.Planet {
		touch(a.planetID(in.Arena, in.DayStrength.Planet), string(in.DayStrength.Planet),
			model.LayerDay, in.DayStrength.Value*a.Weights.RelationDayRuled,
			in.Dominance == model.LayerHour)
	}

	for _, c := range in.Claims {
		touch(c.Target.ID, c.Target.Name, c.Layer, c.Weight, c.Muted)

		doc.Edges = append(doc.Edges, model.WeightedEdge{
			From:    c.From,
			To:      c.Target.ID,
			Weight:  common.Round2(c.Weight),
			Width:   common.Round2(a.scale(c.Weight, a.Weights.WidthMin, a.Weights.WidthMax)),
			Opacity: common.Round2(a.scale(c.Weight, a.Weights.OpacityMin, a.Weights.OpacityMax)),
		})

		// Elemental balance follows the source planet's current sign when
		// known, its native element otherwise.
		cond := in.Conditions[c.Source]
		if el, ok := model.SignElement(cond.Sign); ok {
			doc.Metadata.Elements.Add(el, c.Weight)
		} else {
			doc.Metadata.Elements.Add(model.PlanetElement(c.Source), c.Weight)
		}
	}

	for _, id := range nodeOrder {
		st := states[id]
		doc.Nodes = append(doc.Nodes, model.WeightedNode{
			ID:      id,
			Label:   st.label,
			Weight:  common.Round2(st.weight),
			Tier:    a.tier(st.weight, st.muted),
			Size:    common.Round2(a.scale(st.weight, a.Weights.SizeMin, a.Weights.SizeMax)),
			Opacity: common.Round2(a.scale(st.weight, a.Weights.OpacityMin, a.Weights.OpacityMax)),
			Layer:   nodeLayer(st.layers),
		})
	}

	doc.Metadata.Elements = model.ElementBalance{
		Fire:  common.Round2(doc.Metadata.Elements.Fire),
		Earth: common.Round2(doc.Metadata.Elements.Earth),
		Air:   common.Round2(doc.Metadata.Elements.Air),
		Water: common.Round2(doc.Metadata.Elements.Water),
	}

	return doc
}

// planetID resolves a ruler's node ID, falling back to the planet name when
// the subgraph snapshot lacks the planet entity.
func (a *Assembler) planetID(arena *subgraph.Arena, p model.Planet) string {
	if i, ok := arena.PlanetNode(p); ok {
		return arena.Entities[i].ID
	}
	return string(p)
}

// scale maps weight linearly onto [lo, hi], clamped, against the
// configured normalization ceiling.
func (a *Assembler) scale(weight, lo, hi float64) float64 {
	return common.Lerp(weight/a.Weights.WeightCeiling, lo, hi)
}

func (a *Assembler) tier(weight float64, muted bool) model.Tier {
	switch {
	case muted || weight <= a.Weights.MutedThreshold:
		return model.TierMuted
	case weight >= a.Weights.ProminentThreshold:
		return model.TierProminent
	}
	return model.TierSecondary
}

func nodeLayer(layers map[model.DominanceLayer]bool) model.DominanceLayer {
	if layers[model.LayerHour] && layers[model.LayerDay] {
		return model.LayerBalanced
	}
	if layers[model.LayerDay] {
		return model.LayerDay
	}
	return model.LayerHour
}
