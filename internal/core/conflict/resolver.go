package conflict

import (
	"sort"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core/model"
)

// Resolver ranks competing claims on the same target entity and marks
// exactly one per group as the primary influence. Resolution is fully
// deterministic: confidences are computed for the whole group before any
// selection, and ties fall to the first-seen claim.
type Resolver struct {
	Weights config.Weights
}

func NewResolver(w config.Weights) *Resolver {
	return &Resolver{Weights: w}
}

// Resolve annotates claims in place-order: the returned slice preserves
// input order, with Confidence, IsPrimaryInfluence and StrengthRank filled
// in. conditions supplies the source-planet state the conflict penalties
// depend on.
func (r *Resolver) Resolve(claims []model.Claim, conditions map[model.Planet]model.PlanetaryCondition) []model.Claim {
	// Group claim indices by target, preserving first-seen order.
	groups := make(map[string][]int)
	var order []string
	for i, c := range claims {
		id := c.Target.ID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], i)
	}

	for _, id := range order {
		r.resolveGroup(claims, groups[id], conditions)
	}
	return claims
}

func (r *Resolver) resolveGroup(claims []model.Claim, group []int, conditions map[model.Planet]model.PlanetaryCondition) {
	w := r.Weights

	if len(group) == 1 {
		c := &claims[group[0]]
		c.Confidence = floor(c.Weight, w.ConfidenceFloor)
		c.IsPrimaryInfluence = true
		c.StrengthRank = 1
		return
	}

	// An hour-layer claim from another planet preempts day claims on the
	// same target (temporal primacy).
	hourClaimants := make(map[model.Planet]bool)
	for _, i := range group {
		if claims[i].Layer == model.LayerHour {
			hourClaimants[claims[i].Source] = true
		}
	}
	contestedByOtherHour := func(c model.Claim) bool {
		for p := range hourClaimants {
			if p != c.Source {
				return true
			}
		}
		return false
	}

	// Compute every confidence before selecting the maximum. Selecting
	// while the list is still being built would make the winner depend on
	// input order even for non-ties.
	for _, i := range group {
		c := &claims[i]
		conf := c.Weight
		cond := conditions[c.Source]

		if c.Layer == model.LayerDay && contestedByOtherHour(*c) {
			conf -= w.ConflictDayVsHourPenalty
		}
		if cond.Combustion == model.CombustionCombust {
			conf -= w.ConflictCombustPenalty
		}
		if cond.Motion == model.MotionRetrograde && c.Target.Class.TimeSensitive() {
			conf -= w.ConflictRetrogradePenalty
		}
		if cond.Altitude < 0 && c.Target.Class.ActionSensitive() {
			conf -= w.ConflictBelowHorizonPenalty
		}

		c.Confidence = floor(conf, w.ConfidenceFloor)
	}

	// Primary: maximum confidence, first-seen wins ties (strict >).
	best := group[0]
	for _, i := range group[1:] {
		if claims[i].Confidence > claims[best].Confidence {
			best = i
		}
	}
	for _, i := range group {
		claims[i].IsPrimaryInfluence = i == best
	}

	// Rank by descending confidence; stable sort keeps first-seen order
	// among equals.
	ranked := make([]int, len(group))
	copy(ranked, group)
	sort.SliceStable(ranked, func(a, b int) bool {
		return claims[ranked[a]].Confidence > claims[ranked[b]].Confidence
	})
	for rank, i := range ranked {
		claims[i].StrengthRank = rank + 1
	}
}

func floor(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
