// Command scenario replays the canonical weighting scenarios against an
// in-memory fixture subgraph and prints the assembled documents. It needs
// no graph store; it exists to eyeball how condition changes move the
// weights.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core"
	"github.com/athanor/almagest/internal/core/model"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	engine := core.NewEngine(nil, config.Default(), logger)
	sg := fixtureSubgraph()

	scenarios := []struct {
		name string
		req  model.EvaluationRequest
	}{
		{"hour dominance: Mars rules hour and day, domicile, high in sky", marsDominance()},
		{"day override: Saturn hour ruler combust and fallen, Venus day ruler exalted", dayOverride()},
		{"balanced: Jupiter hour, Mars day, both strong", balanced()},
	}

	for _, s := range scenarios {
		fmt.Printf("=== %s ===\n", s.name)
		doc, err := engine.EvaluateSubgraph(s.req, sg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scenario failed: %v\n", err)
			os.Exit(1)
		}
		out, _ := json.MarshalIndent(doc, "", "  ")
		fmt.Println(string(out))
	}

	moonPhaseSweep(engine)
}

// moonPhaseSweep shows how the phase modifier moves the Moon's strength
// through one lunation.
func moonPhaseSweep(engine *core.Engine) {
	fmt.Println("=== moon phase sweep: Moon hour ruler in Cancer, altitude 40 ===")
	for _, phase := range []float64{10, 95, 180, 270} {
		snap := model.PositionSnapshot{
			Altitude:      f(40),
			SunSeparation: f(100),
			DailyMotion:   f(13.2),
			ZodiacSign:    model.Cancer,
			PhaseAngle:    f(phase),
		}
		cond := engine.Conditions.Resolve(model.Moon, snap, model.Moon, model.Saturn)
		s := engine.Strengths.Strength(cond)
		fmt.Printf("phase %6.1f° -> strength %.2f\n", phase, s.Value)
	}
}

func fixtureSubgraph() model.Subgraph {
	return model.Subgraph{
		Entities: []model.CorrespondenceEntity{
			{ID: "planet:mars", Name: "Mars", Class: model.ClassPlanet, Planet: model.Mars},
			{ID: "planet:saturn", Name: "Saturn", Class: model.ClassPlanet, Planet: model.Saturn},
			{ID: "planet:venus", Name: "Venus", Class: model.ClassPlanet, Planet: model.Venus},
			{ID: "planet:jupiter", Name: "Jupiter", Class: model.ClassPlanet, Planet: model.Jupiter},

			{ID: "metal:iron", Name: "Iron", Class: model.ClassMaterial},
			{ID: "color:red", Name: "Red", Class: model.ClassMaterial},
			{ID: "angel:samael", Name: "Samael", Class: model.ClassSpiritual},
			{ID: "day:tuesday", Name: "Tuesday", Class: model.ClassTemporal},
			{ID: "stone:garnet", Name: "Garnet", Class: model.ClassMaterial},

			{ID: "metal:lead", Name: "Lead", Class: model.ClassMaterial},
			{ID: "angel:cassiel", Name: "Cassiel", Class: model.ClassSpiritual},
			{ID: "day:saturday", Name: "Saturday", Class: model.ClassTemporal},

			{ID: "metal:copper", Name: "Copper", Class: model.ClassMaterial},
			{ID: "angel:anael", Name: "Anael", Class: model.ClassSpiritual},
			{ID: "day:friday", Name: "Friday", Class: model.ClassTemporal},

			{ID: "metal:tin", Name: "Tin", Class: model.ClassMaterial},
			{ID: "ritual:banishing", Name: "Banishing", Class: model.ClassAction},
		},
		Links: []model.Link{
			{From: "angel:samael", To: "planet:mars", Relation: model.RelationHourRuledBy},
			{From: "day:tuesday", To: "planet:mars", Relation: model.RelationDayRuledBy},
			{From: "planet:mars", To: "metal:iron", Relation: model.RelationGeneric},
			{From: "planet:mars", To: "color:red", Relation: model.RelationGeneric},
			{From: "metal:iron", To: "stone:garnet", Relation: model.RelationAnalogy},

			{From: "angel:cassiel", To: "planet:saturn", Relation: model.RelationHourRuledBy},
			{From: "day:saturday", To: "planet:saturn", Relation: model.RelationDayRuledBy},
			{From: "planet:saturn", To: "metal:lead", Relation: model.RelationGeneric},
			{From: "planet:saturn", To: "ritual:banishing", Relation: model.RelationGeneric},

			{From: "angel:anael", To: "planet:venus", Relation: model.RelationHourRuledBy},
			{From: "day:friday", To: "planet:venus", Relation: model.RelationDayRuledBy},
			{From: "planet:venus", To: "metal:copper", Relation: model.RelationGeneric},

			{From: "planet:jupiter", To: "metal:tin", Relation: model.RelationGeneric},

			// Cross-claims so conflict resolution has work to do.
			{From: "planet:saturn", To: "color:red", Relation: model.RelationAnalogy},
			{From: "planet:venus", To: "stone:garnet", Relation: model.RelationAnalogy},
		},
	}
}

func marsDominance() model.EvaluationRequest {
	return model.EvaluationRequest{
		HourRuler: model.Mars,
		DayRuler:  model.Mars,
		Timestamp: time.Date(2025, 3, 4, 14, 0, 0, 0, time.UTC),
		Planets: map[model.Planet]model.PositionSnapshot{
			model.Mars: {Altitude: f(55), SunSeparation: f(120), DailyMotion: f(0.6), ZodiacSign: model.Aries},
		},
	}
}

func dayOverride() model.EvaluationRequest {
	return model.EvaluationRequest{
		HourRuler: model.Saturn,
		DayRuler:  model.Venus,
		Timestamp: time.Date(2025, 4, 18, 23, 0, 0, 0, time.UTC),
		Planets: map[model.Planet]model.PositionSnapshot{
			model.Saturn: {Altitude: f(-12), SunSeparation: f(3), DailyMotion: f(0.1), ZodiacSign: model.Aries},
			model.Venus:  {Altitude: f(48), SunSeparation: f(40), DailyMotion: f(1.2), ZodiacSign: model.Pisces},
		},
	}
}

func balanced() model.EvaluationRequest {
	return model.EvaluationRequest{
		HourRuler: model.Jupiter,
		DayRuler:  model.Mars,
		Timestamp: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC),
		Planets: map[model.Planet]model.PositionSnapshot{
			model.Jupiter: {Altitude: f(35), SunSeparation: f(90), DailyMotion: f(0.2), ZodiacSign: model.Sagittarius},
			model.Mars:    {Altitude: f(52), SunSeparation: f(110), DailyMotion: f(0.7), ZodiacSign: model.Capricorn},
		},
	}
}

func f(v float64) *float64 { return &v }
