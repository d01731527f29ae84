package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core/assemble"
	"github.com/athanor/almagest/internal/core/condition"
	"github.com/athanor/almagest/internal/core/conflict"
	"github.com/athanor/almagest/internal/core/model"
	"github.com/athanor/almagest/internal/core/strength"
	"github.com/athanor/almagest/internal/core/subgraph"
	"github.com/athanor/almagest/internal/core/weighting"
	"github.com/athanor/almagest/internal/driver"
)

// ErrGraphQuery wraps failures of the external correspondence store. It is
// the only hard failure the engine surfaces: a missing ephemeris field only
// degrades one planet, but without correspondence edges there is nothing to
// weight. Retry policy belongs to the caller.
var ErrGraphQuery = errors.New("correspondence graph query failed")

// ErrInvalidRequest covers requests naming unknown ruling planets.
var ErrInvalidRequest = errors.New("invalid evaluation request")

// Engine is the full weighting pipeline. It is stateless per evaluation:
// one call takes a location+instant snapshot, issues a single graph-store
// query, and returns one assembled weighted graph.
type Engine struct {
	Driver       driver.GraphDriver
	Weights      config.Weights
	Log          *zap.Logger
	QueryTimeout time.Duration

	Conditions *condition.Resolver
	Strengths  *strength.Calculator
	Weighting  *weighting.Engine
	Conflicts  *conflict.Resolver
	Assembler  *assemble.Assembler
}

func NewEngine(d driver.GraphDriver, cfg *config.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := time.Duration(cfg.Store.QueryTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	w := cfg.Weights
	return &Engine{
		Driver:       d,
		Weights:      w,
		Log:          log,
		QueryTimeout: timeout,
		Conditions:   condition.NewResolver(w),
		Strengths:    strength.NewCalculator(w, log),
		Weighting:    weighting.NewEngine(w, log),
		Conflicts:    conflict.NewResolver(w),
		Assembler:    assemble.NewAssembler(w),
	}
}

// Evaluate runs the full pipeline: fetch the correspondence subgraph for
// the two rulers, resolve per-planet conditions and strengths, decide
// dominance, weight every reachable edge, resolve conflicts, and assemble
// the annotated document. Cancelling ctx aborts the in-flight store query;
// nothing is mutated anywhere, so cancellation has no side effects.
func (e *Engine) Evaluate(ctx context.Context, req model.EvaluationRequest) (*model.GraphDocument, error) {
	if !req.HourRuler.Valid() || !req.DayRuler.Valid() {
		return nil, fmt.Errorf("%w: hour ruler %q, day ruler %q", ErrInvalidRequest, req.HourRuler, req.DayRuler)
	}

	sg, err := e.fetchSubgraph(ctx, req.HourRuler, req.DayRuler)
	if err != nil {
		return nil, err
	}

	return e.EvaluateSubgraph(req, sg)
}

// EvaluateSubgraph runs the pipeline over an already-fetched subgraph
// snapshot. It is pure: identical request and subgraph yield a byte-identical
// document, evaluation ID included.
func (e *Engine) EvaluateSubgraph(req model.EvaluationRequest, sg model.Subgraph) (*model.GraphDocument, error) {
	if !req.HourRuler.Valid() || !req.DayRuler.Valid() {
		return nil, fmt.Errorf("%w: hour ruler %q, day ruler %q", ErrInvalidRequest, req.HourRuler, req.DayRuler)
	}

	conditions := make(map[model.Planet]model.PlanetaryCondition, len(model.ClassicalPlanets))
	strengths := make(map[model.Planet]model.PlanetStrength, len(model.ClassicalPlanets))
	for _, p := range model.ClassicalPlanets {
		snap := req.Planets[p] // zero snapshot degrades to neutral defaults
		cond := e.Conditions.Resolve(p, snap, req.HourRuler, req.DayRuler)
		if cond.Degraded {
			e.Log.Debug("degraded planetary condition, neutral defaults substituted",
				zap.String("planet", string(p)))
		}
		conditions[p] = cond
		strengths[p] = e.Strengths.Strength(cond)
	}

	hourStrength := strengths[req.HourRuler]
	dayStrength := strengths[req.DayRuler]
	dominance := e.Strengths.Dominance(hourStrength, dayStrength)

	arena := subgraph.Build(sg)
	claims := e.Weighting.Weigh(weighting.Input{
		Arena:      arena,
		HourRuler:  req.HourRuler,
		DayRuler:   req.DayRuler,
		Conditions: conditions,
		Strengths:  strengths,
		Dominance:  dominance,
	})
	claims = e.Conflicts.Resolve(claims, conditions)

	doc := e.Assembler.Assemble(evaluationID(req), assemble.Input{
		Arena:        arena,
		Claims:       claims,
		Conditions:   conditions,
		HourStrength: hourStrength,
		DayStrength:  dayStrength,
		Dominance:    dominance,
	})
	return doc, nil
}

// evaluationNamespace scopes the name-based evaluation IDs.
var evaluationNamespace = uuid.MustParse("6c3a2f9e-1d47-45b0-8a6d-5a9e02c4f7b1")

// evaluationID is a UUIDv5 over the serialized request, so re-running the
// pipeline with identical input yields a byte-identical document. JSON map
// keys marshal in sorted order, which keeps the serialization stable.
func evaluationID(req model.EvaluationRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		// EvaluationRequest contains no unmarshalable types.
		payload = []byte(string(req.HourRuler) + "/" + string(req.DayRuler) + "/" + req.Timestamp.String())
	}
	return uuid.NewSHA1(evaluationNamespace, payload).String()
}

// fetchSubgraph issues the one graph-store query of an evaluation, bounded
// by the configured timeout.
func (e *Engine) fetchSubgraph(ctx context.Context, hourRuler, dayRuler model.Planet) (model.Subgraph, error) {
	ctx, cancel := context.WithTimeout(ctx, e.QueryTimeout)
	defer cancel()

	planets := []string{string(hourRuler)}
	if dayRuler != hourRuler {
		planets = append(planets, string(dayRuler))
	}

	result, err := e.Driver.ExecuteQuery(ctx, driver.FetchCorrespondenceSubgraphQuery, map[string]interface{}{
		"planets": planets,
	})
	if err != nil {
		return model.Subgraph{}, fmt.Errorf("%w: %v", ErrGraphQuery, err)
	}

	sg, err := parseSubgraphRecords(result.Records)
	if err != nil {
		return model.Subgraph{}, fmt.Errorf("%w: %v", ErrGraphQuery, err)
	}
	return sg, nil
}

// parseSubgraphRecords converts store rows into the subgraph snapshot,
// deduplicating entities by URI.
func parseSubgraphRecords(records []*neo4j.Record) (model.Subgraph, error) {
	var sg model.Subgraph
	seen := make(map[string]bool)

	addEntity := func(uri, name interface{}, labels interface{}) error {
		id, ok := uri.(string)
		if !ok || id == "" {
			return fmt.Errorf("record missing node uri")
		}
		if seen[id] {
			return nil
		}
		seen[id] = true

		label, _ := name.(string)
		entity := model.CorrespondenceEntity{
			ID:    id,
			Name:  label,
			Class: classifyLabels(labels),
		}
		if entity.Class == model.ClassPlanet {
			entity.Planet = model.Planet(label)
		}
		sg.Entities = append(sg.Entities, entity)
		return nil
	}

	for _, rec := range records {
		fromURI, _ := rec.Get("from_uri")
		fromName, _ := rec.Get("from_name")
		fromLabels, _ := rec.Get("from_labels")
		toURI, _ := rec.Get("to_uri")
		toName, _ := rec.Get("to_name")
		toLabels, _ := rec.Get("to_labels")
		relation, _ := rec.Get("relation")

		if err := addEntity(fromURI, fromName, fromLabels); err != nil {
			return model.Subgraph{}, err
		}
		if err := addEntity(toURI, toName, toLabels); err != nil {
			return model.Subgraph{}, err
		}

		rel, ok := relation.(string)
		if !ok || rel == "" {
			return model.Subgraph{}, fmt.Errorf("record missing relationship type")
		}
		sg.Links = append(sg.Links, model.Link{
			From:     fromURI.(string),
			To:       toURI.(string),
			Relation: model.RelationType(rel),
		})
	}
	return sg, nil
}

// classifyLabels folds store node labels into the closed entity-class set.
// Unknown labels land in the material class, the neutral modifier.
func classifyLabels(raw interface{}) model.EntityClass {
	labels, ok := raw.([]interface{})
	if !ok {
		return model.ClassMaterial
	}
	for _, l := range labels {
		switch l {
		case "PlanetEntity", "Planet":
			return model.ClassPlanet
		case "Angel", "Demon", "Spirit", "Intelligence":
			return model.ClassSpiritual
		case "Ritual", "Action", "Operation", "Working":
			return model.ClassAction
		case "Weekday", "Hour", "PlanetaryHour":
			return model.ClassTemporal
		}
	}
	return model.ClassMaterial
}
