//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core"
	"github.com/athanor/almagest/internal/core/model"
	"github.com/athanor/almagest/internal/driver"
)

// seedQuery writes a minimal Mars corner of the correspondence ontology.
// Everything carries the AlmagestTest label so teardown is surgical.
const seedQuery = `
	MERGE (mars:PlanetEntity:AlmagestTest {uri: "test:planet:mars", hasName: "Mars"})
	MERGE (iron:Metal:AlmagestTest {uri: "test:metal:iron", hasName: "Iron"})
	MERGE (samael:Angel:AlmagestTest {uri: "test:angel:samael", hasName: "Samael"})
	MERGE (tuesday:Weekday:AlmagestTest {uri: "test:day:tuesday", hasName: "Tuesday"})
	MERGE (mars)-[:CORRESPONDS_TO]->(iron)
	MERGE (samael)-[:HOUR_RULED_BY]->(mars)
	MERGE (tuesday)-[:DAY_RULED_BY]->(mars)
`

const teardownQuery = `MATCH (n:AlmagestTest) DETACH DELETE n`

func f(v float64) *float64 { return &v }

func TestEvaluateAgainstLiveStore(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set, skipping live store test")
	}

	cfg, err := config.Load("../../config/config.toml")
	if err != nil {
		t.Logf("config not found, using defaults: %v", err)
		cfg = config.Default()
	}
	cfg.Store.URI = uri
	if user := os.Getenv("NEO4J_USER"); user != "" {
		cfg.Store.User = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		cfg.Store.Password = pass
	}

	log, _ := zap.NewDevelopment()
	d, err := driver.NewNeo4jDriver(cfg.Store.URI, cfg.Store.User, cfg.Store.Password, log)
	require.NoError(t, err)
	defer d.Close(context.Background())

	ctx := context.Background()
	_, err = d.ExecuteQuery(ctx, seedQuery, nil)
	require.NoError(t, err)
	defer func() {
		_, err := d.ExecuteQuery(context.Background(), teardownQuery, nil)
		require.NoError(t, err)
	}()

	engine := core.NewEngine(d, cfg, log)
	doc, err := engine.Evaluate(ctx, model.EvaluationRequest{
		HourRuler: model.Mars,
		DayRuler:  model.Mars,
		Planets: map[model.Planet]model.PositionSnapshot{
			model.Mars: {
				Altitude:      f(55),
				SunSeparation: f(120),
				DailyMotion:   f(0.6),
				ZodiacSign:    model.Aries,
			},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, doc.EvaluationID)
	require.Equal(t, model.LayerHour, doc.Metadata.Dominant)

	byID := make(map[string]model.WeightedNode)
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}
	require.Contains(t, byID, "test:planet:mars")
	require.Contains(t, byID, "test:metal:iron")
	require.Contains(t, byID, "test:angel:samael")

	// The direct hour rulership link carries the heaviest claim.
	var samael model.Claim
	for _, c := range doc.Claims {
		if c.Target.ID == "test:angel:samael" {
			samael = c
		}
	}
	require.Equal(t, model.RelationHourRuledBy, samael.Relation)
	require.True(t, samael.IsPrimaryInfluence)
	for _, c := range doc.Claims {
		require.LessOrEqual(t, c.Weight, samael.Weight)
	}
}

func TestConnectivityProbe(t *testing.T) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set, skipping live store test")
	}

	log, _ := zap.NewDevelopment()
	d, err := driver.NewNeo4jDriver(uri, os.Getenv("NEO4J_USER"), os.Getenv("NEO4J_PASSWORD"), log)
	require.NoError(t, err)
	defer d.Close(context.Background())

	require.NoError(t, d.VerifyConnectivity(context.Background()))

	result, err := d.ExecuteQuery(context.Background(), driver.PingQuery, nil)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
}
