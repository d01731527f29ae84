package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Neo4jDriver talks to the correspondence ontology store over Bolt.
type Neo4jDriver struct {
	Driver neo4j.DriverWithContext
	Log    *zap.Logger
}

func NewNeo4jDriver(uri, username, password string, log *zap.Logger) (*Neo4jDriver, error) {
	d, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := d.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Info("connected to correspondence graph store", zap.String("uri", uri))
	return &Neo4jDriver{Driver: d, Log: log}, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Neo4jDriver) VerifyConnectivity(ctx context.Context) error {
	return d.Driver.VerifyConnectivity(ctx)
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}
