package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver is the boundary to the external correspondence graph store.
// The engine issues exactly one query per evaluation through it.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}
