package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) VerifyConnectivity(ctx context.Context) error {
	return m.Err
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

// subgraphRecord builds one store row in the shape the fetch query returns.
func subgraphRecord(fromURI, fromName string, fromLabels []interface{}, relation, toURI, toName string, toLabels []interface{}) *neo4j.Record {
	return &neo4j.Record{
		Keys: []string{"from_uri", "from_name", "from_labels", "relation", "to_uri", "to_name", "to_labels"},
		Values: []interface{}{
			fromURI, fromName, fromLabels, relation, toURI, toName, toLabels,
		},
	}
}
