package driver

const (
	// FetchCorrespondenceSubgraphQuery returns every distinct relationship
	// reachable within three hops of the named ruling planets. The hop bound
	// is inlined because Cypher does not parameterize variable-length
	// patterns; it must match weights.max_hops.
	FetchCorrespondenceSubgraphQuery = `
		MATCH (p:PlanetEntity)
		WHERE p.hasName IN $planets
		MATCH path = (p)-[*1..3]-(target)
		UNWIND relationships(path) AS r
		WITH DISTINCT r, startNode(r) AS a, endNode(r) AS b
		RETURN a.uri AS from_uri, a.hasName AS from_name, labels(a) AS from_labels,
		       type(r) AS relation,
		       b.uri AS to_uri, b.hasName AS to_name, labels(b) AS to_labels
	`

	// PingQuery is used by the health endpoint.
	PingQuery = `RETURN 1 AS ok`
)
