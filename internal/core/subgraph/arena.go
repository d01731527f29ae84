package subgraph

import "github.com/athanor/almagest/internal/core/model"

type neighbor struct {
	node int
	link int
}

// Arena is an index-based snapshot of the correspondence subgraph fetched
// for one evaluation. Entities and links are arena-allocated slices; the
// adjacency list treats every link as undirected and unweighted, which is
// all reachability needs.
type Arena struct {
	Entities []model.CorrespondenceEntity
	Links    []model.Link

	index map[string]int
	adj   [][]neighbor
}

// Build constructs the arena. Links whose endpoints are not in the entity
// set are dropped rather than erroring: the store occasionally returns
// relationships into nodes beyond the hop bound.
func Build(sg model.Subgraph) *Arena {
	a := &Arena{
		Entities: sg.Entities,
		index:    make(map[string]int, len(sg.Entities)),
		adj:      make([][]neighbor, len(sg.Entities)),
	}

	for i, e := range sg.Entities {
		a.index[e.ID] = i
	}

	for _, l := range sg.Links {
		from, ok := a.index[l.From]
		if !ok {
			continue
		}
		to, ok := a.index[l.To]
		if !ok {
			continue
		}
		li := len(a.Links)
		a.Links = append(a.Links, l)
		a.adj[from] = append(a.adj[from], neighbor{node: to, link: li})
		a.adj[to] = append(a.adj[to], neighbor{node: from, link: li})
	}

	return a
}

// IndexOf returns the arena index of an entity ID.
func (a *Arena) IndexOf(id string) (int, bool) {
	i, ok := a.index[id]
	return i, ok
}

// PlanetNode finds the planet-class entity for a classical planet.
func (a *Arena) PlanetNode(p model.Planet) (int, bool) {
	for i, e := range a.Entities {
		if e.Class == model.ClassPlanet && e.Planet == p {
			return i, true
		}
	}
	return -1, false
}

// Distances runs a breadth-first search from root and returns the shortest
// hop distance to every entity, capped at maxHops. Unreachable entities
// (or those beyond the cap) are -1. Traversal order follows insertion
// order, so results are deterministic for identical input.
func (a *Arena) Distances(root, maxHops int) []int {
	dist := make([]int, len(a.Entities))
	for i := range dist {
		dist[i] = -1
	}
	if root < 0 || root >= len(a.Entities) {
		return dist
	}

	dist[root] = 0
	queue := []int{root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if dist[u] >= maxHops {
			continue
		}
		for _, n := range a.adj[u] {
			if dist[n.node] == -1 {
				dist[n.node] = dist[u] + 1
				queue = append(queue, n.node)
			}
		}
	}
	return dist
}
