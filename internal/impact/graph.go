package impact

import (
	"errors"

	"github.com/dominikbraun/graph"
)

// edgeGraph is the per-query directed graph of resolved import edges. It is
// local to one Analyze call; nothing is persisted across queries.
type edgeGraph struct {
	g graph.Graph[string, string]
}

func newEdgeGraph() *edgeGraph {
	return &edgeGraph{
		g: graph.New(graph.StringHash, graph.Directed()),
	}
}

// addEdge records from→to, creating vertices as needed. Duplicate edges and
// vertices are tolerated.
func (eg *edgeGraph) addEdge(from, to string) {
	if err := eg.g.AddVertex(from); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return
	}
	if err := eg.g.AddVertex(to); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return
	}
	_ = eg.g.AddEdge(from, to)
}

// hasEdge reports whether from→to was recorded.
func (eg *edgeGraph) hasEdge(from, to string) bool {
	_, err := eg.g.Edge(from, to)
	return err == nil
}

// counts returns vertex and edge counts.
func (eg *edgeGraph) counts() (nodes, edges int) {
	if n, err := eg.g.Order(); err == nil {
		nodes = n
	}
	if s, err := eg.g.Size(); err == nil {
		edges = s
	}
	return nodes, edges
}
