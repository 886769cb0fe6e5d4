package graph

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownNode       = errors.New("unknown node")
	ErrDuplicateNode     = errors.New("duplicate node")
	ErrNonPositiveWeight = errors.New("non-positive weight")
	ErrSelfLoop          = errors.New("self loop")
)

// Arc is one traversable direction of an edge.
type Arc struct {
	To     string
	Weight float64
	Edge   Edge
}

// Adjacency is an immutable directed view of a graph. Node order and arc order
// follow the order of the inputs it was built from.
type Adjacency struct {
	order []string
	arcs  map[string][]Arc
}

func BuildAdjacency[N Node, E Edge](nodes []N, edges []E) (*Adjacency, error) {
	adj := &Adjacency{
		order: make([]string, 0, len(nodes)),
		arcs:  make(map[string][]Arc, len(nodes)),
	}

	for _, node := range nodes {
		id := node.NodeID()
		if _, exists := adj.arcs[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
		}
		adj.order = append(adj.order, id)
		adj.arcs[id] = nil
	}

	for i, edge := range edges {
		from, to := edge.Endpoints()
		if _, ok := adj.arcs[from]; !ok {
			return nil, fmt.Errorf("%w: edge %d references %q", ErrUnknownNode, i, from)
		}
		if _, ok := adj.arcs[to]; !ok {
			return nil, fmt.Errorf("%w: edge %d references %q", ErrUnknownNode, i, to)
		}
		if from == to {
			return nil, fmt.Errorf("%w: edge %d on %q", ErrSelfLoop, i, from)
		}
		weight := edge.Cost()
		if !(weight > 0) || math.IsInf(weight, 1) {
			return nil, fmt.Errorf("%w: edge %d %s->%s has weight %v", ErrNonPositiveWeight, i, from, to, weight)
		}

		adj.arcs[from] = append(adj.arcs[from], Arc{To: to, Weight: weight, Edge: edge})
		if edge.Reversible() {
			adj.arcs[to] = append(adj.arcs[to], Arc{To: from, Weight: weight, Edge: edge})
		}
	}

	return adj, nil
}

// Nodes returns node ids in construction order.
func (a *Adjacency) Nodes() []string {
	return append([]string(nil), a.order...)
}

func (a *Adjacency) Len() int {
	return len(a.order)
}

func (a *Adjacency) Has(id string) bool {
	_, ok := a.arcs[id]
	return ok
}

func (a *Adjacency) Neighbors(id string) []Arc {
	return a.arcs[id]
}
