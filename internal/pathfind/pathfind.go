// Package pathfind is the single shortest-path engine used by both the outdoor
// and the indoor routers.
package pathfind

import (
	"fmt"
	"math"

	"wayfinder/internal/graph"
)

// Result is a reconstructed path. An empty Path means the destination is
// unreachable from the source.
type Result struct {
	Path     []string
	Distance float64
}

func (r Result) Found() bool {
	return len(r.Path) > 0
}

// Hops is the number of points in the path, the metric used to pick a transit
// point on a floor.
func (r Result) Hops() int {
	return len(r.Path)
}

// Tree holds the tentative distances and predecessors left behind by a Dijkstra
// run. When the run stopped early at a destination, only nodes settled before
// it carry final values.
type Tree struct {
	source string
	dist   map[string]float64
	prev   map[string]string
}

// Solve runs Dijkstra from source. The minimum is found by a linear scan over
// the adjacency's node order with a strict comparison, so the first node in
// that order wins ties. A non-empty dest stops the run as soon as it is
// selected.
func Solve(adj *graph.Adjacency, source, dest string) *Tree {
	nodes := adj.Nodes()
	t := &Tree{
		source: source,
		dist:   make(map[string]float64, len(nodes)),
		prev:   make(map[string]string, len(nodes)),
	}

	unvisited := make(map[string]bool, len(nodes))
	for _, id := range nodes {
		t.dist[id] = math.Inf(1)
		unvisited[id] = true
	}
	t.dist[source] = 0

	for len(unvisited) > 0 {
		current, best, found := "", math.Inf(1), false
		for _, id := range nodes {
			if unvisited[id] && t.dist[id] < best {
				current, best, found = id, t.dist[id], true
			}
		}
		if !found {
			// every remaining node is unreachable
			break
		}
		if dest != "" && current == dest {
			break
		}
		delete(unvisited, current)

		for _, arc := range adj.Neighbors(current) {
			if !unvisited[arc.To] {
				continue
			}
			if alt := best + arc.Weight; alt < t.dist[arc.To] {
				t.dist[arc.To] = alt
				t.prev[arc.To] = current
			}
		}
	}

	return t
}

// Distance returns the tentative distance to id, +Inf when it was never reached.
func (t *Tree) Distance(id string) float64 {
	d, ok := t.dist[id]
	if !ok {
		return math.Inf(1)
	}
	return d
}

// PathTo walks predecessors back from dest. It returns an empty result when
// dest has no predecessor and is not the source.
func (t *Tree) PathTo(dest string) Result {
	if dest == t.source {
		return Result{Path: []string{dest}}
	}
	if _, ok := t.prev[dest]; !ok {
		return Result{}
	}

	var reversed []string
	for at := dest; ; {
		reversed = append(reversed, at)
		if at == t.source {
			break
		}
		at = t.prev[at]
	}

	path := make([]string, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return Result{Path: path, Distance: t.dist[dest]}
}

// ShortestPath returns the shortest path from source to dest. Unreachable
// destinations give an empty result, not an error.
func ShortestPath(adj *graph.Adjacency, source, dest string) (Result, error) {
	if !adj.Has(source) {
		return Result{}, fmt.Errorf("source %q: %w", source, graph.ErrUnknownNode)
	}
	if !adj.Has(dest) {
		return Result{}, fmt.Errorf("destination %q: %w", dest, graph.ErrUnknownNode)
	}
	return Solve(adj, source, dest).PathTo(dest), nil
}
