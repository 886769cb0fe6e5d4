// Package route turns shortest paths over campus and building graphs into
// walking directions.
package route

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"wayfinder/internal/graph"
	"wayfinder/internal/pathfind"
)

// Target is a route destination: either a location id or a room number that
// is resolved to the location hosting it.
type Target struct {
	LocationID string `json:"locationId,omitempty" yaml:"location_id,omitempty"`
	Room       string `json:"room,omitempty" yaml:"room,omitempty"`
}

func ToLocation(id string) Target { return Target{LocationID: id} }
func ToRoom(number string) Target { return Target{Room: number} }
func (t Target) IsRoom() bool     { return t.Room != "" }

func (t Target) String() string {
	if t.IsRoom() {
		return "room " + t.Room
	}
	return t.LocationID
}

// Resolve returns the id of the location the target points at.
func (t Target) Resolve(campus *graph.Campus) (string, error) {
	if t.IsRoom() {
		loc, ok := campus.LocationByRoom(t.Room)
		if !ok {
			return "", fmt.Errorf("room %q: %w", t.Room, ErrRoomNotFound)
		}
		return loc.ID, nil
	}
	if _, ok := campus.Location(t.LocationID); !ok {
		return "", fmt.Errorf("destination %q: %w", t.LocationID, ErrUnknownLocation)
	}
	return t.LocationID, nil
}

// RouteOutdoor computes the walking route from startID to target over the
// campus snapshot. An unreachable target is a result, not an error.
func RouteOutdoor(campus *graph.Campus, startID string, target Target) (*Result, error) {
	endID, err := target.Resolve(campus)
	if err != nil {
		return nil, err
	}
	if _, ok := campus.Location(startID); !ok {
		return nil, fmt.Errorf("start %q: %w", startID, ErrUnknownLocation)
	}

	adj, err := campus.Adjacency()
	if err != nil {
		return nil, fmt.Errorf("building campus graph: %w", err)
	}

	found, err := pathfind.ShortestPath(adj, startID, endID)
	if err != nil {
		return nil, err
	}
	return ComposeOutdoor(campus, found.Path)
}

// Request is one entry of a batch.
type Request struct {
	Start  string `json:"start" yaml:"start"`
	Target Target `json:"target" yaml:"target"`
}

// Outcome pairs a batch request with its route or error.
type Outcome struct {
	Request Request `json:"request"`
	Result  *Result `json:"result,omitempty"`
	Err     error   `json:"-"`
}

// RouteMany routes independent requests concurrently over one shared,
// read-only snapshot. Outcomes keep request order; a failing request does not
// stop the others. A limit below 1 means no limit.
func RouteMany(ctx context.Context, campus *graph.Campus, requests []Request, limit int) ([]Outcome, error) {
	outcomes := make([]Outcome, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, req := range requests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := RouteOutdoor(campus, req.Start, req.Target)
			outcomes[i] = Outcome{Request: req, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
