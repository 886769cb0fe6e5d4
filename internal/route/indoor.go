package route

import (
	"fmt"

	"wayfinder/internal/graph"
	"wayfinder/internal/pathfind"
)

// EntranceRoom addresses the entrance of a floor instead of a room.
const EntranceRoom = "entrance"

// TransitSelection is the metric used to choose the stairs or elevator on the
// start floor.
type TransitSelection string

const (
	// SelectByHops picks the transit point reached through the fewest points.
	SelectByHops TransitSelection = "hops"
	// SelectByDistance picks the transit point with the shortest walk.
	SelectByDistance TransitSelection = "distance"
)

// MissingConnectorMode decides what happens when the chosen stairwell or
// elevator does not continue to a floor the route needs.
type MissingConnectorMode string

const (
	ConnectorFail    MissingConnectorMode = "fail"
	ConnectorPartial MissingConnectorMode = "partial"
)

type IndoorOptions struct {
	TransitSelection TransitSelection
	MissingConnector MissingConnectorMode
}

// DefaultIndoorOptions selects by hops and fails on missing connectors.
func DefaultIndoorOptions() IndoorOptions {
	return IndoorOptions{TransitSelection: SelectByHops, MissingConnector: ConnectorFail}
}

type IndoorRequest struct {
	StartRoom  string `json:"startRoom"`
	StartFloor int    `json:"startFloor"`
	EndRoom    string `json:"endRoom"`
	EndFloor   int    `json:"endFloor"`
}

// Plan is the per-floor breakdown of an indoor route. No segments means the
// end point is unreachable. Partial is set when a missing connector was
// skipped.
type Plan struct {
	Segments []Segment
	Partial  bool
}

// FindPointByRoom resolves a room number, or EntranceRoom, on one floor.
func FindPointByRoom(plan graph.FloorPlan, room string, floor int) (graph.Point, error) {
	f := plan[floor]
	if f == nil {
		return graph.Point{}, fmt.Errorf("floor %d: %w", floor, ErrPointNotFound)
	}
	for _, p := range f.Points {
		if room == EntranceRoom && p.Type == graph.PointEntrance {
			return p, nil
		}
		if room != EntranceRoom && p.Type == graph.PointRoom && p.RoomNumber == room {
			return p, nil
		}
	}
	return graph.Point{}, fmt.Errorf("room %q on floor %d: %w", room, floor, ErrPointNotFound)
}

// PlanIndoor routes between two rooms of a building. Across floors it walks to
// the stairs or elevator of the start floor, rides the same shaft through every
// floor in between and walks from its counterpart on the end floor.
func PlanIndoor(building *graph.Building, req IndoorRequest, opts IndoorOptions) (Plan, error) {
	start, err := FindPointByRoom(building.Floors, req.StartRoom, req.StartFloor)
	if err != nil {
		return Plan{}, err
	}
	end, err := FindPointByRoom(building.Floors, req.EndRoom, req.EndFloor)
	if err != nil {
		return Plan{}, err
	}

	if req.StartFloor == req.EndFloor {
		seg, ok, err := floorSegment(building, req.StartFloor, start.ID, end.ID)
		if err != nil || !ok {
			return Plan{}, err
		}
		return Plan{Segments: []Segment{seg}}, nil
	}

	transit, first, err := pickTransit(building, req.StartFloor, start.ID, opts.TransitSelection)
	if err != nil {
		return Plan{}, err
	}
	if first.Points == nil {
		return Plan{}, nil
	}

	plan := Plan{Segments: []Segment{first}}
	missing := func(floor int) error {
		return &ConnectorError{Floor: floor, Type: transit.Type, Label: transit.Label, Partial: plan.Segments}
	}

	step := 1
	if req.EndFloor < req.StartFloor {
		step = -1
	}
	for floor := req.StartFloor + step; floor != req.EndFloor; floor += step {
		p, ok := findShaft(building.Floors[floor], transit)
		if !ok {
			if opts.MissingConnector == ConnectorPartial {
				plan.Partial = true
				continue
			}
			return Plan{}, missing(floor)
		}
		plan.Segments = append(plan.Segments, Segment{Floor: floor, Points: []graph.Point{p, p}})
	}

	arrival, ok := findShaft(building.Floors[req.EndFloor], transit)
	if !ok {
		if opts.MissingConnector == ConnectorPartial {
			plan.Partial = true
			return plan, nil
		}
		return Plan{}, missing(req.EndFloor)
	}

	last, ok, err := floorSegment(building, req.EndFloor, arrival.ID, end.ID)
	if err != nil || !ok {
		return Plan{}, err
	}
	plan.Segments = append(plan.Segments, last)
	return plan, nil
}

// RouteIndoor plans and composes an indoor route.
func RouteIndoor(building *graph.Building, req IndoorRequest, opts IndoorOptions) (*Result, error) {
	plan, err := PlanIndoor(building, req, opts)
	if err != nil {
		return nil, err
	}
	res, err := ComposeIndoor(building, plan.Segments)
	if err != nil {
		return nil, err
	}
	res.Partial = plan.Partial
	return res, nil
}

// pickTransit chooses among the start floor's stairs and elevators. Ties keep
// the first transit point in floor order. A zero segment means none of them
// is reachable.
func pickTransit(building *graph.Building, floorNum int, from string, by TransitSelection) (graph.Point, Segment, error) {
	floor := building.Floors[floorNum]
	adj, err := floor.Adjacency()
	if err != nil {
		return graph.Point{}, Segment{}, fmt.Errorf("floor %d: %w", floorNum, err)
	}

	var (
		best     graph.Point
		bestPath pathfind.Result
		seen     bool
		hasAny   bool
	)
	for _, p := range floor.Points {
		if !p.IsTransit() {
			continue
		}
		hasAny = true

		found, err := pathfind.ShortestPath(adj, from, p.ID)
		if err != nil {
			return graph.Point{}, Segment{}, fmt.Errorf("floor %d: %w", floorNum, err)
		}
		if !found.Found() {
			continue
		}
		if !seen || better(found, bestPath, by) {
			best, bestPath, seen = p, found, true
		}
	}

	if !hasAny {
		return graph.Point{}, Segment{}, &ConnectorError{Floor: floorNum}
	}
	if !seen {
		return graph.Point{}, Segment{}, nil
	}
	return best, toSegment(floorNum, floor, bestPath), nil
}

func better(candidate, current pathfind.Result, by TransitSelection) bool {
	if by == SelectByDistance {
		return candidate.Distance < current.Distance
	}
	return candidate.Hops() < current.Hops()
}

func findShaft(floor *graph.Floor, transit graph.Point) (graph.Point, bool) {
	if floor == nil {
		return graph.Point{}, false
	}
	for _, p := range floor.Points {
		if transit.SameShaft(p) {
			return p, true
		}
	}
	return graph.Point{}, false
}

func floorSegment(building *graph.Building, floorNum int, from, to string) (Segment, bool, error) {
	floor := building.Floors[floorNum]
	adj, err := floor.Adjacency()
	if err != nil {
		return Segment{}, false, fmt.Errorf("floor %d: %w", floorNum, err)
	}
	found, err := pathfind.ShortestPath(adj, from, to)
	if err != nil {
		return Segment{}, false, fmt.Errorf("floor %d: %w", floorNum, err)
	}
	if !found.Found() {
		return Segment{}, false, nil
	}
	return toSegment(floorNum, floor, found), true, nil
}

func toSegment(floorNum int, floor *graph.Floor, found pathfind.Result) Segment {
	points := make([]graph.Point, 0, len(found.Path))
	for _, id := range found.Path {
		p, _ := floor.Point(id)
		points = append(points, p)
	}
	return Segment{Floor: floorNum, Points: points, Distance: found.Distance}
}
