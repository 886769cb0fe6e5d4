package route

import (
	"fmt"
	"math"
	"strconv"

	"wayfinder/internal/graph"
)

// WalkingSpeed is meters per minute (1.2 m/s).
const WalkingSpeed = 72.0

// EstimateMinutes converts a walking distance in meters to whole minutes.
func EstimateMinutes(distance float64) int {
	return int(math.Ceil(distance / WalkingSpeed))
}

func newResult() *Result {
	return &Result{
		Path:       []string{},
		Steps:      []Step{},
		Directions: []string{},
		Facilities: []Facility{},
	}
}

func (r *Result) add(step Step) {
	r.Steps = append(r.Steps, step)
	r.Directions = append(r.Directions, step.Direction)
	r.TotalDistance += step.Distance
}

func (r *Result) finish() *Result {
	r.EstimatedTime = EstimateMinutes(r.TotalDistance)
	return r
}

// ComposeOutdoor turns a node path over the campus into a route. An empty
// path yields an unreachable result.
func ComposeOutdoor(campus *graph.Campus, path []string) (*Result, error) {
	res := newResult()
	if len(path) == 0 {
		return res, nil
	}
	res.Reachable = true

	names := make(map[string]string, len(campus.Locations))
	for _, loc := range campus.Locations {
		names[loc.ID] = loc.Name
	}
	res.Path = append(res.Path, path...)

	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		c, ok := lightestConnection(campus.Connections, a, b)
		if !ok {
			return nil, fmt.Errorf("%s -> %s: %w", a, b, ErrConnectionNotFound)
		}

		res.add(Step{
			From:                a,
			To:                  b,
			Distance:            c.Distance,
			Direction:           outdoorDirection(names[a], names[b], c),
			ConnectionID:        c.ID,
			FacilityName:        c.FacilityName,
			FacilityDescription: c.FacilityDescription,
		})
		if c.FacilityName != "" {
			res.Facilities = append(res.Facilities, Facility{
				Name:         c.FacilityName,
				Description:  c.FacilityDescription,
				Location:     fmt.Sprintf("Between %s and %s", names[a], names[b]),
				ConnectionID: c.ID,
			})
		}
	}

	return res.finish(), nil
}

func outdoorDirection(from, to string, c graph.Connection) string {
	direction := "Go from " + from + " to " + to
	switch c.Type {
	case graph.ConnectionStairs:
		direction += " using stairs"
	case graph.ConnectionElevator:
		direction += " using elevator"
	}
	return direction + " (" + strconv.FormatFloat(c.Distance, 'f', -1, 64) + " meters)"
}

// lightestConnection picks the cheapest connection walkable from a to b, the
// first one listed when several weigh the same.
func lightestConnection(connections []graph.Connection, a, b string) (graph.Connection, bool) {
	var best graph.Connection
	found := false
	for _, c := range connections {
		if c.Joins(a, b) && (!found || c.Distance < best.Distance) {
			best, found = c, true
		}
	}
	return best, found
}

func lightestIndoorConnection(connections []graph.IndoorConnection, a, b string) (graph.IndoorConnection, bool) {
	var best graph.IndoorConnection
	found := false
	for _, c := range connections {
		if c.Joins(a, b) && (!found || c.Weight < best.Weight) {
			best, found = c, true
		}
	}
	return best, found
}

// ComposeIndoor turns per-floor segments into a route. Degenerate segments
// contribute nothing; consecutive segments on different floors are joined by a
// zero-distance transition step.
func ComposeIndoor(building *graph.Building, segments []Segment) (*Result, error) {
	res := newResult()
	if len(segments) == 0 {
		return res, nil
	}
	res.Reachable = true
	res.Segments = segments

	var prev *Segment
	for i := range segments {
		seg := &segments[i]
		if seg.Degenerate() || len(seg.Points) == 0 {
			continue
		}

		if prev != nil && prev.Floor != seg.Floor {
			last := prev.Points[len(prev.Points)-1]
			res.add(Step{
				From:      last.ID,
				To:        seg.Points[0].ID,
				Direction: fmt.Sprintf("Take %s from floor %d to floor %d", last.Label, prev.Floor, seg.Floor),
			})
		}

		floor := building.Floors[seg.Floor]
		if floor == nil {
			return nil, fmt.Errorf("floor %d: %w", seg.Floor, ErrPointNotFound)
		}
		for j := 0; j+1 < len(seg.Points); j++ {
			a, b := seg.Points[j], seg.Points[j+1]
			if a.ID == b.ID {
				continue
			}
			c, ok := lightestIndoorConnection(floor.Connections, a.ID, b.ID)
			if !ok {
				return nil, fmt.Errorf("floor %d %s -> %s: %w", seg.Floor, a.ID, b.ID, ErrConnectionNotFound)
			}
			res.add(Step{
				From:      a.ID,
				To:        b.ID,
				Distance:  c.Weight,
				Direction: fmt.Sprintf("Floor %d: Go from %s to %s", seg.Floor, a.Label, b.Label),
			})
		}

		for _, p := range seg.Points {
			res.Path = append(res.Path, p.ID)
		}
		prev = seg
	}

	return res.finish(), nil
}
