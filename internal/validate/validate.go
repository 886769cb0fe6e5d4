package validate

import (
	"context"
	"fmt"

	"wayfinder/internal/config"
	"wayfinder/internal/graph"
	"wayfinder/internal/pathfind"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDanglingReference   = "dangling_reference"
	codeNonPositiveWeight   = "non_positive_weight"
	codeSelfLoop            = "self_loop"
	codeDuplicateLocation   = "duplicate_location"
	codeDuplicateRoomNumber = "duplicate_room_number"
	codeRoomWithoutNumber   = "room_without_number"
	codeDuplicatePoint      = "duplicate_point"
	codeOrphanedLocation    = "orphaned_location"
	codeMissingConnector    = "missing_connector"
	codeUnknownLectureRoom  = "unknown_lecture_room"
	codeUnreachableDest     = "unreachable_destination"
)

type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Building string   `json:"building,omitempty"`
	Node     string   `json:"node,omitempty"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any issue has error severity.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// collector applies the policy as issues are raised.
type collector struct {
	policy *config.Policy
	issues []Issue
}

func (c *collector) add(severity Severity, code, building, node, format string, args ...any) {
	switch c.policy.SeverityFor(code, string(severity)) {
	case config.SeverityOff:
		return
	case config.SeverityError:
		severity = SeverityError
	case config.SeverityWarning:
		severity = SeverityWarn
	}
	c.issues = append(c.issues, Issue{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Building: building,
		Node:     node,
	})
}

// Run checks the campus graph and every building floor plan. A nil policy
// keeps the default severities.
func Run(ctx context.Context, src GraphSource, policy *config.Policy) (*Report, error) {
	if src == nil {
		return nil, fmt.Errorf("graph source is required")
	}

	c := &collector{policy: policy, issues: make([]Issue, 0)}

	campus, err := src.LoadCampus(ctx)
	if err != nil {
		return nil, fmt.Errorf("load campus: %w", err)
	}
	checkCampus(c, campus)

	buildings, err := src.ListBuildings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	for _, summary := range buildings {
		building, err := src.LoadBuilding(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("load building %s: %w", summary.ID, err)
		}
		checkBuilding(c, building)
	}

	return &Report{Issues: c.issues}, nil
}

func checkCampus(c *collector, campus *graph.Campus) {
	known := make(map[string]bool, len(campus.Locations))
	roomOwner := make(map[string]string)
	for _, loc := range campus.Locations {
		if known[loc.ID] {
			c.add(SeverityError, codeDuplicateLocation, "", loc.ID, "duplicate location id %s", loc.ID)
		}
		known[loc.ID] = true

		for _, room := range loc.RoomNumbers {
			if owner, ok := roomOwner[room]; ok && owner != loc.ID {
				c.add(SeverityError, codeDuplicateRoomNumber, "", loc.ID, "room %s is listed by %s and %s", room, owner, loc.ID)
				continue
			}
			roomOwner[room] = loc.ID
		}
	}

	touched := make(map[string]bool)
	for _, conn := range campus.Connections {
		if !known[conn.From] {
			c.add(SeverityError, codeDanglingReference, "", conn.ID, "connection %s references unknown location %s", conn.ID, conn.From)
		}
		if !known[conn.To] {
			c.add(SeverityError, codeDanglingReference, "", conn.ID, "connection %s references unknown location %s", conn.ID, conn.To)
		}
		if conn.From == conn.To {
			c.add(SeverityError, codeSelfLoop, "", conn.ID, "connection %s starts and ends at %s", conn.ID, conn.From)
		}
		if !(conn.Distance > 0) {
			c.add(SeverityError, codeNonPositiveWeight, "", conn.ID, "connection %s has distance %v", conn.ID, conn.Distance)
		}
		touched[conn.From] = true
		touched[conn.To] = true
	}

	for _, loc := range campus.Locations {
		if !touched[loc.ID] {
			c.add(SeverityWarn, codeOrphanedLocation, "", loc.ID, "location %s has no connections", loc.ID)
		}
	}

	for _, lecture := range campus.Lectures {
		if lecture.BuildingID != "" {
			if !known[lecture.BuildingID] {
				c.add(SeverityError, codeDanglingReference, "", lecture.ID, "lecture %s references unknown location %s", lecture.ID, lecture.BuildingID)
			}
			continue
		}
		if _, ok := campus.BuildingByRoom(lecture.RoomNumber); !ok {
			c.add(SeverityWarn, codeUnknownLectureRoom, "", lecture.ID, "lecture %s is in room %s which no building or block lists", lecture.ID, lecture.RoomNumber)
		}
	}

	checkReachability(c, campus)
}

// checkReachability flags destinations that no other starting location can
// reach. It is skipped when the graph does not build.
func checkReachability(c *collector, campus *graph.Campus) {
	adj, err := campus.Adjacency()
	if err != nil {
		return
	}

	reached := make(map[string]bool)
	for _, start := range graph.StartingLocations(campus.Locations) {
		tree := pathfind.Solve(adj, start.ID, "")
		for _, id := range adj.Nodes() {
			if id != start.ID && tree.PathTo(id).Found() {
				reached[id] = true
			}
		}
	}

	for _, dest := range graph.DestinationLocations(campus.Locations) {
		if !reached[dest.ID] {
			c.add(SeverityWarn, codeUnreachableDest, "", dest.ID, "destination %s cannot be reached from any starting location", dest.ID)
		}
	}
}

func checkBuilding(c *collector, building *graph.Building) {
	for _, number := range building.Floors.Numbers() {
		floor := building.Floors[number]

		known := make(map[string]bool, len(floor.Points))
		for _, p := range floor.Points {
			if known[p.ID] {
				c.add(SeverityError, codeDuplicatePoint, building.ID, p.ID, "floor %d has point %s more than once", number, p.ID)
			}
			known[p.ID] = true

			if p.Type == graph.PointRoom && p.RoomNumber == "" {
				c.add(SeverityError, codeRoomWithoutNumber, building.ID, p.ID, "room point %s on floor %d has no room number", p.ID, number)
			}
			if p.IsTransit() && !hasShaftNeighbour(building, number, p) {
				c.add(SeverityWarn, codeMissingConnector, building.ID, p.ID,
					"%s %q on floor %d has no counterpart on an adjacent floor", p.Type, p.Label, number)
			}
		}

		for _, conn := range floor.Connections {
			for _, end := range []string{conn.From, conn.To} {
				if !known[end] {
					c.add(SeverityError, codeDanglingReference, building.ID, end, "floor %d connection %s -> %s references unknown point %s", number, conn.From, conn.To, end)
				}
			}
			if conn.From == conn.To {
				c.add(SeverityError, codeSelfLoop, building.ID, conn.From, "floor %d connection loops on %s", number, conn.From)
			}
			if !(conn.Weight > 0) {
				c.add(SeverityError, codeNonPositiveWeight, building.ID, conn.From, "floor %d connection %s -> %s has weight %v", number, conn.From, conn.To, conn.Weight)
			}
		}
	}
}

func hasShaftNeighbour(building *graph.Building, number int, p graph.Point) bool {
	for _, adjacent := range []int{number - 1, number + 1} {
		floor, ok := building.Floors[adjacent]
		if !ok {
			continue
		}
		for _, other := range floor.Points {
			if other.SameShaft(p) {
				return true
			}
		}
	}
	return false
}
