package route

import (
	"errors"
	"reflect"
	"testing"

	"wayfinder/internal/graph"
)

func pointIDs(points []graph.Point) []string {
	ids := make([]string, len(points))
	for i, p := range points {
		ids[i] = p.ID
	}
	return ids
}

func TestFindPointByRoom(t *testing.T) {
	b := threeFloorBuilding()

	tests := []struct {
		name  string
		room  string
		floor int
		want  string
		err   error
	}{
		{name: "entrance", room: EntranceRoom, floor: 0, want: "entrance_0_1"},
		{name: "room on floor", room: "CS101", floor: 1, want: "room_1_1"},
		{name: "room on other floor", room: "CS101", floor: 2, err: ErrPointNotFound},
		{name: "no entrance upstairs", room: EntranceRoom, floor: 2, err: ErrPointNotFound},
		{name: "missing floor", room: "C002", floor: 7, err: ErrPointNotFound},
		{name: "label is not a room number", room: "Hallway", floor: 0, err: ErrPointNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FindPointByRoom(b.Floors, tt.room, tt.floor)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID != tt.want {
				t.Errorf("got %s, want %s", p.ID, tt.want)
			}
		})
	}
}

func TestPlanIndoorSameFloor(t *testing.T) {
	plan, err := PlanIndoor(threeFloorBuilding(), IndoorRequest{
		StartRoom: EntranceRoom, StartFloor: 0, EndRoom: "P001", EndFloor: 0,
	}, DefaultIndoorOptions())
	if err != nil {
		t.Fatalf("PlanIndoor: %v", err)
	}
	if len(plan.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(plan.Segments))
	}
	want := []string{"entrance_0_1", "hallway_0_1", "hallway_0_2", "room_0_2"}
	if got := pointIDs(plan.Segments[0].Points); !reflect.DeepEqual(got, want) {
		t.Errorf("points = %v, want %v", got, want)
	}
	if plan.Segments[0].Distance != 300 {
		t.Errorf("distance = %v", plan.Segments[0].Distance)
	}
}

func TestRouteIndoorThreeFloors(t *testing.T) {
	b := threeFloorBuilding()
	req := IndoorRequest{StartRoom: "C002", StartFloor: 0, EndRoom: "M201", EndFloor: 2}

	plan, err := PlanIndoor(b, req, DefaultIndoorOptions())
	if err != nil {
		t.Fatalf("PlanIndoor: %v", err)
	}
	if len(plan.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(plan.Segments))
	}

	wantSegments := [][]string{
		{"room_0_1", "hallway_0_2", "hallway_0_1", "stairs_0_1"},
		{"stairs_1_1", "stairs_1_1"},
		{"stairs_2_1", "hallway_2_1", "hallway_2_2", "room_2_1"},
	}
	sum := 0.0
	for i, seg := range plan.Segments {
		if seg.Floor != i {
			t.Errorf("segment %d floor = %d", i, seg.Floor)
		}
		if got := pointIDs(seg.Points); !reflect.DeepEqual(got, wantSegments[i]) {
			t.Errorf("segment %d = %v, want %v", i, got, wantSegments[i])
		}
		sum += seg.Distance
	}

	res, err := RouteIndoor(b, req, DefaultIndoorOptions())
	if err != nil {
		t.Fatalf("RouteIndoor: %v", err)
	}
	if res.TotalDistance != sum || sum != 600 {
		t.Errorf("TotalDistance = %v, segment sum = %v, want 600", res.TotalDistance, sum)
	}
	if res.EstimatedTime != 9 {
		t.Errorf("EstimatedTime = %d, want 9", res.EstimatedTime)
	}
	if len(res.Segments) != 3 {
		t.Errorf("result keeps %d segments, want 3", len(res.Segments))
	}

	wantDirections := []string{
		"Floor 0: Go from C002 to Hallway",
		"Floor 0: Go from Hallway to Hallway",
		"Floor 0: Go from Hallway to Main Stairs",
		"Take Main Stairs from floor 0 to floor 2",
		"Floor 2: Go from Main Stairs to Hallway",
		"Floor 2: Go from Hallway to Hallway",
		"Floor 2: Go from Hallway to M201",
	}
	if !reflect.DeepEqual(res.Directions, wantDirections) {
		t.Errorf("Directions = %q", res.Directions)
	}
}

func TestRouteIndoorDownstairs(t *testing.T) {
	res, err := RouteIndoor(threeFloorBuilding(), IndoorRequest{
		StartRoom: "E201", StartFloor: 2, EndRoom: "C002", EndFloor: 0,
	}, DefaultIndoorOptions())
	if err != nil {
		t.Fatalf("RouteIndoor: %v", err)
	}
	if len(res.Segments) != 3 || res.Segments[1].Floor != 1 {
		t.Fatalf("segments = %+v", res.Segments)
	}
	// stairs and elevator are equally far upstairs, stairs come first
	if res.Segments[0].Points[len(res.Segments[0].Points)-1].ID != "stairs_2_1" {
		t.Errorf("expected to leave floor 2 by the stairs, got %v", pointIDs(res.Segments[0].Points))
	}
	if res.TotalDistance != 600 {
		t.Errorf("TotalDistance = %v", res.TotalDistance)
	}
}

// selectionBuilding offers a short walk with many hops to the stairs and a
// long direct corridor to the elevator.
func selectionBuilding() *graph.Building {
	return &graph.Building{
		ID: "sel",
		Floors: graph.FloorPlan{
			0: {
				Points: []graph.Point{
					point("r", "G1", graph.PointRoom, 0),
					point("h", "Hall", graph.PointHallway, 0),
					point("s", "North Stairs", graph.PointStairs, 0),
					point("e", "Lift", graph.PointElevator, 0),
				},
				Connections: []graph.IndoorConnection{
					link("r", "h", 10),
					link("h", "s", 10),
					link("r", "e", 500),
				},
			},
			1: {
				Points: []graph.Point{
					point("s1", "North Stairs", graph.PointStairs, 1),
					point("e1", "Lift", graph.PointElevator, 1),
					point("r1", "F1", graph.PointRoom, 1),
				},
				Connections: []graph.IndoorConnection{
					link("s1", "r1", 10),
					link("e1", "r1", 10),
				},
			},
		},
	}
}

func TestTransitSelection(t *testing.T) {
	req := IndoorRequest{StartRoom: "G1", StartFloor: 0, EndRoom: "F1", EndFloor: 1}

	t.Run("hops", func(t *testing.T) {
		plan, err := PlanIndoor(selectionBuilding(), req, IndoorOptions{TransitSelection: SelectByHops})
		if err != nil {
			t.Fatal(err)
		}
		if got := pointIDs(plan.Segments[0].Points); !reflect.DeepEqual(got, []string{"r", "e"}) {
			t.Errorf("hop-count selection took %v", got)
		}
		if got := pointIDs(plan.Segments[1].Points); !reflect.DeepEqual(got, []string{"e1", "r1"}) {
			t.Errorf("arrival = %v", got)
		}
	})

	t.Run("distance", func(t *testing.T) {
		plan, err := PlanIndoor(selectionBuilding(), req, IndoorOptions{TransitSelection: SelectByDistance})
		if err != nil {
			t.Fatal(err)
		}
		if got := pointIDs(plan.Segments[0].Points); !reflect.DeepEqual(got, []string{"r", "h", "s"}) {
			t.Errorf("distance selection took %v", got)
		}
	})
}

func TestMissingConnector(t *testing.T) {
	b := threeFloorBuilding()
	// the stairwell stops at floor 1
	floor2 := b.Floors[2]
	floor2.Points = floor2.Points[1:]
	floor2.Connections = floor2.Connections[1:]

	req := IndoorRequest{StartRoom: "C002", StartFloor: 0, EndRoom: "M201", EndFloor: 2}

	t.Run("fail", func(t *testing.T) {
		_, err := PlanIndoor(b, req, DefaultIndoorOptions())
		if !errors.Is(err, ErrNoConnector) {
			t.Fatalf("expected ErrNoConnector, got %v", err)
		}
		var connErr *ConnectorError
		if !errors.As(err, &connErr) {
			t.Fatalf("expected *ConnectorError, got %T", err)
		}
		if connErr.Floor != 2 || connErr.Type != graph.PointStairs || connErr.Label != "Main Stairs" {
			t.Errorf("ConnectorError = %+v", connErr)
		}
		if len(connErr.Partial) != 2 {
			t.Errorf("partial segments = %d, want 2", len(connErr.Partial))
		}
		if Classify(nil, err) != "no_connector" {
			t.Errorf("Classify = %q", Classify(nil, err))
		}
	})

	t.Run("partial", func(t *testing.T) {
		res, err := RouteIndoor(b, req, IndoorOptions{TransitSelection: SelectByHops, MissingConnector: ConnectorPartial})
		if err != nil {
			t.Fatalf("RouteIndoor: %v", err)
		}
		if !res.Partial || len(res.Segments) != 2 {
			t.Errorf("expected partial route with 2 segments, got partial=%v segments=%d", res.Partial, len(res.Segments))
		}
		if res.TotalDistance != 300 {
			t.Errorf("TotalDistance = %v", res.TotalDistance)
		}
	})
}

func TestNoTransitOnStartFloor(t *testing.T) {
	b := &graph.Building{
		ID: "flat",
		Floors: graph.FloorPlan{
			0: {Points: []graph.Point{point("r0", "R0", graph.PointRoom, 0)}},
			1: {Points: []graph.Point{point("r1", "R1", graph.PointRoom, 1)}},
		},
	}
	_, err := PlanIndoor(b, IndoorRequest{StartRoom: "R0", StartFloor: 0, EndRoom: "R1", EndFloor: 1}, DefaultIndoorOptions())
	var connErr *ConnectorError
	if !errors.As(err, &connErr) || connErr.Floor != 0 {
		t.Fatalf("expected ConnectorError on floor 0, got %v", err)
	}
}

func TestIndoorUnreachable(t *testing.T) {
	b := threeFloorBuilding()
	b.Floors[0].Points = append(b.Floors[0].Points, point("closet", "X9", graph.PointRoom, 0))

	res, err := RouteIndoor(b, IndoorRequest{StartRoom: EntranceRoom, StartFloor: 0, EndRoom: "X9", EndFloor: 0}, DefaultIndoorOptions())
	if err != nil {
		t.Fatalf("unreachable should not be an error: %v", err)
	}
	if res.Reachable {
		t.Errorf("expected unreachable result, got %v", res.Path)
	}
}

func TestRouteIndoorStartEqualsEnd(t *testing.T) {
	res, err := RouteIndoor(threeFloorBuilding(), IndoorRequest{StartRoom: "B101", StartFloor: 1, EndRoom: "B101", EndFloor: 1}, DefaultIndoorOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Reachable || res.TotalDistance != 0 || !reflect.DeepEqual(res.Path, []string{"room_1_2"}) {
		t.Errorf("got %+v", res)
	}
}
