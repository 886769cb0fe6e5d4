package route

import "wayfinder/internal/graph"

func point(id, label string, typ graph.PointType, floor int) graph.Point {
	p := graph.Point{ID: id, Label: label, Type: typ, Floor: floor}
	if typ == graph.PointRoom {
		p.RoomNumber = label
	}
	return p
}

func link(from, to string, w float64) graph.IndoorConnection {
	return graph.IndoorConnection{From: from, To: to, Weight: w}
}

// threeFloorBuilding has a ground floor with an entrance and two upper floors,
// joined by "Main Stairs" and "Elevator" on every floor.
func threeFloorBuilding() *graph.Building {
	return &graph.Building{
		ID:   "eng",
		Name: "Engineering",
		Floors: graph.FloorPlan{
			0: {
				Points: []graph.Point{
					point("entrance_0_1", "Main Entrance", graph.PointEntrance, 0),
					point("hallway_0_1", "Hallway", graph.PointHallway, 0),
					point("stairs_0_1", "Main Stairs", graph.PointStairs, 0),
					point("elevator_0_1", "Elevator", graph.PointElevator, 0),
					point("hallway_0_2", "Hallway", graph.PointHallway, 0),
					point("room_0_1", "C002", graph.PointRoom, 0),
					point("room_0_2", "P001", graph.PointRoom, 0),
				},
				Connections: []graph.IndoorConnection{
					link("entrance_0_1", "hallway_0_1", 100),
					link("hallway_0_1", "stairs_0_1", 100),
					link("hallway_0_1", "elevator_0_1", 200),
					link("hallway_0_1", "hallway_0_2", 100),
					link("hallway_0_2", "room_0_1", 100),
					link("hallway_0_2", "room_0_2", 100),
				},
			},
			1: {
				Points: []graph.Point{
					point("stairs_1_1", "Main Stairs", graph.PointStairs, 1),
					point("elevator_1_1", "Elevator", graph.PointElevator, 1),
					point("hallway_1_1", "Hallway", graph.PointHallway, 1),
					point("hallway_1_2", "Hallway", graph.PointHallway, 1),
					point("room_1_1", "CS101", graph.PointRoom, 1),
					point("room_1_2", "B101", graph.PointRoom, 1),
				},
				Connections: []graph.IndoorConnection{
					link("stairs_1_1", "hallway_1_1", 100),
					link("elevator_1_1", "hallway_1_1", 100),
					link("hallway_1_1", "hallway_1_2", 100),
					link("hallway_1_2", "room_1_1", 100),
					link("hallway_1_2", "room_1_2", 100),
				},
			},
			2: {
				Points: []graph.Point{
					point("stairs_2_1", "Main Stairs", graph.PointStairs, 2),
					point("elevator_2_1", "Elevator", graph.PointElevator, 2),
					point("hallway_2_1", "Hallway", graph.PointHallway, 2),
					point("hallway_2_2", "Hallway", graph.PointHallway, 2),
					point("room_2_1", "M201", graph.PointRoom, 2),
					point("room_2_2", "E201", graph.PointRoom, 2),
				},
				Connections: []graph.IndoorConnection{
					link("stairs_2_1", "hallway_2_1", 100),
					link("elevator_2_1", "hallway_2_1", 100),
					link("hallway_2_1", "hallway_2_2", 100),
					link("hallway_2_2", "room_2_1", 100),
					link("hallway_2_2", "room_2_2", 100),
				},
			},
		},
	}
}

// abcCampus is A(building) - B(intersection) - C(facility) with a snack
// corner along B-C.
func abcCampus() *graph.Campus {
	return &graph.Campus{
		Locations: []graph.Location{
			{ID: "A", Name: "Admin Building", Type: graph.LocationBuilding, RoomNumbers: []string{"A101"}},
			{ID: "B", Name: "Crossroads", Type: graph.LocationIntersection},
			{ID: "C", Name: "Canteen", Type: graph.LocationFacility, RoomNumbers: []string{"C1"}},
		},
		Connections: []graph.Connection{
			{ID: "ab", From: "A", To: "B", Distance: 100, Type: graph.ConnectionPath, Bidirectional: true},
			{ID: "bc", From: "B", To: "C", Distance: 80, Type: graph.ConnectionPath, Bidirectional: true, FacilityName: "Snack Corner"},
		},
	}
}
