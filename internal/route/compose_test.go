package route

import (
	"errors"
	"testing"

	"wayfinder/internal/graph"
)

func TestEstimateMinutes(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 0},
		{72, 1},
		{73, 2},
		{150, 3},
		{180, 3},
	}
	for _, tt := range tests {
		if got := EstimateMinutes(tt.distance); got != tt.want {
			t.Errorf("EstimateMinutes(%v) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestComposeOutdoorFacility(t *testing.T) {
	campus := &graph.Campus{
		Locations: []graph.Location{
			{ID: "lib", Name: "Library", Type: graph.LocationBuilding},
			{ID: "gate", Name: "Main Gate", Type: graph.LocationIntersection},
		},
		Connections: []graph.Connection{
			{ID: "c1", From: "lib", To: "gate", Distance: 150, Type: graph.ConnectionPath, Bidirectional: true,
				FacilityName: "ATM", FacilityDescription: "24h cash machine"},
		},
	}

	res, err := ComposeOutdoor(campus, []string{"lib", "gate"})
	if err != nil {
		t.Fatalf("ComposeOutdoor: %v", err)
	}

	var atms []Facility
	for _, f := range res.Facilities {
		if f.Name == "ATM" {
			atms = append(atms, f)
		}
	}
	if len(atms) != 1 {
		t.Fatalf("expected exactly one ATM, got %+v", res.Facilities)
	}
	if atms[0].Location != "Between Library and Main Gate" {
		t.Errorf("Location = %q", atms[0].Location)
	}
	if atms[0].Description != "24h cash machine" || atms[0].ConnectionID != "c1" {
		t.Errorf("facility = %+v", atms[0])
	}
	if res.EstimatedTime != 3 {
		t.Errorf("EstimatedTime = %d, want 3", res.EstimatedTime)
	}
}

func TestComposeOutdoorPicksLightestConnection(t *testing.T) {
	campus := &graph.Campus{
		Locations: []graph.Location{
			{ID: "a", Name: "A", Type: graph.LocationBlock},
			{ID: "b", Name: "B", Type: graph.LocationBlock},
		},
		Connections: []graph.Connection{
			{ID: "long", From: "a", To: "b", Distance: 90, Type: graph.ConnectionPath},
			{ID: "lift", From: "a", To: "b", Distance: 30, Type: graph.ConnectionElevator},
			{ID: "stairs", From: "a", To: "b", Distance: 30, Type: graph.ConnectionStairs},
		},
	}

	res, err := ComposeOutdoor(campus, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps[0].ConnectionID != "lift" {
		t.Errorf("ConnectionID = %q, want lift", res.Steps[0].ConnectionID)
	}
	if res.Directions[0] != "Go from A to B using elevator (30 meters)" {
		t.Errorf("direction = %q", res.Directions[0])
	}
}

func TestComposeOutdoorFractionalDistance(t *testing.T) {
	campus := &graph.Campus{
		Locations: []graph.Location{
			{ID: "a", Name: "A", Type: graph.LocationBlock},
			{ID: "b", Name: "B", Type: graph.LocationBlock},
		},
		Connections: []graph.Connection{{ID: "ab", From: "a", To: "b", Distance: 12.5, Type: graph.ConnectionCorridor}},
	}
	res, err := ComposeOutdoor(campus, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Directions[0] != "Go from A to B (12.5 meters)" {
		t.Errorf("direction = %q", res.Directions[0])
	}
}

func TestComposeOutdoorMissingConnection(t *testing.T) {
	campus := &graph.Campus{
		Locations: []graph.Location{
			{ID: "a", Name: "A", Type: graph.LocationBlock},
			{ID: "b", Name: "B", Type: graph.LocationBlock},
		},
		Connections: []graph.Connection{{ID: "ba", From: "b", To: "a", Distance: 10, Type: graph.ConnectionPath}},
	}

	_, err := ComposeOutdoor(campus, []string{"a", "b"})
	if !errors.Is(err, ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound, got %v", err)
	}
}

func TestComposeOutdoorTrivialPaths(t *testing.T) {
	campus := abcCampus()

	empty, err := ComposeOutdoor(campus, nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Reachable {
		t.Error("empty path must be unreachable")
	}

	single, err := ComposeOutdoor(campus, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	if !single.Reachable || len(single.Steps) != 0 || single.TotalDistance != 0 {
		t.Errorf("single-node path = %+v", single)
	}
}

func TestSegmentDegenerate(t *testing.T) {
	p := graph.Point{ID: "s"}
	q := graph.Point{ID: "t"}

	if !(Segment{Points: []graph.Point{p, p}}).Degenerate() {
		t.Error("[p p] should be degenerate")
	}
	if (Segment{Points: []graph.Point{p}}).Degenerate() {
		t.Error("[p] is a real one-point segment")
	}
	if (Segment{Points: []graph.Point{p, q}}).Degenerate() {
		t.Error("[p q] is not degenerate")
	}
}
