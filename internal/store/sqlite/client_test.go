package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"wayfinder/internal/graph"
	"wayfinder/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	client, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })
	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return client
}

func campusDoc() store.SourceDocument {
	return store.SourceDocument{
		Source:     "campus",
		SourceFile: "data/campus.yaml",
		SourceHash: "h1",
		Campus: &graph.Campus{
			Locations: []graph.Location{
				{ID: "A", Name: "Admin Building", Type: graph.LocationBuilding, RoomNumbers: []string{"A101"}, Floors: []int{0, 1}},
				{ID: "B", Name: "Crossroads", Type: graph.LocationIntersection},
				{ID: "C", Name: "Canteen", Type: graph.LocationFacility, Position: &graph.Position{X: 1.5, Y: -2}},
			},
			Connections: []graph.Connection{
				{ID: "ab", From: "A", To: "B", Distance: 100, Type: graph.ConnectionPath, Bidirectional: true},
				{ID: "bc", From: "B", To: "C", Distance: 80, Type: graph.ConnectionPath, FacilityName: "Snack Corner"},
			},
			Lectures: []graph.Lecture{
				{ID: "L1", SubjectName: "Algorithms", RoomNumber: "A101", BuildingID: "A", Floor: 1},
			},
		},
	}
}

func buildingDoc() store.SourceDocument {
	return store.SourceDocument{
		Source:     "campus",
		SourceFile: "data/admin.yaml",
		SourceHash: "h2",
		Building: &graph.Building{
			ID:   "A",
			Name: "Admin Building",
			Floors: graph.FloorPlan{
				0: {
					Points: []graph.Point{
						{ID: "e0", Label: "Main Entrance", Type: graph.PointEntrance},
						{ID: "s0", Label: "Main Stairs", Type: graph.PointStairs},
					},
					Connections: []graph.IndoorConnection{{From: "e0", To: "s0", Weight: 50}},
				},
				1: {
					Points: []graph.Point{
						{ID: "s1", Label: "Main Stairs", Type: graph.PointStairs, Floor: 1},
						{ID: "r1", Label: "A101", Type: graph.PointRoom, RoomNumber: "A101", Floor: 1, X: 3, Y: 4},
					},
					Connections: []graph.IndoorConnection{{From: "s1", To: "r1", Weight: 30}},
				},
			},
		},
	}
}

func TestReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	stats, err := client.ReplaceSource(ctx, campusDoc())
	if err != nil {
		t.Fatalf("replacing campus: %v", err)
	}
	if stats.Locations != 3 || stats.Connections != 2 || stats.Lectures != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, err := client.ReplaceSource(ctx, buildingDoc()); err != nil {
		t.Fatalf("replacing building: %v", err)
	}

	t.Run("campus round trips in order", func(t *testing.T) {
		campus, err := client.LoadCampus(ctx)
		if err != nil {
			t.Fatalf("loading campus: %v", err)
		}
		want := campusDoc().Campus
		if !reflect.DeepEqual(campus.Connections, want.Connections) {
			t.Fatalf("connections = %+v, want %+v", campus.Connections, want.Connections)
		}
		if !reflect.DeepEqual(campus.Lectures, want.Lectures) {
			t.Fatalf("lectures = %+v, want %+v", campus.Lectures, want.Lectures)
		}
		if len(campus.Locations) != 3 || campus.Locations[0].ID != "A" || campus.Locations[2].ID != "C" {
			t.Fatalf("unexpected locations: %+v", campus.Locations)
		}
		if !reflect.DeepEqual(campus.Locations[0].RoomNumbers, []string{"A101"}) {
			t.Fatalf("unexpected room numbers: %#v", campus.Locations[0].RoomNumbers)
		}
		if campus.Locations[1].Position != nil {
			t.Fatalf("expected no position on B")
		}
		if p := campus.Locations[2].Position; p == nil || p.X != 1.5 || p.Y != -2 {
			t.Fatalf("unexpected position: %+v", p)
		}
	})

	t.Run("building round trips", func(t *testing.T) {
		b, err := client.LoadBuilding(ctx, "A")
		if err != nil {
			t.Fatalf("loading building: %v", err)
		}
		if b.Name != "Admin Building" || len(b.Floors) != 2 {
			t.Fatalf("unexpected building: %+v", b)
		}
		r1, ok := b.Floors[1].Point("r1")
		if !ok || r1.RoomNumber != "A101" || r1.X != 3 || r1.Y != 4 {
			t.Fatalf("unexpected point: %+v", r1)
		}
		if len(b.Floors[0].Connections) != 1 || b.Floors[0].Connections[0].Weight != 50 {
			t.Fatalf("unexpected connections: %+v", b.Floors[0].Connections)
		}
	})

	t.Run("unknown building", func(t *testing.T) {
		_, err := client.LoadBuilding(ctx, "Z")
		if !errors.Is(err, graph.ErrBuildingNotFound) {
			t.Fatalf("expected ErrBuildingNotFound, got %v", err)
		}
	})

	t.Run("list buildings", func(t *testing.T) {
		buildings, err := client.ListBuildings(ctx)
		if err != nil {
			t.Fatalf("listing buildings: %v", err)
		}
		want := []store.BuildingSummary{{ID: "A", Name: "Admin Building", SourceFile: "data/admin.yaml", Floors: 2, Points: 4}}
		if !reflect.DeepEqual(buildings, want) {
			t.Fatalf("buildings = %+v, want %+v", buildings, want)
		}
	})

	t.Run("hashes", func(t *testing.T) {
		hashes, err := client.GetSourceHashes(ctx, "campus")
		if err != nil {
			t.Fatalf("getting hashes: %v", err)
		}
		want := map[string]string{"data/campus.yaml": "h1", "data/admin.yaml": "h2"}
		if !reflect.DeepEqual(hashes, want) {
			t.Fatalf("hashes = %v, want %v", hashes, want)
		}
	})
}

func TestReplaceSourceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	for i := 0; i < 2; i++ {
		if _, err := client.ReplaceSource(ctx, campusDoc()); err != nil {
			t.Fatalf("replacing campus: %v", err)
		}
	}

	campus, err := client.LoadCampus(ctx)
	if err != nil {
		t.Fatalf("loading campus: %v", err)
	}
	if len(campus.Locations) != 3 || len(campus.Connections) != 2 {
		t.Fatalf("expected rows replaced, got %d locations and %d connections", len(campus.Locations), len(campus.Connections))
	}
}

func TestRemoveStaleSources(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.ReplaceSource(ctx, campusDoc()); err != nil {
		t.Fatalf("replacing campus: %v", err)
	}
	if _, err := client.ReplaceSource(ctx, buildingDoc()); err != nil {
		t.Fatalf("replacing building: %v", err)
	}

	removed, err := client.RemoveStaleSources(ctx, "campus", []string{"data/campus.yaml"})
	if err != nil {
		t.Fatalf("removing stale sources: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := client.LoadBuilding(ctx, "A"); !errors.Is(err, graph.ErrBuildingNotFound) {
		t.Fatalf("expected building rows cascaded away, got %v", err)
	}

	rows, err := client.RunSQL(ctx, "SELECT COUNT(*) AS n FROM indoor_points", nil)
	if err != nil {
		t.Fatalf("counting points: %v", err)
	}
	if n, ok := rows[0]["n"].(int64); !ok || n != 0 {
		t.Fatalf("expected no points left, got %v", rows[0]["n"])
	}

	removed, err = client.RemoveStaleSources(ctx, "campus", nil)
	if err != nil {
		t.Fatalf("removing all sources: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected campus file removed, got %d", removed)
	}
	campus, err := client.LoadCampus(ctx)
	if err != nil {
		t.Fatalf("loading campus: %v", err)
	}
	if len(campus.Locations) != 0 {
		t.Fatalf("expected empty campus, got %+v", campus.Locations)
	}
}

func TestRunSQL(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	if _, err := client.ReplaceSource(ctx, campusDoc()); err != nil {
		t.Fatalf("replacing campus: %v", err)
	}

	t.Run("positional params", func(t *testing.T) {
		rows, err := client.RunSQL(ctx, "SELECT id FROM locations WHERE type = ? ORDER BY id", map[string]any{"1": "facility"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(rows) != 1 || rows[0]["id"] != "C" {
			t.Fatalf("unexpected rows: %v", rows)
		}
	})

	t.Run("writes rejected", func(t *testing.T) {
		_, err := client.RunSQL(ctx, "DELETE FROM locations", nil)
		if !errors.Is(err, store.ErrWriteQuery) {
			t.Fatalf("expected ErrWriteQuery, got %v", err)
		}
	})
}
