package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wayfinder/internal/graph"
	"wayfinder/internal/store"
)

// LoadCampus assembles the campus graph from every ingested campus file,
// preserving the declaration order within each file.
func (c *Client) LoadCampus(ctx context.Context) (*graph.Campus, error) {
	campus := &graph.Campus{}

	rows, err := c.pool.Query(ctx, `
SELECT id, name, type, room_numbers, floors, pos_x, pos_y, details
FROM locations ORDER BY source_file COLLATE "C", ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	campus.Locations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (graph.Location, error) {
		var (
			loc    graph.Location
			typ    string
			floors []int32
			x, y   *float64
		)
		if err := row.Scan(&loc.ID, &loc.Name, &typ, &loc.RoomNumbers, &floors, &x, &y, &loc.Details); err != nil {
			return loc, err
		}
		loc.Type = graph.LocationType(typ)
		loc.Floors = make([]int, len(floors))
		for i, f := range floors {
			loc.Floors[i] = int(f)
		}
		if x != nil && y != nil {
			loc.Position = &graph.Position{X: *x, Y: *y}
		}
		return loc, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning locations: %w", err)
	}

	rows, err = c.pool.Query(ctx, `
SELECT id, from_id, to_id, distance, type, bidirectional, facility_name, facility_description
FROM connections ORDER BY source_file COLLATE "C", ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query connections: %w", err)
	}
	campus.Connections, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (graph.Connection, error) {
		var (
			conn graph.Connection
			typ  string
		)
		err := row.Scan(&conn.ID, &conn.From, &conn.To, &conn.Distance, &typ, &conn.Bidirectional,
			&conn.FacilityName, &conn.FacilityDescription)
		conn.Type = graph.ConnectionType(typ)
		return conn, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning connections: %w", err)
	}

	rows, err = c.pool.Query(ctx, `
SELECT id, subject_name, lecture_name, room_number, building_id, floor
FROM lectures ORDER BY source_file COLLATE "C", ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query lectures: %w", err)
	}
	campus.Lectures, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (graph.Lecture, error) {
		var lecture graph.Lecture
		err := row.Scan(&lecture.ID, &lecture.SubjectName, &lecture.LectureName,
			&lecture.RoomNumber, &lecture.BuildingID, &lecture.Floor)
		return lecture, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning lectures: %w", err)
	}

	return campus, nil
}

func (c *Client) LoadBuilding(ctx context.Context, id string) (*graph.Building, error) {
	building := &graph.Building{ID: id, Floors: graph.FloorPlan{}}

	err := c.pool.QueryRow(ctx, `SELECT name FROM buildings WHERE building_id = $1`, id).Scan(&building.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", id, graph.ErrBuildingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query building %s: %w", id, err)
	}

	rows, err := c.pool.Query(ctx, `
SELECT floor, id, label, type, room_number, x, y
FROM indoor_points WHERE building_id = $1 ORDER BY floor, ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("query points of %s: %w", id, err)
	}
	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (graph.Point, error) {
		var (
			p   graph.Point
			typ string
		)
		err := row.Scan(&p.Floor, &p.ID, &p.Label, &typ, &p.RoomNumber, &p.X, &p.Y)
		p.Type = graph.PointType(typ)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning points of %s: %w", id, err)
	}
	for _, p := range points {
		floor := floorOf(building, p.Floor)
		floor.Points = append(floor.Points, p)
	}

	rows, err = c.pool.Query(ctx, `
SELECT floor, from_id, to_id, weight
FROM indoor_connections WHERE building_id = $1 ORDER BY floor, ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("query connections of %s: %w", id, err)
	}
	var number int
	var conn graph.IndoorConnection
	_, err = pgx.ForEachRow(rows, []any{&number, &conn.From, &conn.To, &conn.Weight}, func() error {
		floor := floorOf(building, number)
		floor.Connections = append(floor.Connections, conn)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning connections of %s: %w", id, err)
	}

	return building, nil
}

func (c *Client) ListBuildings(ctx context.Context) ([]store.BuildingSummary, error) {
	rows, err := c.pool.Query(ctx, `
SELECT b.building_id, b.name, b.source_file,
       COUNT(DISTINCT p.floor)::INTEGER,
       COUNT(p.id)::INTEGER
FROM buildings b
LEFT JOIN indoor_points p ON p.building_id = b.building_id
GROUP BY b.building_id, b.name, b.source_file
ORDER BY b.building_id`)
	if err != nil {
		return nil, fmt.Errorf("query buildings: %w", err)
	}
	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.BuildingSummary, error) {
		var s store.BuildingSummary
		err := row.Scan(&s.ID, &s.Name, &s.SourceFile, &s.Floors, &s.Points)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning buildings: %w", err)
	}
	return summaries, nil
}

func floorOf(b *graph.Building, number int) *graph.Floor {
	floor, ok := b.Floors[number]
	if !ok {
		floor = &graph.Floor{}
		b.Floors[number] = floor
	}
	return floor
}
