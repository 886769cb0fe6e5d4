package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"wayfinder/internal/graph"
	"wayfinder/internal/store"
)

// LoadCampus assembles the campus graph from every ingested campus file,
// preserving the declaration order within each file.
func (c *Client) LoadCampus(ctx context.Context) (*graph.Campus, error) {
	locations, err := c.loadLocations(ctx)
	if err != nil {
		return nil, err
	}
	connections, err := c.loadConnections(ctx)
	if err != nil {
		return nil, err
	}
	lectures, err := c.loadLectures(ctx)
	if err != nil {
		return nil, err
	}
	return &graph.Campus{Locations: locations, Connections: connections, Lectures: lectures}, nil
}

func (c *Client) loadLocations(ctx context.Context) ([]graph.Location, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT id, name, type, room_numbers, floors, pos_x, pos_y, details
	FROM locations ORDER BY source_file, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	locations := make([]graph.Location, 0)
	for rows.Next() {
		var (
			loc           graph.Location
			typ           string
			rooms, floors string
			x, y          sql.NullFloat64
		)
		if err := rows.Scan(&loc.ID, &loc.Name, &typ, &rooms, &floors, &x, &y, &loc.Details); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		loc.Type = graph.LocationType(typ)
		if err := json.Unmarshal([]byte(rooms), &loc.RoomNumbers); err != nil {
			return nil, fmt.Errorf("decoding room numbers of %s: %w", loc.ID, err)
		}
		if err := json.Unmarshal([]byte(floors), &loc.Floors); err != nil {
			return nil, fmt.Errorf("decoding floors of %s: %w", loc.ID, err)
		}
		if x.Valid && y.Valid {
			loc.Position = &graph.Position{X: x.Float64, Y: y.Float64}
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}

	return locations, nil
}

func (c *Client) loadConnections(ctx context.Context) ([]graph.Connection, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT id, from_id, to_id, distance, type, bidirectional, facility_name, facility_description
	FROM connections ORDER BY source_file, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query connections: %w", err)
	}
	defer rows.Close()

	connections := make([]graph.Connection, 0)
	for rows.Next() {
		var (
			conn          graph.Connection
			typ           string
			bidirectional int
		)
		if err := rows.Scan(&conn.ID, &conn.From, &conn.To, &conn.Distance, &typ, &bidirectional,
			&conn.FacilityName, &conn.FacilityDescription); err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}
		conn.Type = graph.ConnectionType(typ)
		conn.Bidirectional = bidirectional != 0
		connections = append(connections, conn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating connections: %w", err)
	}

	return connections, nil
}

func (c *Client) loadLectures(ctx context.Context) ([]graph.Lecture, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT id, subject_name, lecture_name, room_number, building_id, floor
	FROM lectures ORDER BY source_file, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query lectures: %w", err)
	}
	defer rows.Close()

	lectures := make([]graph.Lecture, 0)
	for rows.Next() {
		var lecture graph.Lecture
		if err := rows.Scan(&lecture.ID, &lecture.SubjectName, &lecture.LectureName,
			&lecture.RoomNumber, &lecture.BuildingID, &lecture.Floor); err != nil {
			return nil, fmt.Errorf("scanning lecture: %w", err)
		}
		lectures = append(lectures, lecture)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lectures: %w", err)
	}

	return lectures, nil
}

func (c *Client) LoadBuilding(ctx context.Context, id string) (*graph.Building, error) {
	building := &graph.Building{ID: id, Floors: graph.FloorPlan{}}

	err := c.db.QueryRowContext(ctx, `SELECT name FROM buildings WHERE building_id = ?`, id).Scan(&building.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", id, graph.ErrBuildingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query building %s: %w", id, err)
	}

	if err := c.loadPoints(ctx, building); err != nil {
		return nil, err
	}
	if err := c.loadIndoorConnections(ctx, building); err != nil {
		return nil, err
	}
	return building, nil
}

func (c *Client) loadPoints(ctx context.Context, building *graph.Building) error {
	rows, err := c.db.QueryContext(ctx, `
	SELECT floor, id, label, type, room_number, x, y
	FROM indoor_points WHERE building_id = ? ORDER BY floor, ordinal`, building.ID)
	if err != nil {
		return fmt.Errorf("query points of %s: %w", building.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p   graph.Point
			typ string
		)
		if err := rows.Scan(&p.Floor, &p.ID, &p.Label, &typ, &p.RoomNumber, &p.X, &p.Y); err != nil {
			return fmt.Errorf("scanning point: %w", err)
		}
		p.Type = graph.PointType(typ)
		floor := floorOf(building, p.Floor)
		floor.Points = append(floor.Points, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating points: %w", err)
	}
	return nil
}

func (c *Client) loadIndoorConnections(ctx context.Context, building *graph.Building) error {
	rows, err := c.db.QueryContext(ctx, `
	SELECT floor, from_id, to_id, weight
	FROM indoor_connections WHERE building_id = ? ORDER BY floor, ordinal`, building.ID)
	if err != nil {
		return fmt.Errorf("query connections of %s: %w", building.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			number int
			conn   graph.IndoorConnection
		)
		if err := rows.Scan(&number, &conn.From, &conn.To, &conn.Weight); err != nil {
			return fmt.Errorf("scanning connection: %w", err)
		}
		floor := floorOf(building, number)
		floor.Connections = append(floor.Connections, conn)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating connections: %w", err)
	}
	return nil
}

func (c *Client) ListBuildings(ctx context.Context) ([]store.BuildingSummary, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT b.building_id, b.name, b.source_file,
		(SELECT COUNT(DISTINCT p.floor) FROM indoor_points p WHERE p.building_id = b.building_id),
		(SELECT COUNT(*) FROM indoor_points p WHERE p.building_id = b.building_id)
	FROM buildings b ORDER BY b.building_id`)
	if err != nil {
		return nil, fmt.Errorf("query buildings: %w", err)
	}
	defer rows.Close()

	summaries := make([]store.BuildingSummary, 0)
	for rows.Next() {
		var s store.BuildingSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.SourceFile, &s.Floors, &s.Points); err != nil {
			return nil, fmt.Errorf("scanning building: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buildings: %w", err)
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
