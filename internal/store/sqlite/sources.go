package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"wayfinder/internal/store"
)

// ReplaceSource drops every row contributed by doc.SourceFile and inserts the
// document's records in one transaction.
func (c *Client) ReplaceSource(ctx context.Context, doc store.SourceDocument) (store.ReplaceStats, error) {
	var stats store.ReplaceStats

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE source_file = ?`, doc.SourceFile); err != nil {
		return stats, fmt.Errorf("clearing source %s: %w", doc.SourceFile, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (source_file, source, source_hash, kind) VALUES (?, ?, ?, ?)`,
		doc.SourceFile, doc.Source, doc.SourceHash, doc.Kind(),
	); err != nil {
		return stats, fmt.Errorf("recording source %s: %w", doc.SourceFile, err)
	}

	if doc.Campus != nil {
		if err := insertCampus(ctx, tx, doc, &stats); err != nil {
			return stats, err
		}
	}
	if doc.Building != nil {
		if err := insertBuilding(ctx, tx, doc, &stats); err != nil {
			return stats, err
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("committing source %s: %w", doc.SourceFile, err)
	}
	return stats, nil
}

func insertCampus(ctx context.Context, tx *sql.Tx, doc store.SourceDocument, stats *store.ReplaceStats) error {
	for i, loc := range doc.Campus.Locations {
		rooms, err := json.Marshal(nonNil(loc.RoomNumbers))
		if err != nil {
			return fmt.Errorf("encoding room numbers of %s: %w", loc.ID, err)
		}
		floors, err := json.Marshal(nonNilInts(loc.Floors))
		if err != nil {
			return fmt.Errorf("encoding floors of %s: %w", loc.ID, err)
		}
		var x, y sql.NullFloat64
		if loc.Position != nil {
			x = sql.NullFloat64{Float64: loc.Position.X, Valid: true}
			y = sql.NullFloat64{Float64: loc.Position.Y, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO locations (source_file, ordinal, id, name, type, room_numbers, floors, pos_x, pos_y, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.SourceFile, i, loc.ID, loc.Name, string(loc.Type), string(rooms), string(floors), x, y, loc.Details,
		); err != nil {
			return fmt.Errorf("inserting location %s: %w", loc.ID, err)
		}
		stats.Locations++
	}

	for i, conn := range doc.Campus.Connections {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO connections (source_file, ordinal, id, from_id, to_id, distance, type, bidirectional, facility_name, facility_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.SourceFile, i, conn.ID, conn.From, conn.To, conn.Distance, string(conn.Type), boolToInt(conn.Bidirectional),
			conn.FacilityName, conn.FacilityDescription,
		); err != nil {
			return fmt.Errorf("inserting connection %s: %w", conn.ID, err)
		}
		stats.Connections++
	}

	for i, lecture := range doc.Campus.Lectures {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO lectures (source_file, ordinal, id, subject_name, lecture_name, room_number, building_id, floor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.SourceFile, i, lecture.ID, lecture.SubjectName, lecture.LectureName, lecture.RoomNumber, lecture.BuildingID, lecture.Floor,
		); err != nil {
			return fmt.Errorf("inserting lecture %s: %w", lecture.ID, err)
		}
		stats.Lectures++
	}

	return nil
}

func insertBuilding(ctx context.Context, tx *sql.Tx, doc store.SourceDocument, stats *store.ReplaceStats) error {
	b := doc.Building
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO buildings (building_id, source_file, name) VALUES (?, ?, ?)`,
		b.ID, doc.SourceFile, b.Name,
	); err != nil {
		return fmt.Errorf("inserting building %s: %w", b.ID, err)
	}

	for _, number := range b.Floors.Numbers() {
		floor := b.Floors[number]
		for i, p := range floor.Points {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO indoor_points (building_id, floor, ordinal, id, label, type, room_number, x, y)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				b.ID, number, i, p.ID, p.Label, string(p.Type), p.RoomNumber, p.X, p.Y,
			); err != nil {
				return fmt.Errorf("inserting point %s of %s: %w", p.ID, b.ID, err)
			}
			stats.Points++
		}
		for i, conn := range floor.Connections {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO indoor_connections (building_id, floor, ordinal, from_id, to_id, weight)
			VALUES (?, ?, ?, ?, ?, ?)`,
				b.ID, number, i, conn.From, conn.To, conn.Weight,
			); err != nil {
				return fmt.Errorf("inserting connection %s -> %s of %s: %w", conn.From, conn.To, b.ID, err)
			}
			stats.IndoorConnections++
		}
	}

	return nil
}

// RemoveStaleSources deletes the rows of files under source that are not in
// currentSourceFiles.
func (c *Client) RemoveStaleSources(ctx context.Context, source string, currentSourceFiles []string) (int64, error) {
	query := `DELETE FROM sources WHERE source = ?`
	args := []any{source}
	if len(currentSourceFiles) > 0 {
		placeholders := make([]string, len(currentSourceFiles))
		for i, f := range currentSourceFiles {
			placeholders[i] = "?"
			args = append(args, f)
		}
		query += fmt.Sprintf(` AND source_file NOT IN (%s)`, strings.Join(placeholders, ", "))
	}

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("removing stale sources: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return affected, nil
}

func (c *Client) GetSourceHashes(ctx context.Context, source string) (map[string]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT source_file, source_hash FROM sources WHERE source = ?`, source)
	if err != nil {
		return nil, fmt.Errorf("query source hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var sourceFile, sourceHash string
		if err := rows.Scan(&sourceFile, &sourceHash); err != nil {
			return nil, fmt.Errorf("scanning source hash: %w", err)
		}
		hashes[sourceFile] = sourceHash
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source hashes: %w", err)
	}

	return hashes, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
