package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wayfinder/internal/store"
)

// ReplaceSource drops every row contributed by doc.SourceFile and inserts the
// document's records in one transaction. Inserts are sent as a single batch.
func (c *Client) ReplaceSource(ctx context.Context, doc store.SourceDocument) (store.ReplaceStats, error) {
	var stats store.ReplaceStats

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM sources WHERE source_file = $1`, doc.SourceFile)
	batch.Queue(`INSERT INTO sources (source_file, source, source_hash, kind) VALUES ($1, $2, $3, $4)`,
		doc.SourceFile, doc.Source, doc.SourceHash, doc.Kind())

	if campus := doc.Campus; campus != nil {
		for i, loc := range campus.Locations {
			var x, y *float64
			if loc.Position != nil {
				x, y = &loc.Position.X, &loc.Position.Y
			}
			batch.Queue(`
INSERT INTO locations (source_file, ordinal, id, name, type, room_numbers, floors, pos_x, pos_y, details)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				doc.SourceFile, i, loc.ID, loc.Name, string(loc.Type), nonNil(loc.RoomNumbers), nonNilInts(loc.Floors), x, y, loc.Details)
			stats.Locations++
		}
		for i, conn := range campus.Connections {
			batch.Queue(`
INSERT INTO connections (source_file, ordinal, id, from_id, to_id, distance, type, bidirectional, facility_name, facility_description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				doc.SourceFile, i, conn.ID, conn.From, conn.To, conn.Distance, string(conn.Type), conn.Bidirectional,
				conn.FacilityName, conn.FacilityDescription)
			stats.Connections++
		}
		for i, lecture := range campus.Lectures {
			batch.Queue(`
INSERT INTO lectures (source_file, ordinal, id, subject_name, lecture_name, room_number, building_id, floor)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				doc.SourceFile, i, lecture.ID, lecture.SubjectName, lecture.LectureName, lecture.RoomNumber, lecture.BuildingID, lecture.Floor)
			stats.Lectures++
		}
	}

	if b := doc.Building; b != nil {
		batch.Queue(`INSERT INTO buildings (building_id, source_file, name) VALUES ($1, $2, $3)`, b.ID, doc.SourceFile, b.Name)
		for _, number := range b.Floors.Numbers() {
			floor := b.Floors[number]
			for i, p := range floor.Points {
				batch.Queue(`
INSERT INTO indoor_points (building_id, floor, ordinal, id, label, type, room_number, x, y)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
					b.ID, number, i, p.ID, p.Label, string(p.Type), p.RoomNumber, p.X, p.Y)
				stats.Points++
			}
			for i, conn := range floor.Connections {
				batch.Queue(`
INSERT INTO indoor_connections (building_id, floor, ordinal, from_id, to_id, weight)
VALUES ($1, $2, $3, $4, $5, $6)`,
					b.ID, number, i, conn.From, conn.To, conn.Weight)
				stats.IndoorConnections++
			}
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return store.ReplaceStats{}, fmt.Errorf("writing source %s: %w", doc.SourceFile, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return store.ReplaceStats{}, fmt.Errorf("committing source %s: %w", doc.SourceFile, err)
	}
	return stats, nil
}

// RemoveStaleSources deletes the rows of files under source that are not in
// currentSourceFiles.
func (c *Client) RemoveStaleSources(ctx context.Context, source string, currentSourceFiles []string) (int64, error) {
	query := `
DELETE FROM sources
WHERE source = $1
  AND NOT (source_file = ANY($2))
`
	tag, err := c.pool.Exec(ctx, query, source, nonNil(currentSourceFiles))
	if err != nil {
		return 0, fmt.Errorf("removing stale sources: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (c *Client) GetSourceHashes(ctx context.Context, source string) (map[string]string, error) {
	rows, err := c.pool.Query(ctx, `SELECT source_file, source_hash FROM sources WHERE source = $1`, source)
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

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int) []int32 {
	out := make([]int32, len(s))
	for i, n := range s {
		out[i] = int32(n)
	}
	return out
}
