package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS sources (
		source_file   TEXT PRIMARY KEY,
		source        TEXT NOT NULL,
		source_hash   TEXT NOT NULL,
		kind          TEXT NOT NULL,
		last_ingested TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS locations (
		source_file  TEXT NOT NULL REFERENCES sources(source_file) ON DELETE CASCADE,
		ordinal      INTEGER NOT NULL,
		id           TEXT NOT NULL,
		name         TEXT NOT NULL,
		type         TEXT NOT NULL,
		room_numbers TEXT DEFAULT '[]',
		floors       TEXT DEFAULT '[]',
		pos_x        REAL,
		pos_y        REAL,
		details      TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS connections (
		source_file          TEXT NOT NULL REFERENCES sources(source_file) ON DELETE CASCADE,
		ordinal              INTEGER NOT NULL,
		id                   TEXT NOT NULL,
		from_id              TEXT NOT NULL,
		to_id                TEXT NOT NULL,
		distance             REAL NOT NULL,
		type                 TEXT NOT NULL,
		bidirectional        INTEGER NOT NULL DEFAULT 0,
		facility_name        TEXT DEFAULT '',
		facility_description TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS lectures (
		source_file  TEXT NOT NULL REFERENCES sources(source_file) ON DELETE CASCADE,
		ordinal      INTEGER NOT NULL,
		id           TEXT NOT NULL,
		subject_name TEXT DEFAULT '',
		lecture_name TEXT DEFAULT '',
		room_number  TEXT NOT NULL,
		building_id  TEXT DEFAULT '',
		floor        INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS buildings (
		building_id TEXT PRIMARY KEY,
		source_file TEXT NOT NULL REFERENCES sources(source_file) ON DELETE CASCADE,
		name        TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS indoor_points (
		building_id TEXT NOT NULL REFERENCES buildings(building_id) ON DELETE CASCADE,
		floor       INTEGER NOT NULL,
		ordinal     INTEGER NOT NULL,
		id          TEXT NOT NULL,
		label       TEXT DEFAULT '',
		type        TEXT NOT NULL,
		room_number TEXT DEFAULT '',
		x           REAL DEFAULT 0,
		y           REAL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS indoor_connections (
		building_id TEXT NOT NULL REFERENCES buildings(building_id) ON DELETE CASCADE,
		floor       INTEGER NOT NULL,
		ordinal     INTEGER NOT NULL,
		from_id     TEXT NOT NULL,
		to_id       TEXT NOT NULL,
		weight      REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sources_source ON sources (source);
	CREATE INDEX IF NOT EXISTS idx_locations_order ON locations (source_file, ordinal);
	CREATE INDEX IF NOT EXISTS idx_connections_order ON connections (source_file, ordinal);
	CREATE INDEX IF NOT EXISTS idx_lectures_order ON lectures (source_file, ordinal);
	CREATE INDEX IF NOT EXISTS idx_indoor_points_order ON indoor_points (building_id, floor, ordinal);
	CREATE INDEX IF NOT EXISTS idx_indoor_connections_order ON indoor_connections (building_id, floor, ordinal);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := splitStatements(ddl)
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
