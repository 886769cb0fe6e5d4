package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// A multi-statement Exec runs as one implicit transaction.
	ddl := `
CREATE TABLE IF NOT EXISTS sources (
    source_file   TEXT PRIMARY KEY,
    source        TEXT NOT NULL,
    source_hash   TEXT NOT NULL,
    kind          TEXT NOT NULL,
    last_ingested TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS locations (
    source_file  TEXT NOT NULL REFERENCES sources(source_file) ON DELETE CASCADE,
    ordinal      INTEGER NOT NULL,
    id           TEXT NOT NULL,
    name         TEXT NOT NULL,
    type         TEXT NOT NULL,
    room_numbers TEXT[] DEFAULT '{}',
    floors       INTEGER[] DEFAULT '{}',
    pos_x        DOUBLE PRECISION,
    pos_y        DOUBLE PRECISION,
    details      TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS connections (
    source_file          TEXT NOT NULL REFERENCES sources(source_file) ON DELETE CASCADE,
    ordinal              INTEGER NOT NULL,
    id                   TEXT NOT NULL,
    from_id              TEXT NOT NULL,
    to_id                TEXT NOT NULL,
    distance             DOUBLE PRECISION NOT NULL,
    type                 TEXT NOT NULL,
    bidirectional        BOOLEAN NOT NULL DEFAULT FALSE,
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
    x           DOUBLE PRECISION DEFAULT 0,
    y           DOUBLE PRECISION DEFAULT 0
);

CREATE TABLE IF NOT EXISTS indoor_connections (
    building_id TEXT NOT NULL REFERENCES buildings(building_id) ON DELETE CASCADE,
    floor       INTEGER NOT NULL,
    ordinal     INTEGER NOT NULL,
    from_id     TEXT NOT NULL,
    to_id       TEXT NOT NULL,
    weight      DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sources_source ON sources (source);
CREATE INDEX IF NOT EXISTS idx_locations_order ON locations (source_file, ordinal);
CREATE INDEX IF NOT EXISTS idx_connections_order ON connections (source_file, ordinal);
CREATE INDEX IF NOT EXISTS idx_lectures_order ON lectures (source_file, ordinal);
CREATE INDEX IF NOT EXISTS idx_indoor_points_order ON indoor_points (building_id, floor, ordinal);
CREATE INDEX IF NOT EXISTS idx_indoor_connections_order ON indoor_connections (building_id, floor, ordinal);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
