package store

import (
	"context"

	"wayfinder/internal/graph"
	"wayfinder/internal/route"
)

// Store persists ingested snapshot files and serves them back as routing
// graphs. Rows are keyed by the file that contributed them, so a file is
// replaced or removed as a unit.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	ReplaceSource(ctx context.Context, doc SourceDocument) (ReplaceStats, error)
	RemoveStaleSources(ctx context.Context, source string, currentSourceFiles []string) (int64, error)
	GetSourceHashes(ctx context.Context, source string) (map[string]string, error)

	LoadCampus(ctx context.Context) (*graph.Campus, error)
	LoadBuilding(ctx context.Context, id string) (*graph.Building, error)
	ListBuildings(ctx context.Context) ([]BuildingSummary, error)

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

var _ route.Repository = Store(nil)
