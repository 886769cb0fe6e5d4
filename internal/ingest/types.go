package ingest

import (
	"go.uber.org/zap"

	"wayfinder/internal/store"
)

type Result struct {
	DocumentsUpserted   int
	LocationsUpserted   int
	ConnectionsUpserted int
	PointsUpserted      int
	SourcesRemoved      int
	FilesSkipped        int
	Errors              []error
}

func (r *Result) add(stats store.ReplaceStats) {
	r.DocumentsUpserted++
	r.LocationsUpserted += stats.Locations
	r.ConnectionsUpserted += stats.Connections + stats.IndoorConnections
	r.PointsUpserted += stats.Points
}

type Options struct {
	// Full re-ingests every file regardless of its stored hash.
	Full   bool
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
