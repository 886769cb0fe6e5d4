package ingest

import (
	"context"

	"wayfinder/internal/store"
)

// Store is the part of the graph repository ingestion writes to.
type Store interface {
	EnsureSchema(ctx context.Context) error
	ReplaceSource(ctx context.Context, doc store.SourceDocument) (store.ReplaceStats, error)
	RemoveStaleSources(ctx context.Context, source string, currentSourceFiles []string) (int64, error)
	GetSourceHashes(ctx context.Context, source string) (map[string]string, error)
}
