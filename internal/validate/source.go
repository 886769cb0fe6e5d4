package validate

import (
	"context"

	"wayfinder/internal/graph"
	"wayfinder/internal/store"
)

// GraphSource is anything that can hand over the whole campus and every
// building floor plan.
type GraphSource interface {
	LoadCampus(ctx context.Context) (*graph.Campus, error)
	LoadBuilding(ctx context.Context, id string) (*graph.Building, error)
	ListBuildings(ctx context.Context) ([]store.BuildingSummary, error)
}
