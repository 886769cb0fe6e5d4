package snapshot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"wayfinder/internal/graph"
	"wayfinder/internal/store"
)

// Repository hands out the current State. A reload swaps the whole state at
// once, so a request always routes over a single consistent snapshot.
type Repository struct {
	roots    []string
	excludes []string
	logger   *zap.Logger
	debounce time.Duration
	onReload func(ok bool)

	state atomic.Pointer[State]
}

type Option func(*Repository)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

func WithDebounce(d time.Duration) Option {
	return func(r *Repository) { r.debounce = d }
}

// WithReloadHook is called after every reload attempt triggered by Watch.
func WithReloadHook(fn func(ok bool)) Option {
	return func(r *Repository) { r.onReload = fn }
}

// Open loads the snapshot files under roots and returns a repository serving
// them.
func Open(roots, excludes []string, opts ...Option) (*Repository, error) {
	r := &Repository{
		roots:    roots,
		excludes: excludes,
		logger:   zap.NewNop(),
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}

	state, err := Load(roots, excludes)
	if err != nil {
		return nil, err
	}
	r.state.Store(state)
	return r, nil
}

func (r *Repository) State() *State {
	return r.state.Load()
}

// Reload parses the files again. On failure the previous state stays in place.
func (r *Repository) Reload() error {
	state, err := Load(r.roots, r.excludes)
	if err != nil {
		return err
	}
	r.state.Store(state)
	return nil
}

func (r *Repository) LoadCampus(ctx context.Context) (*graph.Campus, error) {
	return r.State().Campus, nil
}

func (r *Repository) LoadBuilding(ctx context.Context, id string) (*graph.Building, error) {
	b, ok := r.State().Buildings[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, graph.ErrBuildingNotFound)
	}
	return b, nil
}

func (r *Repository) ListBuildings(ctx context.Context) ([]store.BuildingSummary, error) {
	return r.State().Summaries(), nil
}
