// Package snapshot serves routing graphs straight from snapshot files,
// without a database, and can reload them as the files change.
package snapshot

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"wayfinder/internal/graph"
	"wayfinder/internal/ingest"
	"wayfinder/internal/parser"
	"wayfinder/internal/store"
)

var ErrDuplicateBuilding = errors.New("building declared in more than one file")

// State is one immutable load of every snapshot file. Campus documents are
// merged in file order.
type State struct {
	Campus    *graph.Campus
	Buildings map[string]*graph.Building
	Files     []string
	LoadedAt  time.Time

	buildingFiles map[string]string
}

// Load parses the snapshot files under roots. Files without a kind are
// ignored; any other parse failure fails the whole load.
func Load(roots, excludes []string) (*State, error) {
	files, err := ingest.WalkSnapshotFiles(roots, excludes)
	if err != nil {
		return nil, fmt.Errorf("walking snapshot files: %w", err)
	}

	state := &State{
		Campus:        &graph.Campus{Locations: []graph.Location{}, Connections: []graph.Connection{}, Lectures: []graph.Lecture{}},
		Buildings:     make(map[string]*graph.Building),
		Files:         make([]string, 0, len(files)),
		LoadedAt:      time.Now(),
		buildingFiles: make(map[string]string),
	}

	for _, path := range files {
		doc, err := parser.ParseFile(path)
		if errors.Is(err, parser.ErrMissingKind) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		switch doc.Kind {
		case parser.KindCampus:
			state.Campus.Merge(doc.Campus)
		case parser.KindBuilding:
			id := doc.Building.ID
			if prev, exists := state.buildingFiles[id]; exists {
				return nil, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateBuilding, id, prev, path)
			}
			state.Buildings[id] = doc.Building
			state.buildingFiles[id] = path
		}
		state.Files = append(state.Files, path)
	}

	return state, nil
}

// Summaries lists the loaded buildings ordered by id.
func (s *State) Summaries() []store.BuildingSummary {
	summaries := make([]store.BuildingSummary, 0, len(s.Buildings))
	for id, b := range s.Buildings {
		points := 0
		for _, floor := range b.Floors {
			points += len(floor.Points)
		}
		summaries = append(summaries, store.BuildingSummary{
			ID:         id,
			Name:       b.Name,
			SourceFile: s.buildingFiles[id],
			Floors:     len(b.Floors),
			Points:     points,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}
