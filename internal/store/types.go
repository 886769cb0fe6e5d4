package store

import "wayfinder/internal/graph"

// SourceDocument is the content of one snapshot file. Exactly one of Campus
// and Building is set.
type SourceDocument struct {
	Source     string
	SourceFile string
	SourceHash string
	Campus     *graph.Campus
	Building   *graph.Building
}

func (d SourceDocument) Kind() string {
	if d.Building != nil {
		return "building"
	}
	return "campus"
}

type ReplaceStats struct {
	Locations         int
	Connections       int
	Lectures          int
	Points            int
	IndoorConnections int
}

type BuildingSummary struct {
	ID         string
	Name       string
	SourceFile string
	Floors     int
	Points     int
}
