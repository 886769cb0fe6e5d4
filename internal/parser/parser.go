package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"wayfinder/internal/graph"
)

type Kind string

const (
	KindCampus   Kind = "campus"
	KindBuilding Kind = "building"
)

// Document is one parsed snapshot file. Exactly one of Campus and Building is
// set, according to Kind.
type Document struct {
	Kind       Kind
	Campus     *graph.Campus
	Building   *graph.Building
	SourceFile string
}

var (
	ErrMissingKind    = errors.New("document missing required 'kind' field")
	ErrUnknownKind    = errors.New("unknown document kind")
	ErrInvalidYAML    = errors.New("invalid YAML in document")
	ErrInvalidJSON    = errors.New("invalid JSON in document")
	ErrMissingID      = errors.New("building missing required 'id' field")
	ErrDuplicateFloor = errors.New("duplicate floor number")
	ErrFloorMismatch  = errors.New("point floor does not match enclosing floor")
	ErrInvalidRecord  = errors.New("invalid record")
)

// connectionNamespace seeds the name-based ids of connections declared
// without one.
var connectionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("wayfinder/connection"))

type rawDocument struct {
	Kind        string             `yaml:"kind" json:"kind"`
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Locations   []graph.Location   `yaml:"locations" json:"locations"`
	Connections []graph.Connection `yaml:"connections" json:"connections"`
	Lectures    []graph.Lecture    `yaml:"lectures" json:"lectures"`
	Floors      []rawFloor         `yaml:"floors" json:"floors"`
}

type rawFloor struct {
	Number      int                      `yaml:"number" json:"number"`
	Points      []graph.Point            `yaml:"points" json:"points"`
	Connections []graph.IndoorConnection `yaml:"connections" json:"connections"`
}

// IsSnapshotFile reports whether path has an extension ParseFile understands.
func IsSnapshotFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc *Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err = ParseJSON(data)
	} else {
		doc, err = Parse(data)
	}
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

// Parse reads a YAML snapshot document.
func Parse(content []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(bytes.TrimLeft(content, "\ufeff"), &raw); err != nil {
		return nil, ErrInvalidYAML
	}
	return build(&raw)
}

// ParseJSON reads a JSON snapshot document using the camelCase field names of
// the HTTP API.
func ParseJSON(content []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, ErrInvalidJSON
	}
	return build(&raw)
}

func build(raw *rawDocument) (*Document, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw.Kind))) {
	case "":
		return nil, ErrMissingKind
	case KindCampus:
		campus, err := buildCampus(raw)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: KindCampus, Campus: campus}, nil
	case KindBuilding:
		building, err := buildBuilding(raw)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: KindBuilding, Building: building}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, raw.Kind)
	}
}

func buildCampus(raw *rawDocument) (*graph.Campus, error) {
	campus := &graph.Campus{
		Locations:   raw.Locations,
		Connections: raw.Connections,
		Lectures:    raw.Lectures,
	}

	for i, loc := range campus.Locations {
		if err := graph.Check(loc); err != nil {
			return nil, fmt.Errorf("%w: location %d (%s): %v", ErrInvalidRecord, i, loc.ID, err)
		}
	}
	for i := range campus.Connections {
		c := &campus.Connections[i]
		if c.ID == "" {
			c.ID = ConnectionID(c.From, c.To, c.Type)
		}
		if err := graph.Check(*c); err != nil {
			return nil, fmt.Errorf("%w: connection %d (%s -> %s): %v", ErrInvalidRecord, i, c.From, c.To, err)
		}
	}
	for i, lecture := range campus.Lectures {
		if err := graph.Check(lecture); err != nil {
			return nil, fmt.Errorf("%w: lecture %d (%s): %v", ErrInvalidRecord, i, lecture.ID, err)
		}
	}

	return campus, nil
}

func buildBuilding(raw *rawDocument) (*graph.Building, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return nil, ErrMissingID
	}
	building := &graph.Building{
		ID:     raw.ID,
		Name:   raw.Name,
		Floors: make(graph.FloorPlan, len(raw.Floors)),
	}

	for _, rf := range raw.Floors {
		if _, exists := building.Floors[rf.Number]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateFloor, rf.Number)
		}

		floor := &graph.Floor{Points: rf.Points, Connections: rf.Connections}
		for i := range floor.Points {
			p := &floor.Points[i]
			if p.Floor != 0 && p.Floor != rf.Number {
				return nil, fmt.Errorf("%w: point %s on floor %d says %d", ErrFloorMismatch, p.ID, rf.Number, p.Floor)
			}
			p.Floor = rf.Number
			if err := graph.Check(*p); err != nil {
				return nil, fmt.Errorf("%w: floor %d point %d (%s): %v", ErrInvalidRecord, rf.Number, i, p.ID, err)
			}
		}
		for i, c := range floor.Connections {
			if err := graph.Check(c); err != nil {
				return nil, fmt.Errorf("%w: floor %d connection %d (%s -> %s): %v", ErrInvalidRecord, rf.Number, i, c.From, c.To, err)
			}
		}
		building.Floors[rf.Number] = floor
	}

	return building, nil
}

// ConnectionID derives a stable id for a connection declared without one.
func ConnectionID(from, to string, typ graph.ConnectionType) string {
	return uuid.NewSHA1(connectionNamespace, []byte(from+"|"+to+"|"+string(typ))).String()
}
