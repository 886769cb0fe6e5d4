package graph

import "sort"

type LocationType string

const (
	LocationBuilding     LocationType = "building"
	LocationBlock        LocationType = "block"
	LocationFacility     LocationType = "facility"
	LocationIntersection LocationType = "intersection"
)

type ConnectionType string

const (
	ConnectionPath     ConnectionType = "path"
	ConnectionCorridor ConnectionType = "corridor"
	ConnectionStairs   ConnectionType = "stairs"
	ConnectionElevator ConnectionType = "elevator"
)

type PointType string

const (
	PointRoom     PointType = "room"
	PointStairs   PointType = "stairs"
	PointElevator PointType = "elevator"
	PointHallway  PointType = "hallway"
	PointEntrance PointType = "entrance"
)

// Node is a vertex of either the outdoor or the indoor graph.
type Node interface {
	NodeID() string
}

// Edge is a weighted connection between two nodes. Reversible edges are
// traversable in both directions at the same weight.
type Edge interface {
	Endpoints() (from, to string)
	Cost() float64
	Reversible() bool
}

type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type Location struct {
	ID          string       `yaml:"id" json:"id" validate:"required"`
	Name        string       `yaml:"name" json:"name" validate:"required"`
	Type        LocationType `yaml:"type" json:"type" validate:"required,oneof=building block facility intersection"`
	RoomNumbers []string     `yaml:"room_numbers,omitempty" json:"roomNumbers,omitempty" validate:"unique,dive,required"`
	Floors      []int        `yaml:"floors,omitempty" json:"floors,omitempty" validate:"unique,dive,min=0"`
	Position    *Position    `yaml:"position,omitempty" json:"position,omitempty"`
	Details     string       `yaml:"details,omitempty" json:"details,omitempty"`
}

func (l Location) NodeID() string { return l.ID }

func (l Location) HasRoom(number string) bool {
	for _, room := range l.RoomNumbers {
		if room == number {
			return true
		}
	}
	return false
}

type Connection struct {
	ID                  string         `yaml:"id" json:"id" validate:"required"`
	From                string         `yaml:"from" json:"from" validate:"required"`
	To                  string         `yaml:"to" json:"to" validate:"required,nefield=From"`
	Distance            float64        `yaml:"distance" json:"distance" validate:"gt=0"`
	Type                ConnectionType `yaml:"type" json:"type" validate:"required,oneof=path corridor stairs elevator"`
	Bidirectional       bool           `yaml:"bidirectional" json:"bidirectional"`
	FacilityName        string         `yaml:"facility_name,omitempty" json:"facilityName,omitempty"`
	FacilityDescription string         `yaml:"facility_description,omitempty" json:"facilityDescription,omitempty"`
}

func (c Connection) Endpoints() (string, string) { return c.From, c.To }
func (c Connection) Cost() float64               { return c.Distance }
func (c Connection) Reversible() bool            { return c.Bidirectional }

// Joins reports whether the connection can be walked from a to b.
func (c Connection) Joins(a, b string) bool {
	if c.From == a && c.To == b {
		return true
	}
	return c.Bidirectional && c.From == b && c.To == a
}

type Point struct {
	ID         string    `yaml:"id" json:"id" validate:"required"`
	X          float64   `yaml:"x" json:"x"`
	Y          float64   `yaml:"y" json:"y"`
	Label      string    `yaml:"label" json:"label"`
	Type       PointType `yaml:"type" json:"type" validate:"required,oneof=room stairs elevator hallway entrance"`
	RoomNumber string    `yaml:"room_number,omitempty" json:"roomNumber,omitempty" validate:"required_if=Type room"`
	Floor      int       `yaml:"floor" json:"floor" validate:"min=0"`
}

func (p Point) NodeID() string { return p.ID }

// IsTransit reports whether the point links floors of a building.
func (p Point) IsTransit() bool {
	return p.Type == PointStairs || p.Type == PointElevator
}

// SameShaft reports whether two transit points are the same physical stairwell
// or elevator on different floors.
func (p Point) SameShaft(other Point) bool {
	return p.Type == other.Type && p.Label == other.Label
}

type IndoorConnection struct {
	From   string  `yaml:"from" json:"from" validate:"required"`
	To     string  `yaml:"to" json:"to" validate:"required,nefield=From"`
	Weight float64 `yaml:"weight" json:"weight" validate:"gt=0"`
}

func (c IndoorConnection) Endpoints() (string, string) { return c.From, c.To }
func (c IndoorConnection) Cost() float64               { return c.Weight }
func (c IndoorConnection) Reversible() bool            { return true }

// Joins reports whether the connection links a and b in either direction.
func (c IndoorConnection) Joins(a, b string) bool {
	return (c.From == a && c.To == b) || (c.From == b && c.To == a)
}

type Floor struct {
	Points      []Point            `yaml:"points" json:"points" validate:"dive"`
	Connections []IndoorConnection `yaml:"connections" json:"connections" validate:"dive"`
}

func (f *Floor) Point(id string) (Point, bool) {
	if f == nil {
		return Point{}, false
	}
	for _, p := range f.Points {
		if p.ID == id {
			return p, true
		}
	}
	return Point{}, false
}

// FloorPlan maps a floor number to that floor's indoor graph.
type FloorPlan map[int]*Floor

func (fp FloorPlan) Numbers() []int {
	numbers := make([]int, 0, len(fp))
	for n := range fp {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

type Building struct {
	ID     string    `yaml:"id" json:"id" validate:"required"`
	Name   string    `yaml:"name" json:"name"`
	Floors FloorPlan `yaml:"floors" json:"floors"`
}

type Lecture struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	SubjectName string `yaml:"subject_name" json:"subjectName"`
	LectureName string `yaml:"lecture_name" json:"lectureName"`
	RoomNumber  string `yaml:"room_number" json:"roomNumber" validate:"required"`
	BuildingID  string `yaml:"building_id,omitempty" json:"buildingId,omitempty"`
	Floor       int    `yaml:"floor" json:"floor" validate:"min=0"`
}
