package graph

import "errors"

// ErrBuildingNotFound is returned by repositories that have no floor plan for
// the requested building.
var ErrBuildingNotFound = errors.New("building not found")

// Campus is the outdoor snapshot handed to the router for a single request.
type Campus struct {
	Locations   []Location   `yaml:"locations" json:"locations"`
	Connections []Connection `yaml:"connections" json:"connections"`
	Lectures    []Lecture    `yaml:"lectures,omitempty" json:"lectures,omitempty"`
}

func (c *Campus) Location(id string) (Location, bool) {
	if c == nil {
		return Location{}, false
	}
	for _, loc := range c.Locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return Location{}, false
}

// LocationByRoom returns the first location listing the room number.
func (c *Campus) LocationByRoom(number string) (Location, bool) {
	if c == nil {
		return Location{}, false
	}
	for _, loc := range c.Locations {
		if loc.HasRoom(number) {
			return loc, true
		}
	}
	return Location{}, false
}

// BuildingByRoom is LocationByRoom restricted to buildings and blocks, the
// only locations that host lectures.
func (c *Campus) BuildingByRoom(number string) (Location, bool) {
	if c == nil {
		return Location{}, false
	}
	for _, loc := range c.Locations {
		if loc.Type != LocationBuilding && loc.Type != LocationBlock {
			continue
		}
		if loc.HasRoom(number) {
			return loc, true
		}
	}
	return Location{}, false
}

func (c *Campus) Lecture(id string) (Lecture, bool) {
	if c == nil {
		return Lecture{}, false
	}
	for _, lecture := range c.Lectures {
		if lecture.ID == id {
			return lecture, true
		}
	}
	return Lecture{}, false
}

// Merge appends the records of other after the records of c.
func (c *Campus) Merge(other *Campus) {
	if other == nil {
		return
	}
	c.Locations = append(c.Locations, other.Locations...)
	c.Connections = append(c.Connections, other.Connections...)
	c.Lectures = append(c.Lectures, other.Lectures...)
}

// Adjacency builds the outdoor routing graph of the snapshot.
func (c *Campus) Adjacency() (*Adjacency, error) {
	return BuildAdjacency(c.Locations, c.Connections)
}

// StartingLocations lists the locations a walk can begin from.
func StartingLocations(locations []Location) []Location {
	var out []Location
	for _, loc := range locations {
		switch loc.Type {
		case LocationBuilding, LocationBlock, LocationFacility:
			out = append(out, loc)
		}
	}
	return out
}

// DestinationLocations lists buildings and facilities that host at least one room.
func DestinationLocations(locations []Location) []Location {
	var out []Location
	for _, loc := range locations {
		if (loc.Type == LocationBuilding || loc.Type == LocationFacility) && len(loc.RoomNumbers) > 0 {
			out = append(out, loc)
		}
	}
	return out
}

// Adjacency builds the indoor routing graph of one floor.
func (f *Floor) Adjacency() (*Adjacency, error) {
	return BuildAdjacency(f.Points, f.Connections)
}
