package route

import "wayfinder/internal/graph"

// Step is one traversed edge or floor change.
type Step struct {
	From                string  `json:"from"`
	To                  string  `json:"to"`
	Distance            float64 `json:"distance"`
	Direction           string  `json:"direction"`
	ConnectionID        string  `json:"connectionId,omitempty"`
	FacilityName        string  `json:"facilityName,omitempty"`
	FacilityDescription string  `json:"facilityDescription,omitempty"`
}

type Facility struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Location     string `json:"location"`
	ConnectionID string `json:"connectionId"`
}

// Segment is the stretch of an indoor route on one floor.
type Segment struct {
	Floor    int           `json:"floor"`
	Points   []graph.Point `json:"points"`
	Distance float64       `json:"distance"`
}

// Degenerate reports whether the segment only marks a floor passed through on
// the stairs or elevator.
func (s Segment) Degenerate() bool {
	if len(s.Points) < 2 {
		return false
	}
	for _, p := range s.Points[1:] {
		if p.ID != s.Points[0].ID {
			return false
		}
	}
	return true
}

// Result is a composed route. Steps are a static sequence that callers can
// replay one index at a time.
type Result struct {
	Reachable     bool       `json:"reachable"`
	Partial       bool       `json:"partial,omitempty"`
	Path          []string   `json:"path"`
	Segments      []Segment  `json:"segments,omitempty"`
	Steps         []Step     `json:"steps"`
	TotalDistance float64    `json:"totalDistance"`
	EstimatedTime int        `json:"estimatedTime"`
	Directions    []string   `json:"directions"`
	Facilities    []Facility `json:"facilities"`
}
