package route

import (
	"errors"
	"fmt"

	"wayfinder/internal/graph"
)

var (
	ErrUnknownLocation    = errors.New("unknown location")
	ErrRoomNotFound       = errors.New("room not found")
	ErrPointNotFound      = errors.New("point not found")
	ErrNoConnector        = errors.New("no cross-floor connector")
	ErrConnectionNotFound = errors.New("connection not found for path edge")
	ErrLectureNotFound    = errors.New("lecture not found")
	ErrBuildingNotFound   = graph.ErrBuildingNotFound
)

// ConnectorError reports the floor on which the stairwell or elevator chosen
// on the start floor has no counterpart. Partial holds the segments composed
// before the gap.
type ConnectorError struct {
	Floor   int
	Type    graph.PointType
	Label   string
	Partial []Segment
}

func (e *ConnectorError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: floor %d has no stairs or elevator", ErrNoConnector, e.Floor)
	}
	return fmt.Sprintf("%s: floor %d has no %s labelled %q", ErrNoConnector, e.Floor, e.Type, e.Label)
}

func (e *ConnectorError) Unwrap() error {
	return ErrNoConnector
}

// IsNotFound reports whether err means a requested location, room, point,
// lecture or building does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownLocation) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrPointNotFound) ||
		errors.Is(err, ErrLectureNotFound) ||
		errors.Is(err, ErrBuildingNotFound)
}

// IsInvalidGraph reports whether err comes from an inconsistent snapshot.
func IsInvalidGraph(err error) bool {
	return errors.Is(err, graph.ErrUnknownNode) ||
		errors.Is(err, graph.ErrDuplicateNode) ||
		errors.Is(err, graph.ErrNonPositiveWeight) ||
		errors.Is(err, graph.ErrSelfLoop) ||
		errors.Is(err, ErrConnectionNotFound)
}
