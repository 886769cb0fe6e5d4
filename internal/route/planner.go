package route

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wayfinder/internal/graph"
)

// Repository supplies the graph snapshots a planner routes over.
type Repository interface {
	LoadCampus(ctx context.Context) (*graph.Campus, error)
	LoadBuilding(ctx context.Context, id string) (*graph.Building, error)
}

// Recorder receives one observation per routing call.
type Recorder interface {
	ObserveRoute(kind, outcome string, elapsed time.Duration)
}

type Planner struct {
	repo     Repository
	indoor   IndoorOptions
	logger   *zap.Logger
	recorder Recorder
}

type PlannerOption func(*Planner)

func WithIndoorOptions(opts IndoorOptions) PlannerOption {
	return func(p *Planner) { p.indoor = opts }
}

func WithLogger(logger *zap.Logger) PlannerOption {
	return func(p *Planner) { p.logger = logger }
}

func WithRecorder(r Recorder) PlannerOption {
	return func(p *Planner) { p.recorder = r }
}

func NewPlanner(repo Repository, opts ...PlannerOption) *Planner {
	p := &Planner{
		repo:   repo,
		indoor: DefaultIndoorOptions(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LocationRole filters the location list offered to callers.
type LocationRole string

const (
	RoleAny         LocationRole = ""
	RoleStart       LocationRole = "start"
	RoleDestination LocationRole = "destination"
)

func (p *Planner) Locations(ctx context.Context, role LocationRole) ([]graph.Location, error) {
	campus, err := p.repo.LoadCampus(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading campus: %w", err)
	}
	switch role {
	case RoleStart:
		return graph.StartingLocations(campus.Locations), nil
	case RoleDestination:
		return graph.DestinationLocations(campus.Locations), nil
	case RoleAny:
		return campus.Locations, nil
	default:
		return nil, fmt.Errorf("unknown location role %q", role)
	}
}

func (p *Planner) Outdoor(ctx context.Context, startID string, target Target) (res *Result, err error) {
	defer p.observe("outdoor", time.Now(), &res, &err)

	campus, err := p.repo.LoadCampus(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading campus: %w", err)
	}
	res, err = RouteOutdoor(campus, startID, target)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("outdoor route",
		zap.String("start", startID),
		zap.Stringer("target", target),
		zap.Bool("reachable", res.Reachable),
		zap.Float64("distance", res.TotalDistance),
	)
	return res, nil
}

func (p *Planner) Indoor(ctx context.Context, buildingID string, req IndoorRequest) (res *Result, err error) {
	defer p.observe("indoor", time.Now(), &res, &err)

	building, err := p.repo.LoadBuilding(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("loading building %q: %w", buildingID, err)
	}
	res, err = RouteIndoor(building, req, p.indoor)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("indoor route",
		zap.String("building", buildingID),
		zap.String("from", req.StartRoom),
		zap.String("to", req.EndRoom),
		zap.Int("segments", len(res.Segments)),
		zap.Bool("partial", res.Partial),
	)
	return res, nil
}

// LectureRoute walks to the location hosting a lecture and, when that
// location has a floor plan, from its ground floor entrance to the room. When
// the indoor leg cannot be routed the outdoor leg is still returned and
// IndoorError says why.
type LectureRoute struct {
	Lecture     graph.Lecture  `json:"lecture"`
	Location    graph.Location `json:"location"`
	Outdoor     *Result        `json:"outdoor"`
	Indoor      *Result        `json:"indoor,omitempty"`
	IndoorError string         `json:"indoorError,omitempty"`
}

func (p *Planner) Lecture(ctx context.Context, lectureID, startID string) (lr *LectureRoute, err error) {
	start := time.Now()
	defer func() {
		var res *Result
		if lr != nil {
			res = lr.Outdoor
		}
		p.observe("lecture", start, &res, &err)
	}()

	campus, err := p.repo.LoadCampus(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading campus: %w", err)
	}
	lecture, ok := campus.Lecture(lectureID)
	if !ok {
		return nil, fmt.Errorf("lecture %q: %w", lectureID, ErrLectureNotFound)
	}

	var location graph.Location
	if lecture.BuildingID != "" {
		if location, ok = campus.Location(lecture.BuildingID); !ok {
			return nil, fmt.Errorf("lecture %q building %q: %w", lectureID, lecture.BuildingID, ErrUnknownLocation)
		}
	} else if location, ok = campus.BuildingByRoom(lecture.RoomNumber); !ok {
		return nil, fmt.Errorf("room %q: %w", lecture.RoomNumber, ErrRoomNotFound)
	}

	outdoor, err := RouteOutdoor(campus, startID, ToLocation(location.ID))
	if err != nil {
		return nil, err
	}
	lr = &LectureRoute{Lecture: lecture, Location: location, Outdoor: outdoor}

	building, err := p.repo.LoadBuilding(ctx, location.ID)
	if errors.Is(err, ErrBuildingNotFound) {
		return lr, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading building %q: %w", location.ID, err)
	}

	lr.Indoor, err = RouteIndoor(building, IndoorRequest{
		StartRoom:  EntranceRoom,
		StartFloor: 0,
		EndRoom:    lecture.RoomNumber,
		EndFloor:   lecture.Floor,
	}, p.indoor)
	if err != nil {
		p.logger.Warn("indoor leg of lecture route failed",
			zap.String("lecture", lectureID),
			zap.String("building", location.ID),
			zap.Error(err),
		)
		lr.Indoor = nil
		lr.IndoorError = err.Error()
	}
	return lr, nil
}

// Batch routes requests concurrently over a single campus snapshot.
func (p *Planner) Batch(ctx context.Context, requests []Request, limit int) ([]Outcome, error) {
	campus, err := p.repo.LoadCampus(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading campus: %w", err)
	}
	started := time.Now()
	outcomes, err := RouteMany(ctx, campus, requests, limit)
	if err != nil {
		return nil, err
	}
	for _, o := range outcomes {
		if p.recorder != nil {
			p.recorder.ObserveRoute("batch", Classify(o.Result, o.Err), time.Since(started))
		}
	}
	return outcomes, nil
}

func (p *Planner) observe(kind string, start time.Time, res **Result, err *error) {
	if p.recorder == nil {
		return
	}
	p.recorder.ObserveRoute(kind, Classify(*res, *err), time.Since(start))
}

// Classify names the outcome of a routing call for metrics and logs.
func Classify(res *Result, err error) string {
	var connErr *ConnectorError
	switch {
	case err == nil && res != nil && !res.Reachable:
		return "unreachable"
	case err == nil:
		return "ok"
	case IsNotFound(err):
		return "not_found"
	case errors.As(err, &connErr):
		return "no_connector"
	case IsInvalidGraph(err):
		return "invalid_graph"
	default:
		return "error"
	}
}
