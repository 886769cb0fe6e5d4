package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"wayfinder/internal/graph"
	"wayfinder/internal/route"
)

type FindRouteInput struct {
	StartID string `json:"start_id" jsonschema:"id of the location to walk from"`
	EndID   string `json:"end_id,omitempty" jsonschema:"id of the destination location"`
	Room    string `json:"room,omitempty" jsonschema:"room number to walk to instead of end_id"`
}

type FindIndoorRouteInput struct {
	BuildingID string `json:"building_id" jsonschema:"building with a floor plan"`
	StartRoom  string `json:"start_room" jsonschema:"room number, or entrance"`
	StartFloor int    `json:"start_floor,omitempty" jsonschema:"floor of the start room"`
	EndRoom    string `json:"end_room" jsonschema:"room number, or entrance"`
	EndFloor   int    `json:"end_floor,omitempty" jsonschema:"floor of the end room"`
}

type FindLectureRouteInput struct {
	LectureID string `json:"lecture_id" jsonschema:"lecture to walk to"`
	StartID   string `json:"start_id" jsonschema:"id of the location to walk from"`
}

type ListLocationsInput struct {
	Role string `json:"role,omitempty" jsonschema:"start or destination; empty lists every location"`
}

type StepOutput struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Distance  float64 `json:"distance"`
	Direction string  `json:"direction"`
}

type FacilityOutput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
}

type SegmentOutput struct {
	Floor    int      `json:"floor"`
	Points   []string `json:"points"`
	Distance float64  `json:"distance"`
}

type RouteOutput struct {
	Reachable     bool             `json:"reachable"`
	Partial       bool             `json:"partial,omitempty"`
	Path          []string         `json:"path"`
	Segments      []SegmentOutput  `json:"segments,omitempty"`
	Steps         []StepOutput     `json:"steps"`
	TotalDistance float64          `json:"total_distance"`
	EstimatedTime int              `json:"estimated_time_minutes"`
	Directions    []string         `json:"directions"`
	Facilities    []FacilityOutput `json:"facilities"`
}

type LectureRouteOutput struct {
	LectureID   string       `json:"lecture_id"`
	Subject     string       `json:"subject,omitempty"`
	RoomNumber  string       `json:"room_number"`
	Floor       int          `json:"floor"`
	LocationID  string       `json:"location_id"`
	Location    string       `json:"location"`
	Outdoor     RouteOutput  `json:"outdoor"`
	Indoor      *RouteOutput `json:"indoor,omitempty"`
	IndoorError string       `json:"indoor_error,omitempty"`
}

type LocationOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	RoomNumbers []string `json:"room_numbers,omitempty"`
	Floors      []int    `json:"floors,omitempty"`
}

type ListLocationsOutput struct {
	Locations []LocationOutput `json:"locations"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_route",
		Description: "Shortest walking route between two campus locations, or to the location hosting a room",
	}, s.handleFindRoute)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_indoor_route",
		Description: "Route between two rooms of a building, across floors by stairs or elevator",
	}, s.handleFindIndoorRoute)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_lecture_route",
		Description: "Walking route to a lecture, with the indoor leg when the building has a floor plan",
	}, s.handleFindLectureRoute)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_locations",
		Description: "List campus locations, optionally only valid starts or destinations",
	}, s.handleListLocations)
}

func (s *Server) handleFindRoute(ctx context.Context, req *sdk.CallToolRequest, input FindRouteInput) (*sdk.CallToolResult, RouteOutput, error) {
	if input.StartID == "" {
		return nil, RouteOutput{}, fmt.Errorf("start_id is required")
	}
	target := route.ToLocation(input.EndID)
	if input.Room != "" {
		target = route.ToRoom(input.Room)
	}
	if !target.IsRoom() && target.LocationID == "" {
		return nil, RouteOutput{}, fmt.Errorf("end_id or room is required")
	}

	res, err := s.planner.Outdoor(ctx, input.StartID, target)
	if err != nil {
		return nil, RouteOutput{}, err
	}
	return nil, routeOutputFromResult(res), nil
}

func (s *Server) handleFindIndoorRoute(ctx context.Context, req *sdk.CallToolRequest, input FindIndoorRouteInput) (*sdk.CallToolResult, RouteOutput, error) {
	if input.BuildingID == "" {
		return nil, RouteOutput{}, fmt.Errorf("building_id is required")
	}
	if input.StartRoom == "" || input.EndRoom == "" {
		return nil, RouteOutput{}, fmt.Errorf("start_room and end_room are required")
	}

	res, err := s.planner.Indoor(ctx, input.BuildingID, route.IndoorRequest{
		StartRoom:  input.StartRoom,
		StartFloor: input.StartFloor,
		EndRoom:    input.EndRoom,
		EndFloor:   input.EndFloor,
	})
	if err != nil {
		return nil, RouteOutput{}, err
	}
	return nil, routeOutputFromResult(res), nil
}

func (s *Server) handleFindLectureRoute(ctx context.Context, req *sdk.CallToolRequest, input FindLectureRouteInput) (*sdk.CallToolResult, LectureRouteOutput, error) {
	if input.LectureID == "" || input.StartID == "" {
		return nil, LectureRouteOutput{}, fmt.Errorf("lecture_id and start_id are required")
	}

	lr, err := s.planner.Lecture(ctx, input.LectureID, input.StartID)
	if err != nil {
		return nil, LectureRouteOutput{}, err
	}

	out := LectureRouteOutput{
		LectureID:   lr.Lecture.ID,
		Subject:     lr.Lecture.SubjectName,
		RoomNumber:  lr.Lecture.RoomNumber,
		Floor:       lr.Lecture.Floor,
		LocationID:  lr.Location.ID,
		Location:    lr.Location.Name,
		Outdoor:     routeOutputFromResult(lr.Outdoor),
		IndoorError: lr.IndoorError,
	}
	if lr.Indoor != nil {
		indoor := routeOutputFromResult(lr.Indoor)
		out.Indoor = &indoor
	}
	return nil, out, nil
}

func (s *Server) handleListLocations(ctx context.Context, req *sdk.CallToolRequest, input ListLocationsInput) (*sdk.CallToolResult, ListLocationsOutput, error) {
	role := route.LocationRole(input.Role)
	switch role {
	case route.RoleAny, route.RoleStart, route.RoleDestination:
	default:
		return nil, ListLocationsOutput{}, fmt.Errorf("role must be start or destination")
	}

	locations, err := s.planner.Locations(ctx, role)
	if err != nil {
		return nil, ListLocationsOutput{}, err
	}

	output := make([]LocationOutput, 0, len(locations))
	for _, loc := range locations {
		output = append(output, locationOutputFromGraph(loc))
	}
	return nil, ListLocationsOutput{Locations: output}, nil
}

func routeOutputFromResult(res *route.Result) RouteOutput {
	if res == nil {
		return RouteOutput{}
	}
	out := RouteOutput{
		Reachable:     res.Reachable,
		Partial:       res.Partial,
		Path:          append([]string{}, res.Path...),
		Steps:         make([]StepOutput, 0, len(res.Steps)),
		TotalDistance: res.TotalDistance,
		EstimatedTime: res.EstimatedTime,
		Directions:    append([]string{}, res.Directions...),
		Facilities:    make([]FacilityOutput, 0, len(res.Facilities)),
	}
	for _, seg := range res.Segments {
		points := make([]string, 0, len(seg.Points))
		for _, p := range seg.Points {
			points = append(points, p.ID)
		}
		out.Segments = append(out.Segments, SegmentOutput{Floor: seg.Floor, Points: points, Distance: seg.Distance})
	}
	for _, step := range res.Steps {
		out.Steps = append(out.Steps, StepOutput{
			From:      step.From,
			To:        step.To,
			Distance:  step.Distance,
			Direction: step.Direction,
		})
	}
	for _, f := range res.Facilities {
		out.Facilities = append(out.Facilities, FacilityOutput{
			Name:        f.Name,
			Description: f.Description,
			Location:    f.Location,
		})
	}
	return out
}

func locationOutputFromGraph(loc graph.Location) LocationOutput {
	return LocationOutput{
		ID:          loc.ID,
		Name:        loc.Name,
		Type:        string(loc.Type),
		RoomNumbers: append([]string{}, loc.RoomNumbers...),
		Floors:      append([]int{}, loc.Floors...),
	}
}
