package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wayfinder/internal/route"
	"wayfinder/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

type batchItem struct {
	Request route.Request `json:"request"`
	Result  *route.Result `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	role := route.LocationRole(r.URL.Query().Get("role"))
	switch role {
	case route.RoleAny, route.RoleStart, route.RoleDestination:
	default:
		s.respondError(w, http.StatusBadRequest, "role must be start or destination")
		return
	}

	locations, err := s.planner.Locations(r.Context(), role)
	if err != nil {
		s.respondRouteError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, locations)
}

func (s *Server) outdoorRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startID := q.Get("startId")
	target := route.ToLocation(q.Get("endId"))
	if room := q.Get("room"); room != "" {
		target = route.ToRoom(room)
	}
	if startID == "" || (target.LocationID == "" && !target.IsRoom()) {
		s.respondError(w, http.StatusBadRequest, "Missing startId or endId parameters")
		return
	}

	res, err := s.planner.Outdoor(r.Context(), startID, target)
	if err != nil {
		s.respondRouteError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) indoorRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := route.IndoorRequest{
		StartRoom: q.Get("startRoom"),
		EndRoom:   q.Get("endRoom"),
	}
	if req.StartRoom == "" || req.EndRoom == "" {
		s.respondError(w, http.StatusBadRequest, "Missing startRoom or endRoom parameters")
		return
	}
	var err error
	if req.StartFloor, err = floorParam(q.Get("startFloor")); err != nil {
		s.respondError(w, http.StatusBadRequest, "startFloor must be a non-negative integer")
		return
	}
	if req.EndFloor, err = floorParam(q.Get("endFloor")); err != nil {
		s.respondError(w, http.StatusBadRequest, "endFloor must be a non-negative integer")
		return
	}

	res, err := s.planner.Indoor(r.Context(), chi.URLParam(r, "buildingID"), req)
	if err != nil {
		s.respondRouteError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) lectureRoute(w http.ResponseWriter, r *http.Request) {
	startID := r.URL.Query().Get("startId")
	if startID == "" {
		s.respondError(w, http.StatusBadRequest, "Missing startId parameter")
		return
	}

	lr, err := s.planner.Lecture(r.Context(), chi.URLParam(r, "lectureID"), startID)
	if err != nil {
		s.respondRouteError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, lr)
}

func (s *Server) batchRoutes(w http.ResponseWriter, r *http.Request) {
	var requests []route.Request
	if err := json.NewDecoder(r.Body).Decode(&requests); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcomes, err := s.planner.Batch(r.Context(), requests, s.batchLimit)
	if err != nil {
		s.respondRouteError(w, err)
		return
	}

	items := make([]batchItem, len(outcomes))
	for i, o := range outcomes {
		items[i] = batchItem{Request: o.Request, Result: o.Result}
		if o.Err != nil {
			items[i].Error = o.Err.Error()
		}
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) listBuildings(w http.ResponseWriter, r *http.Request) {
	if s.buildings == nil {
		s.respondJSON(w, http.StatusOK, []store.BuildingSummary{})
		return
	}
	buildings, err := s.buildings.ListBuildings(r.Context())
	if err != nil {
		s.respondRouteError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, buildings)
}

func floorParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative floor")
	}
	return n, nil
}

// statusFor maps routing errors onto HTTP statuses.
func statusFor(err error) int {
	var connErr *route.ConnectorError
	switch {
	case route.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &connErr), route.IsInvalidGraph(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondRouteError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("routing failed", zap.Error(err))
		s.respondError(w, status, "internal error")
		return
	}
	s.respondError(w, status, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}
