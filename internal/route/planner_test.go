package route

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"wayfinder/internal/graph"
)

type mockRepo struct {
	campus    *graph.Campus
	buildings map[string]*graph.Building
	err       error
}

func (m *mockRepo) LoadCampus(_ context.Context) (*graph.Campus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.campus, nil
}

func (m *mockRepo) LoadBuilding(_ context.Context, id string) (*graph.Building, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.buildings[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, graph.ErrBuildingNotFound)
	}
	return b, nil
}

type recordedRoute struct {
	kind, outcome string
}

type mockRecorder struct {
	mu       sync.Mutex
	observed []recordedRoute
}

func (m *mockRecorder) ObserveRoute(kind, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed = append(m.observed, recordedRoute{kind, outcome})
}

func lectureCampus() *graph.Campus {
	campus := abcCampus()
	campus.Locations[0].RoomNumbers = []string{"C002", "M201", "A101"}
	campus.Lectures = []graph.Lecture{
		{ID: "algo", SubjectName: "Algorithms", LectureName: "Shortest paths", RoomNumber: "M201", Floor: 2},
		{ID: "snack", SubjectName: "Nutrition", RoomNumber: "C1", BuildingID: "C", Floor: 0},
		{ID: "canteen-talk", SubjectName: "Nutrition", RoomNumber: "C1", Floor: 0},
		{ID: "lost", SubjectName: "Archaeology", RoomNumber: "Z404"},
		{ID: "unmapped", SubjectName: "Statistics", RoomNumber: "A101", Floor: 1},
	}
	return campus
}

func newTestPlanner(rec *mockRecorder) *Planner {
	building := threeFloorBuilding()
	building.ID = "A"
	repo := &mockRepo{
		campus:    lectureCampus(),
		buildings: map[string]*graph.Building{"A": building},
	}
	return NewPlanner(repo, WithRecorder(rec))
}

func TestPlannerOutdoor(t *testing.T) {
	rec := &mockRecorder{}
	p := newTestPlanner(rec)

	res, err := p.Outdoor(context.Background(), "C", ToRoom("M201"))
	if err != nil {
		t.Fatalf("Outdoor: %v", err)
	}
	if res.TotalDistance != 180 {
		t.Errorf("TotalDistance = %v", res.TotalDistance)
	}

	_, err = p.Outdoor(context.Background(), "C", ToLocation("nowhere"))
	if !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("expected ErrUnknownLocation, got %v", err)
	}

	want := []recordedRoute{{"outdoor", "ok"}, {"outdoor", "not_found"}}
	if len(rec.observed) != 2 || rec.observed[0] != want[0] || rec.observed[1] != want[1] {
		t.Errorf("observed = %+v", rec.observed)
	}
}

func TestPlannerIndoor(t *testing.T) {
	p := newTestPlanner(&mockRecorder{})

	res, err := p.Indoor(context.Background(), "A", IndoorRequest{StartRoom: EntranceRoom, StartFloor: 0, EndRoom: "CS101", EndFloor: 1})
	if err != nil {
		t.Fatalf("Indoor: %v", err)
	}
	if len(res.Segments) != 2 {
		t.Errorf("segments = %d, want 2", len(res.Segments))
	}

	_, err = p.Indoor(context.Background(), "B", IndoorRequest{StartRoom: EntranceRoom, EndRoom: "CS101", EndFloor: 1})
	if !errors.Is(err, ErrBuildingNotFound) {
		t.Errorf("expected ErrBuildingNotFound, got %v", err)
	}
}

func TestPlannerLecture(t *testing.T) {
	p := newTestPlanner(&mockRecorder{})

	t.Run("outdoor and indoor", func(t *testing.T) {
		lr, err := p.Lecture(context.Background(), "algo", "C")
		if err != nil {
			t.Fatalf("Lecture: %v", err)
		}
		if lr.Location.ID != "A" {
			t.Errorf("Location = %s", lr.Location.ID)
		}
		if lr.Outdoor.TotalDistance != 180 {
			t.Errorf("outdoor distance = %v", lr.Outdoor.TotalDistance)
		}
		if lr.Indoor == nil {
			t.Fatal("expected indoor leg")
		}
		if first := lr.Indoor.Path[0]; first != "entrance_0_1" {
			t.Errorf("indoor leg starts at %s", first)
		}
		if last := lr.Indoor.Path[len(lr.Indoor.Path)-1]; last != "room_2_1" {
			t.Errorf("indoor leg ends at %s", last)
		}
	})

	t.Run("no floor plan", func(t *testing.T) {
		lr, err := p.Lecture(context.Background(), "snack", "A")
		if err != nil {
			t.Fatalf("Lecture: %v", err)
		}
		if lr.Indoor != nil {
			t.Errorf("expected no indoor leg, got %+v", lr.Indoor)
		}
		if lr.Location.ID != "C" {
			t.Errorf("Location = %s", lr.Location.ID)
		}
	})

	t.Run("unknown lecture", func(t *testing.T) {
		_, err := p.Lecture(context.Background(), "missing", "A")
		if !errors.Is(err, ErrLectureNotFound) {
			t.Fatalf("expected ErrLectureNotFound, got %v", err)
		}
	})

	t.Run("facility rooms do not host lectures", func(t *testing.T) {
		_, err := p.Lecture(context.Background(), "canteen-talk", "A")
		if !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("expected ErrRoomNotFound, got %v", err)
		}
	})

	t.Run("indoor failure keeps outdoor leg", func(t *testing.T) {
		lr, err := p.Lecture(context.Background(), "unmapped", "C")
		if err != nil {
			t.Fatalf("Lecture: %v", err)
		}
		if lr.Location.ID != "A" || lr.Outdoor == nil || lr.Outdoor.TotalDistance != 180 {
			t.Fatalf("unexpected outdoor leg: %+v", lr)
		}
		if lr.Indoor != nil {
			t.Errorf("expected no indoor leg, got %+v", lr.Indoor)
		}
		if !strings.Contains(lr.IndoorError, ErrPointNotFound.Error()) {
			t.Errorf("IndoorError = %q", lr.IndoorError)
		}
	})

	t.Run("room nobody hosts", func(t *testing.T) {
		_, err := p.Lecture(context.Background(), "lost", "A")
		if !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("expected ErrRoomNotFound, got %v", err)
		}
	})
}

func TestPlannerLocations(t *testing.T) {
	p := newTestPlanner(&mockRecorder{})
	ctx := context.Background()

	all, err := p.Locations(ctx, RoleAny)
	if err != nil || len(all) != 3 {
		t.Fatalf("all = %v, %v", all, err)
	}
	starts, _ := p.Locations(ctx, RoleStart)
	if len(starts) != 2 {
		t.Errorf("starts = %+v", starts)
	}
	dests, _ := p.Locations(ctx, RoleDestination)
	if len(dests) != 2 {
		t.Errorf("destinations = %+v", dests)
	}
	if _, err := p.Locations(ctx, "sideways"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestPlannerBatch(t *testing.T) {
	rec := &mockRecorder{}
	p := newTestPlanner(rec)

	outcomes, err := p.Batch(context.Background(), []Request{
		{Start: "A", Target: ToLocation("C")},
		{Start: "A", Target: ToRoom("nope")},
	}, 4)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(outcomes) != 2 || outcomes[0].Err != nil || outcomes[1].Err == nil {
		t.Errorf("outcomes = %+v", outcomes)
	}
	if len(rec.observed) != 2 || rec.observed[1].outcome != "not_found" {
		t.Errorf("observed = %+v", rec.observed)
	}
}

func TestPlannerRepositoryError(t *testing.T) {
	boom := errors.New("disk on fire")
	p := NewPlanner(&mockRepo{err: boom})

	if _, err := p.Outdoor(context.Background(), "A", ToLocation("B")); !errors.Is(err, boom) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
	if _, err := p.Lecture(context.Background(), "x", "A"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
}
