package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/app/repositories/memory"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/app/services"
)

// recorder is an EventPublisher that keeps every event
type recorder struct {
	mu     sync.Mutex
	events []recorded
}

type recorded struct {
	eventType string
	payload   interface{}
	topics    []string
}

func (r *recorder) Publish(eventType string, payload interface{}, topics ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{eventType, payload, topics})
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.eventType
	}
	return out
}

type env struct {
	t      *testing.T
	ctx    context.Context
	repos  *repositories.Repositories
	svc    *services.Services
	events *recorder
}

func newEnv(t *testing.T, today string) *env {
	t.Helper()
	repos := memory.NewRepositories()
	events := &recorder{}
	now := date(today)
	svc := services.NewServices(services.Deps{
		Repos:  repos,
		Engine: scheduling.NewEngine(repos.Store, zerolog.Nop()),
		Events: events,
		Clock:  func() time.Time { return now },
		Logger: zerolog.Nop(),
	})
	return &env{t: t, ctx: context.Background(), repos: repos, svc: svc, events: events}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func (e *env) course(name, start, end string, maxStudents int) *models.Course {
	e.t.Helper()
	c, err := e.svc.Courses.CreateCourse(e.ctx, &dto.CreateCourseRequest{
		Name: name, StartDate: start, EndDate: end,
		MinimumPassScore: intPtr(70), MaximumStudents: maxStudents,
	})
	if err != nil {
		e.t.Fatalf("create course: %v", err)
	}
	return c
}

func (e *env) room(number int) *models.Room {
	e.t.Helper()
	r, err := e.svc.Rooms.CreateRoom(e.ctx, &dto.CreateRoomRequest{Number: number})
	if err != nil {
		e.t.Fatalf("create room: %v", err)
	}
	return r
}

func (e *env) lecturer(name string) *models.Lecturer {
	e.t.Helper()
	l, err := e.svc.Lecturers.CreateLecturer(e.ctx, &dto.CreatePersonRequest{
		Name: name, PhoneNumber: "0541111111", Email: name + "@gmail.com",
	})
	if err != nil {
		e.t.Fatalf("create lecturer: %v", err)
	}
	return l
}

func (e *env) student(name string) *models.Student {
	e.t.Helper()
	s, err := e.svc.Students.CreateStudent(e.ctx, &dto.CreatePersonRequest{
		Name: name, PhoneNumber: "0542222222", Email: name + "@gmail.com",
	})
	if err != nil {
		e.t.Fatalf("create student: %v", err)
	}
	return s
}

func (e *env) session(c *models.Course, r *models.Room, l *models.Lecturer, day, start, end string) *models.ClassSession {
	e.t.Helper()
	s, err := e.svc.Sessions.CreateSession(e.ctx, &dto.CreateSessionRequest{
		CourseID: c.ID.String(), RoomID: r.ID.String(), LecturerID: l.ID.String(),
		Date: day, StartTime: start, EndTime: end,
	})
	if err != nil {
		e.t.Fatalf("create session: %v", err)
	}
	return s
}

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}
