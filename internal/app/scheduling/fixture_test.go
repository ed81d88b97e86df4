package scheduling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/app/repositories/memory"
	"github.com/yigit/coursesched/internal/app/scheduling"
)

// Engine fixtures backed by the in-memory store

type fixture struct {
	t      *testing.T
	ctx    context.Context
	repos  *repositories.Repositories
	engine *scheduling.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories()
	return &fixture{
		t:      t,
		ctx:    context.Background(),
		repos:  repos,
		engine: scheduling.NewEngine(repos.Store, zerolog.Nop()),
	}
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func clock(s string) models.TimeOfDay {
	t, err := models.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *fixture) course(name, start, end string, maxStudents int) *models.Course {
	f.t.Helper()
	c := &models.Course{Name: name, StartDate: day(start), EndDate: day(end), MinimumPassScore: 60, MaximumStudents: maxStudents}
	if err := f.repos.Courses.Create(f.ctx, c); err != nil {
		f.t.Fatalf("create course: %v", err)
	}
	return c
}

func (f *fixture) room(number int) *models.Room {
	f.t.Helper()
	r := &models.Room{Number: number}
	if err := f.repos.Rooms.Create(f.ctx, r); err != nil {
		f.t.Fatalf("create room: %v", err)
	}
	return r
}

func (f *fixture) lecturer(name string) *models.Lecturer {
	f.t.Helper()
	l := &models.Lecturer{Name: name, Email: name + "@example.com", PhoneNumber: "0541111111"}
	if err := f.repos.Lecturers.Create(f.ctx, l); err != nil {
		f.t.Fatalf("create lecturer: %v", err)
	}
	return l
}

func (f *fixture) student(name string) *models.Student {
	f.t.Helper()
	s := &models.Student{Name: name, Email: name + "@example.com", PhoneNumber: "0542222222"}
	if err := f.repos.Students.Create(f.ctx, s); err != nil {
		f.t.Fatalf("create student: %v", err)
	}
	return s
}

func (f *fixture) syllabus(courseID uuid.UUID, title string) *models.SyllabusEntry {
	f.t.Helper()
	e := &models.SyllabusEntry{CourseID: courseID, Title: title}
	if err := f.repos.Syllabus.Create(f.ctx, e); err != nil {
		f.t.Fatalf("create syllabus entry: %v", err)
	}
	return e
}

func sessionReq(c *models.Course, r *models.Room, l *models.Lecturer, date, start, end string) scheduling.SessionRequest {
	return scheduling.SessionRequest{
		CourseID:   c.ID,
		RoomID:     r.ID,
		LecturerID: l.ID,
		Date:       day(date),
		StartTime:  clock(start),
		EndTime:    clock(end),
	}
}

func (f *fixture) admit(req scheduling.SessionRequest) *models.ClassSession {
	f.t.Helper()
	s, err := f.engine.AdmitSession(f.ctx, req)
	if err != nil {
		f.t.Fatalf("AdmitSession should succeed: %v", err)
	}
	return s
}

func assertKind(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
