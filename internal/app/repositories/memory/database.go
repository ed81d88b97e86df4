// Package memory keeps every entity in process memory. It backs the
// "memory" database driver and the engine and service tests.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/keylock"
)

// database is the state shared by the store and every repository
type database struct {
	mu    sync.RWMutex
	locks *keylock.Locker
	now   func() time.Time

	courses     map[uuid.UUID]*models.Course
	rooms       map[uuid.UUID]*models.Room
	lecturers   map[uuid.UUID]*models.Lecturer
	students    map[uuid.UUID]*models.Student
	syllabus    map[uuid.UUID]*models.SyllabusEntry
	sessions    map[uuid.UUID]*models.ClassSession
	enrollments map[uuid.UUID]*models.Enrollment
}

func newDatabase() *database {
	return &database{
		locks:       keylock.New(),
		now:         time.Now,
		courses:     make(map[uuid.UUID]*models.Course),
		rooms:       make(map[uuid.UUID]*models.Room),
		lecturers:   make(map[uuid.UUID]*models.Lecturer),
		students:    make(map[uuid.UUID]*models.Student),
		syllabus:    make(map[uuid.UUID]*models.SyllabusEntry),
		sessions:    make(map[uuid.UUID]*models.ClassSession),
		enrollments: make(map[uuid.UUID]*models.Enrollment),
	}
}

// NewRepositories creates an empty in-memory database and every repository over it
func NewRepositories() *repositories.Repositories {
	db := newDatabase()
	return &repositories.Repositories{
		Store:       &Store{db: db},
		Courses:     &courseRepository{db: db},
		Rooms:       &roomRepository{db: db},
		Lecturers:   &lecturerRepository{db: db},
		Students:    &studentRepository{db: db},
		Syllabus:    &syllabusRepository{db: db},
		Sessions:    &sessionRepository{db: db},
		Enrollments: &enrollmentRepository{db: db},
	}
}

func notFound(resource string, id uuid.UUID) error {
	return apperrors.NewCustomError(apperrors.ErrResourceNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetails(map[string]interface{}{"resource": resource, "id": id.String()})
}

func copyCourse(c *models.Course) *models.Course {
	cp := *c
	cp.Sessions = nil
	cp.Syllabus = nil
	return &cp
}

func copySession(s *models.ClassSession) *models.ClassSession {
	cp := *s
	if s.SyllabusID != nil {
		id := *s.SyllabusID
		cp.SyllabusID = &id
	}
	return &cp
}

// coursesOf returns copies of the courses a student is enrolled in. Callers hold db.mu.
func (db *database) coursesOf(studentID uuid.UUID) []*models.Course {
	var out []*models.Course
	for _, e := range db.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if c, ok := db.courses[e.CourseID]; ok {
			out = append(out, copyCourse(c))
		}
	}
	sortCourses(out)
	return out
}

// details joins a session with the names it references. Callers hold db.mu.
func (db *database) details(s *models.ClassSession) *models.SessionDetails {
	d := &models.SessionDetails{ClassSession: *copySession(s)}
	if c, ok := db.courses[s.CourseID]; ok {
		d.CourseName = c.Name
	}
	if r, ok := db.rooms[s.RoomID]; ok {
		d.RoomNumber = r.Number
	}
	if l, ok := db.lecturers[s.LecturerID]; ok {
		d.LecturerName = l.Name
	}
	return d
}

func sortCourses(cs []*models.Course) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].StartDate.Equal(cs[j].StartDate) {
			return cs[i].StartDate.Before(cs[j].StartDate)
		}
		return cs[i].Name < cs[j].Name
	})
}

func sortSessions(ss []*models.ClassSession) {
	sort.Slice(ss, func(i, j int) bool { return sessionLess(ss[i], ss[j]) })
}

func sortDetails(ds []*models.SessionDetails) {
	sort.Slice(ds, func(i, j int) bool { return sessionLess(&ds[i].ClassSession, &ds[j].ClassSession) })
}

func sessionLess(a, b *models.ClassSession) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.StartTime < b.StartTime
}

func inRange(d, from, to time.Time) bool {
	d = models.DateOnly(d)
	return !d.Before(models.DateOnly(from)) && !d.After(models.DateOnly(to))
}

func sortRooms(rs []*models.Room) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Number < rs[j].Number })
}

func sortSyllabus(es []*models.SyllabusEntry) {
	sort.Slice(es, func(i, j int) bool {
		if !es[i].CreatedAt.Equal(es[j].CreatedAt) {
			return es[i].CreatedAt.Before(es[j].CreatedAt)
		}
		return es[i].Title < es[j].Title
	})
}
