// Package scheduling decides whether class sessions and enrollments may be
// admitted without breaking room, lecturer, course or capacity exclusivity,
// and derives course readiness.
package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
)

// ResourceKey names one resource admissions are serialized on, e.g. "room:<uuid>".
type ResourceKey string

func resourceKey(t models.ResourceType, id uuid.UUID) ResourceKey {
	return ResourceKey(string(t) + ":" + id.String())
}

// RoomKey is the admission key of a room
func RoomKey(id uuid.UUID) ResourceKey { return resourceKey(models.ResourceRoom, id) }

// LecturerKey is the admission key of a lecturer
func LecturerKey(id uuid.UUID) ResourceKey { return resourceKey(models.ResourceLecturer, id) }

// CourseKey is the admission key of a course
func CourseKey(id uuid.UUID) ResourceKey { return resourceKey(models.ResourceCourse, id) }

// StudentKey is the admission key of a student
func StudentKey(id uuid.UUID) ResourceKey { return resourceKey(models.ResourceStudent, id) }

// SessionFilter selects committed sessions. Nil fields do not constrain.
type SessionFilter struct {
	RoomID     *uuid.UUID
	LecturerID *uuid.UUID
	CourseID   *uuid.UUID
	Date       *time.Time // Sessions on exactly this day
	Before     *time.Time // Sessions strictly before this day
	After      *time.Time // Sessions strictly after this day
}

// Matches reports whether s is selected by f. Stores without a query
// language use it to evaluate filters in memory.
func (f SessionFilter) Matches(s *models.ClassSession) bool {
	if f.RoomID != nil && s.RoomID != *f.RoomID {
		return false
	}
	if f.LecturerID != nil && s.LecturerID != *f.LecturerID {
		return false
	}
	if f.CourseID != nil && s.CourseID != *f.CourseID {
		return false
	}
	day := models.DateOnly(s.Date)
	if f.Date != nil && !day.Equal(models.DateOnly(*f.Date)) {
		return false
	}
	if f.Before != nil && !day.Before(models.DateOnly(*f.Before)) {
		return false
	}
	if f.After != nil && !day.After(models.DateOnly(*f.After)) {
		return false
	}
	return true
}

// Store is what the engine needs from persistence. Lookups of absent
// entities return an error wrapping apperrors.ErrResourceNotFound.
type Store interface {
	FindCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	FindRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	FindLecturer(ctx context.Context, id uuid.UUID) (*models.Lecturer, error)
	FindStudent(ctx context.Context, id uuid.UUID) (*models.Student, error)
	FindSyllabusEntry(ctx context.Context, id uuid.UUID) (*models.SyllabusEntry, error)

	ListSessions(ctx context.Context, filter SessionFilter) ([]*models.ClassSession, error)
	CountSessions(ctx context.Context, filter SessionFilter) (int, error)
	CountSyllabusEntries(ctx context.Context, courseID uuid.UUID) (int, error)
	CountEnrollments(ctx context.Context, courseID uuid.UUID) (int, error)
	EnrollmentExists(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
	ListEnrollmentsForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error)

	CommitSession(ctx context.Context, session *models.ClassSession) (*models.ClassSession, error)
	CommitEnrollment(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	UpdateCourseFields(ctx context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error)
	SetCourseReady(ctx context.Context, id uuid.UUID, ready bool) error
	// Remove deletes a course, room, lecturer or student. Courses cascade to
	// their sessions, syllabus entries and enrollments, students to their
	// enrollments. Rooms and lecturers still scheduled fail with ErrResourceInUse.
	Remove(ctx context.Context, kind models.ResourceType, id uuid.UUID) error

	// WithinTx runs fn as one atomic unit holding an exclusive lock on every
	// key. fn must use the Store it is given. Nothing fn wrote survives if it
	// returns an error.
	WithinTx(ctx context.Context, keys []ResourceKey, fn func(ctx context.Context, tx Store) error) error
}
