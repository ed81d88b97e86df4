package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// Store implements scheduling.Store in memory. Inside WithinTx every write
// records how to undo itself, and the undo log is replayed if fn fails.
type Store struct {
	db   *database
	undo *[]func()
}

var _ scheduling.Store = (*Store)(nil)

func (s *Store) recordUndo(fn func()) {
	if s.undo != nil {
		*s.undo = append(*s.undo, fn)
	}
}

// FindCourse returns a course by ID
func (s *Store) FindCourse(_ context.Context, id uuid.UUID) (*models.Course, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := s.db.courses[id]
	if !ok {
		return nil, notFound("course", id)
	}
	return copyCourse(c), nil
}

// FindRoom returns a room by ID
func (s *Store) FindRoom(_ context.Context, id uuid.UUID) (*models.Room, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	r, ok := s.db.rooms[id]
	if !ok {
		return nil, notFound("room", id)
	}
	cp := *r
	return &cp, nil
}

// FindLecturer returns a lecturer by ID
func (s *Store) FindLecturer(_ context.Context, id uuid.UUID) (*models.Lecturer, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	l, ok := s.db.lecturers[id]
	if !ok {
		return nil, notFound("lecturer", id)
	}
	cp := *l
	return &cp, nil
}

// FindStudent returns a student by ID
func (s *Store) FindStudent(_ context.Context, id uuid.UUID) (*models.Student, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	st, ok := s.db.students[id]
	if !ok {
		return nil, notFound("student", id)
	}
	cp := *st
	return &cp, nil
}

// FindSyllabusEntry returns a syllabus entry by ID
func (s *Store) FindSyllabusEntry(_ context.Context, id uuid.UUID) (*models.SyllabusEntry, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	e, ok := s.db.syllabus[id]
	if !ok {
		return nil, notFound("syllabus entry", id)
	}
	cp := *e
	cp.References = append([]string(nil), e.References...)
	return &cp, nil
}

// ListSessions returns the sessions matching filter, ordered by date and start time
func (s *Store) ListSessions(_ context.Context, filter scheduling.SessionFilter) ([]*models.ClassSession, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var out []*models.ClassSession
	for _, cs := range s.db.sessions {
		if filter.Matches(cs) {
			out = append(out, copySession(cs))
		}
	}
	sortSessions(out)
	return out, nil
}

// CountSessions counts the sessions matching filter
func (s *Store) CountSessions(_ context.Context, filter scheduling.SessionFilter) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n := 0
	for _, cs := range s.db.sessions {
		if filter.Matches(cs) {
			n++
		}
	}
	return n, nil
}

// CountSyllabusEntries counts the syllabus entries of a course
func (s *Store) CountSyllabusEntries(_ context.Context, courseID uuid.UUID) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n := 0
	for _, e := range s.db.syllabus {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

// CountEnrollments counts the students enrolled in a course
func (s *Store) CountEnrollments(_ context.Context, courseID uuid.UUID) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n := 0
	for _, e := range s.db.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

// EnrollmentExists reports whether the student is enrolled in the course
func (s *Store) EnrollmentExists(_ context.Context, studentID, courseID uuid.UUID) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, e := range s.db.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// ListEnrollmentsForStudent returns the courses a student is enrolled in
func (s *Store) ListEnrollmentsForStudent(_ context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.coursesOf(studentID), nil
}

// CommitSession stores an admitted session
func (s *Store) CommitSession(_ context.Context, session *models.ClassSession) (*models.ClassSession, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.requireSessionRefs(session); err != nil {
		return nil, err
	}
	stored := copySession(session)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Date = models.DateOnly(stored.Date)
	stored.CreatedAt = s.db.now()
	s.db.sessions[stored.ID] = stored

	id := stored.ID
	s.recordUndo(func() { delete(s.db.sessions, id) })
	return copySession(stored), nil
}

// CommitEnrollment stores an admitted enrollment
func (s *Store) CommitEnrollment(_ context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.students[enrollment.StudentID]; !ok {
		return nil, notFound("student", enrollment.StudentID)
	}
	if _, ok := s.db.courses[enrollment.CourseID]; !ok {
		return nil, notFound("course", enrollment.CourseID)
	}
	for _, e := range s.db.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, apperrors.ErrAlreadyEnrolled.Error())
		}
	}
	stored := *enrollment
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.EnrolledAt = s.db.now()
	s.db.enrollments[stored.ID] = &stored

	id := stored.ID
	s.recordUndo(func() { delete(s.db.enrollments, id) })
	out := stored
	return &out, nil
}

// Remove deletes a course, room, lecturer or student. A course takes its
// sessions, syllabus entries and enrollments with it, a student its
// enrollments. Rooms and lecturers with sessions are in use.
func (s *Store) Remove(_ context.Context, kind models.ResourceType, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var removed *snapshot
	var err error
	switch kind {
	case models.ResourceCourse:
		removed, err = s.db.removeCourse(id)
	case models.ResourceRoom:
		removed, err = s.db.removeScheduler(kind, id, func(cs *models.ClassSession) bool { return cs.RoomID == id })
	case models.ResourceLecturer:
		removed, err = s.db.removeScheduler(kind, id, func(cs *models.ClassSession) bool { return cs.LecturerID == id })
	case models.ResourceStudent:
		removed, err = s.db.removeStudent(id)
	default:
		return fmt.Errorf("cannot remove resource of type %q", kind)
	}
	if err != nil {
		return err
	}
	s.recordUndo(func() { s.db.restore(removed) })
	return nil
}

// UpdateCourseFields applies the supplied fields of update to a course
func (s *Store) UpdateCourseFields(_ context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.courses[id]
	if !ok {
		return nil, notFound("course", id)
	}
	before := *c
	update.Apply(c)
	c.UpdatedAt = s.db.now()
	s.recordUndo(func() { *c = before })
	return copyCourse(c), nil
}

// SetCourseReady stores the readiness flag of a course
func (s *Store) SetCourseReady(_ context.Context, id uuid.UUID, ready bool) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.courses[id]
	if !ok {
		return notFound("course", id)
	}
	before := c.Ready
	c.Ready = ready
	s.recordUndo(func() { c.Ready = before })
	return nil
}

// WithinTx locks every key, in sorted order, for the duration of fn
func (s *Store) WithinTx(ctx context.Context, keys []scheduling.ResourceKey, fn func(ctx context.Context, tx scheduling.Store) error) error {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	unlock, err := s.db.locks.LockAll(ctx, names...)
	if err != nil {
		return err
	}
	defer unlock()

	undo := make([]func(), 0, 2)
	tx := &Store{db: s.db, undo: &undo}
	if err := fn(ctx, tx); err != nil {
		s.db.mu.Lock()
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		s.db.mu.Unlock()
		return err
	}
	return nil
}

// SetClock replaces the clock used for timestamps
func (s *Store) SetClock(now func() time.Time) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.now = now
}
