package memory

import (
	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// snapshot holds the rows one removal deleted so an aborted unit can put them back
type snapshot struct {
	course      *models.Course
	room        *models.Room
	lecturer    *models.Lecturer
	student     *models.Student
	sessions    []*models.ClassSession
	syllabus    []*models.SyllabusEntry
	enrollments []*models.Enrollment
}

// requireSessionRefs fails with not found when a row the session points at is gone. Callers hold db.mu.
func (db *database) requireSessionRefs(s *models.ClassSession) error {
	if _, ok := db.courses[s.CourseID]; !ok {
		return notFound("course", s.CourseID)
	}
	if _, ok := db.rooms[s.RoomID]; !ok {
		return notFound("room", s.RoomID)
	}
	if _, ok := db.lecturers[s.LecturerID]; !ok {
		return notFound("lecturer", s.LecturerID)
	}
	if s.SyllabusID != nil {
		if _, ok := db.syllabus[*s.SyllabusID]; !ok {
			return notFound("syllabus entry", *s.SyllabusID)
		}
	}
	return nil
}

func (db *database) removeCourse(id uuid.UUID) (*snapshot, error) {
	c, ok := db.courses[id]
	if !ok {
		return nil, notFound("course", id)
	}
	snap := &snapshot{course: c}
	for sid, s := range db.sessions {
		if s.CourseID == id {
			snap.sessions = append(snap.sessions, s)
			delete(db.sessions, sid)
		}
	}
	for eid, e := range db.syllabus {
		if e.CourseID == id {
			snap.syllabus = append(snap.syllabus, e)
			delete(db.syllabus, eid)
		}
	}
	for eid, e := range db.enrollments {
		if e.CourseID == id {
			snap.enrollments = append(snap.enrollments, e)
			delete(db.enrollments, eid)
		}
	}
	delete(db.courses, id)
	return snap, nil
}

// removeScheduler deletes a room or lecturer unless a session still uses it
func (db *database) removeScheduler(kind models.ResourceType, id uuid.UUID, uses func(*models.ClassSession) bool) (*snapshot, error) {
	snap := &snapshot{}
	switch kind {
	case models.ResourceRoom:
		r, ok := db.rooms[id]
		if !ok {
			return nil, notFound("room", id)
		}
		snap.room = r
	default:
		l, ok := db.lecturers[id]
		if !ok {
			return nil, notFound("lecturer", id)
		}
		snap.lecturer = l
	}
	for _, s := range db.sessions {
		if uses(s) {
			return nil, apperrors.NewCustomError(apperrors.ErrResourceInUse, string(kind)+" has scheduled class sessions")
		}
	}
	delete(db.rooms, id)
	delete(db.lecturers, id)
	return snap, nil
}

func (db *database) removeStudent(id uuid.UUID) (*snapshot, error) {
	st, ok := db.students[id]
	if !ok {
		return nil, notFound("student", id)
	}
	snap := &snapshot{student: st}
	for eid, e := range db.enrollments {
		if e.StudentID == id {
			snap.enrollments = append(snap.enrollments, e)
			delete(db.enrollments, eid)
		}
	}
	delete(db.students, id)
	return snap, nil
}

// restore puts back what a removal deleted. Callers hold db.mu.
func (db *database) restore(snap *snapshot) {
	if snap.course != nil {
		db.courses[snap.course.ID] = snap.course
	}
	if snap.room != nil {
		db.rooms[snap.room.ID] = snap.room
	}
	if snap.lecturer != nil {
		db.lecturers[snap.lecturer.ID] = snap.lecturer
	}
	if snap.student != nil {
		db.students[snap.student.ID] = snap.student
	}
	for _, s := range snap.sessions {
		db.sessions[s.ID] = s
	}
	for _, e := range snap.syllabus {
		db.syllabus[e.ID] = e
	}
	for _, e := range snap.enrollments {
		db.enrollments[e.ID] = e
	}
}
