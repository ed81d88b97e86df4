package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

type courseRepository struct{ db *database }

func (r *courseRepository) Create(_ context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := r.db.now()
	course.StartDate = models.DateOnly(course.StartDate)
	course.EndDate = models.DateOnly(course.EndDate)
	course.CreatedAt, course.UpdatedAt = now, now
	r.db.courses[course.ID] = copyCourse(course)
	return nil
}

func (r *courseRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.courses[id]
	if !ok {
		return nil, notFound("course", id)
	}
	return copyCourse(c), nil
}

func (r *courseRepository) List(_ context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]*models.Course, 0, len(r.db.courses))
	for _, c := range r.db.courses {
		all = append(all, copyCourse(c))
	}
	sortCourses(all)

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.Course{}, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type roomRepository struct{ db *database }

func (r *roomRepository) Create(_ context.Context, room *models.Room) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.rooms {
		if existing.Number == room.Number {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "room number already exists")
		}
	}
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	cp := *room
	r.db.rooms[room.ID] = &cp
	return nil
}

func (r *roomRepository) GetAll(_ context.Context) ([]*models.Room, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*models.Room, 0, len(r.db.rooms))
	for _, room := range r.db.rooms {
		cp := *room
		out = append(out, &cp)
	}
	sortRooms(out)
	return out, nil
}

type lecturerRepository struct{ db *database }

func (r *lecturerRepository) Create(_ context.Context, lecturer *models.Lecturer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if lecturer.ID == uuid.Nil {
		lecturer.ID = uuid.New()
	}
	cp := *lecturer
	r.db.lecturers[lecturer.ID] = &cp
	return nil
}

func (r *lecturerRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Lecturer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	l, ok := r.db.lecturers[id]
	if !ok {
		return nil, notFound("lecturer", id)
	}
	cp := *l
	return &cp, nil
}

// taughtCourses returns the distinct courses with a session of the lecturer accepted by keep
func (r *lecturerRepository) taughtCourses(id uuid.UUID, keep func(*models.Course, *models.ClassSession) bool) []*models.Course {
	seen := make(map[uuid.UUID]bool)
	var out []*models.Course
	for _, s := range r.db.sessions {
		if s.LecturerID != id || seen[s.CourseID] {
			continue
		}
		c, ok := r.db.courses[s.CourseID]
		if !ok || !keep(c, s) {
			continue
		}
		seen[c.ID] = true
		out = append(out, copyCourse(c))
	}
	sortCourses(out)
	return out
}

func (r *lecturerRepository) CurrentCourses(_ context.Context, id uuid.UUID, day time.Time) ([]*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.taughtCourses(id, func(c *models.Course, _ *models.ClassSession) bool {
		return c.Contains(day)
	}), nil
}

func (r *lecturerRepository) CoursesInRange(_ context.Context, id uuid.UUID, from, to time.Time) ([]*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.taughtCourses(id, func(_ *models.Course, s *models.ClassSession) bool {
		return inRange(s.Date, from, to)
	}), nil
}

func (r *lecturerRepository) Schedule(_ context.Context, id uuid.UUID, from, to time.Time) ([]*models.SessionDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []*models.SessionDetails
	for _, s := range r.db.sessions {
		if s.LecturerID == id && inRange(s.Date, from, to) {
			out = append(out, r.db.details(s))
		}
	}
	sortDetails(out)
	return out, nil
}

type studentRepository struct{ db *database }

func (r *studentRepository) Create(_ context.Context, student *models.Student) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	cp := *student
	r.db.students[student.ID] = &cp
	return nil
}

func (r *studentRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.students[id]
	if !ok {
		return nil, notFound("student", id)
	}
	cp := *s
	return &cp, nil
}

func (r *studentRepository) CurrentCourses(_ context.Context, id uuid.UUID, day time.Time) ([]*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []*models.Course
	for _, c := range r.db.coursesOf(id) {
		if c.Contains(day) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *studentRepository) Courses(_ context.Context, id uuid.UUID) ([]*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.coursesOf(id), nil
}

func (r *studentRepository) Schedule(_ context.Context, id uuid.UUID, from, to time.Time) ([]*models.SessionDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	enrolled := make(map[uuid.UUID]bool)
	for _, e := range r.db.enrollments {
		if e.StudentID == id {
			enrolled[e.CourseID] = true
		}
	}
	var out []*models.SessionDetails
	for _, s := range r.db.sessions {
		if enrolled[s.CourseID] && inRange(s.Date, from, to) {
			out = append(out, r.db.details(s))
		}
	}
	sortDetails(out)
	return out, nil
}

type syllabusRepository struct{ db *database }

func (r *syllabusRepository) Create(_ context.Context, entry *models.SyllabusEntry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.courses[entry.CourseID]; !ok {
		return notFound("course", entry.CourseID)
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = r.db.now()
	cp := *entry
	cp.References = append([]string(nil), entry.References...)
	r.db.syllabus[entry.ID] = &cp
	return nil
}

func (r *syllabusRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.SyllabusEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []*models.SyllabusEntry
	for _, e := range r.db.syllabus {
		if e.CourseID == courseID {
			cp := *e
			cp.References = append([]string(nil), e.References...)
			out = append(out, &cp)
		}
	}
	sortSyllabus(out)
	return out, nil
}

type sessionRepository struct{ db *database }

func (r *sessionRepository) GetByID(_ context.Context, id uuid.UUID) (*models.SessionDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.sessions[id]
	if !ok {
		return nil, notFound("class session", id)
	}
	return r.db.details(s), nil
}

func (r *sessionRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.ClassSession, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []*models.ClassSession
	for _, s := range r.db.sessions {
		if s.CourseID == courseID {
			out = append(out, copySession(s))
		}
	}
	sortSessions(out)
	return out, nil
}

func (r *sessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.sessions[id]; !ok {
		return notFound("class session", id)
	}
	delete(r.db.sessions, id)
	return nil
}

type enrollmentRepository struct{ db *database }

func (r *enrollmentRepository) Delete(_ context.Context, studentID, courseID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, e := range r.db.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			delete(r.db.enrollments, id)
			return nil
		}
	}
	return apperrors.NewResourceNotFoundError("enrollment not found")
}
