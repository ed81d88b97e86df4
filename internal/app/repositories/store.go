package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/db"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/dberrors"
	"github.com/yigit/coursesched/internal/pkg/logger"
)

// Store implements scheduling.Store on PostgreSQL. Admissions are
// serialized with transaction-scoped advisory locks, one per resource key,
// so every API instance sharing the database takes part.
type Store struct {
	pool       *pgxpool.Pool
	q          DBTX
	lockPrefix string
}

var _ scheduling.Store = (*Store)(nil)

// NewStore creates a Store over pool. lockPrefix namespaces the advisory lock keys.
func NewStore(pool *pgxpool.Pool, lockPrefix string) *Store {
	return &Store{pool: pool, q: pool, lockPrefix: lockPrefix}
}

// FindCourse returns a course by ID
func (s *Store) FindCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).From("courses c").Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanCourse(s.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "course", id)
	}
	return c, nil
}

// FindRoom returns a room by ID
func (s *Store) FindRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var r models.Room
	err := s.q.QueryRow(ctx, `SELECT id, room_number, description FROM rooms WHERE id = $1`, id).
		Scan(&r.ID, &r.Number, &r.Description)
	if err != nil {
		return nil, mapError(err, "room", id)
	}
	return &r, nil
}

// FindLecturer returns a lecturer by ID
func (s *Store) FindLecturer(ctx context.Context, id uuid.UUID) (*models.Lecturer, error) {
	var l models.Lecturer
	err := s.q.QueryRow(ctx, `SELECT id, name, phone_number, email FROM lecturers WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.PhoneNumber, &l.Email)
	if err != nil {
		return nil, mapError(err, "lecturer", id)
	}
	return &l, nil
}

// FindStudent returns a student by ID
func (s *Store) FindStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var st models.Student
	err := s.q.QueryRow(ctx, `SELECT id, name, phone_number, email FROM students WHERE id = $1`, id).
		Scan(&st.ID, &st.Name, &st.PhoneNumber, &st.Email)
	if err != nil {
		return nil, mapError(err, "student", id)
	}
	return &st, nil
}

// FindSyllabusEntry returns a syllabus entry by ID
func (s *Store) FindSyllabusEntry(ctx context.Context, id uuid.UUID) (*models.SyllabusEntry, error) {
	var e models.SyllabusEntry
	err := s.q.QueryRow(ctx, `
		SELECT id, course_id, title, description, references_list, created_at
		FROM syllabus_entries WHERE id = $1`, id).
		Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.References, &e.CreatedAt)
	if err != nil {
		return nil, mapError(err, "syllabus entry", id)
	}
	return &e, nil
}

// applySessionFilter adds the WHERE clauses of f to a query over class_sessions cs
func applySessionFilter(b squirrel.SelectBuilder, f scheduling.SessionFilter) squirrel.SelectBuilder {
	if f.RoomID != nil {
		b = b.Where(squirrel.Eq{"cs.room_id": *f.RoomID})
	}
	if f.LecturerID != nil {
		b = b.Where(squirrel.Eq{"cs.lecturer_id": *f.LecturerID})
	}
	if f.CourseID != nil {
		b = b.Where(squirrel.Eq{"cs.course_id": *f.CourseID})
	}
	if f.Date != nil {
		b = b.Where(squirrel.Eq{"cs.session_date": models.DateOnly(*f.Date)})
	}
	if f.Before != nil {
		b = b.Where(squirrel.Lt{"cs.session_date": models.DateOnly(*f.Before)})
	}
	if f.After != nil {
		b = b.Where(squirrel.Gt{"cs.session_date": models.DateOnly(*f.After)})
	}
	return b
}

// ListSessions returns the sessions matching filter, ordered by date and start time
func (s *Store) ListSessions(ctx context.Context, filter scheduling.SessionFilter) ([]*models.ClassSession, error) {
	b := applySessionFilter(psql.Select(sessionColumns...).From("class_sessions cs"), filter).
		OrderBy("cs.session_date", "cs.start_minute")
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing class sessions")
		return nil, err
	}
	defer rows.Close()

	sessions := []*models.ClassSession{}
	for rows.Next() {
		cs, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, cs)
	}
	return sessions, rows.Err()
}

// CountSessions counts the sessions matching filter
func (s *Store) CountSessions(ctx context.Context, filter scheduling.SessionFilter) (int, error) {
	sql, args, err := applySessionFilter(psql.Select("count(*)").From("class_sessions cs"), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	err = s.q.QueryRow(ctx, sql, args...).Scan(&n)
	return n, err
}

// CountSyllabusEntries counts the syllabus entries of a course
func (s *Store) CountSyllabusEntries(ctx context.Context, courseID uuid.UUID) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `SELECT count(*) FROM syllabus_entries WHERE course_id = $1`, courseID).Scan(&n)
	return n, err
}

// CountEnrollments counts the students enrolled in a course
func (s *Store) CountEnrollments(ctx context.Context, courseID uuid.UUID) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `SELECT count(*) FROM enrollments WHERE course_id = $1`, courseID).Scan(&n)
	return n, err
}

// EnrollmentExists reports whether the student is enrolled in the course
func (s *Store) EnrollmentExists(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	return exists, err
}

// ListEnrollmentsForStudent returns the courses a student is enrolled in
func (s *Store) ListEnrollmentsForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.start_date", "c.name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// CommitSession inserts an admitted session
func (s *Store) CommitSession(ctx context.Context, session *models.ClassSession) (*models.ClassSession, error) {
	stored := *session
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Date = models.DateOnly(stored.Date)

	sql, args, err := psql.Insert("class_sessions").
		Columns("id", "course_id", "session_date", "start_minute", "end_minute", "room_id", "lecturer_id", "syllabus_id").
		Values(stored.ID, stored.CourseID, stored.Date, int(stored.StartTime), int(stored.EndTime),
			stored.RoomID, stored.LecturerID, stored.SyllabusID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := s.q.QueryRow(ctx, sql, args...).Scan(&stored.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error inserting class session")
		return nil, commitError(err, "class session", stored.ID)
	}
	return &stored, nil
}

// CommitEnrollment inserts an admitted enrollment
func (s *Store) CommitEnrollment(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	stored := *enrollment
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	err := s.q.QueryRow(ctx, `
		INSERT INTO enrollments (id, student_id, course_id)
		VALUES ($1, $2, $3)
		RETURNING enrolled_at`,
		stored.ID, stored.StudentID, stored.CourseID).Scan(&stored.EnrolledAt)
	if err != nil {
		return nil, commitError(err, "enrollment", stored.ID)
	}
	return &stored, nil
}

// UpdateCourseFields writes the supplied fields of update
func (s *Store) UpdateCourseFields(ctx context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error) {
	set := map[string]interface{}{"updated_at": squirrel.Expr("NOW()")}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.StartDate != nil {
		set["start_date"] = models.DateOnly(*update.StartDate)
	}
	if update.EndDate != nil {
		set["end_date"] = models.DateOnly(*update.EndDate)
	}
	if update.MinimumPassScore != nil {
		set["minimum_pass_score"] = *update.MinimumPassScore
	}
	if update.MaximumStudents != nil {
		set["maximum_students"] = *update.MaximumStudents
	}

	returning := "RETURNING id, name, start_date, end_date, minimum_pass_score, maximum_students, ready, created_at, updated_at"
	sql, args, err := psql.Update("courses").SetMap(set).Where(squirrel.Eq{"id": id}).Suffix(returning).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanCourse(s.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidRange, apperrors.ErrInvalidRange.Error())
		}
		return nil, mapError(err, "course", id)
	}
	return c, nil
}

// SetCourseReady stores the readiness flag of a course
func (s *Store) SetCourseReady(ctx context.Context, id uuid.UUID, ready bool) error {
	tag, err := s.q.Exec(ctx, `UPDATE courses SET ready = $1, updated_at = NOW() WHERE id = $2`, ready, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "course", id)
	}
	return nil
}

// removableTables maps the resources Remove accepts to their tables
var removableTables = map[models.ResourceType]string{
	models.ResourceCourse:   "courses",
	models.ResourceRoom:     "rooms",
	models.ResourceLecturer: "lecturers",
	models.ResourceStudent:  "students",
}

// Remove deletes a course, room, lecturer or student. The schema cascades
// course and student children and restricts rooms and lecturers in use.
func (s *Store) Remove(ctx context.Context, kind models.ResourceType, id uuid.UUID) error {
	table, ok := removableTables[kind]
	if !ok {
		return fmt.Errorf("cannot remove resource of type %q", kind)
	}
	sql, args, err := psql.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceInUse, string(kind)+" has scheduled class sessions")
		}
		logger.Error().Err(err).Str("resource", string(kind)).Str("id", id.String()).Msg("Error removing resource")
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, string(kind), id)
	}
	return nil
}

// commitError maps a failed admission insert. A foreign key violation there
// means a referenced row was deleted after the checks ran, which admission
// reports as not found, the same kind its lookups give.
func commitError(err error, resource string, id uuid.UUID) error {
	var pgErr *pgconn.PgError
	if dberrors.IsForeignKeyViolation(err) && errors.As(err, &pgErr) {
		return apperrors.NewCustomError(apperrors.ErrResourceNotFound, "a record referenced by the "+resource+" no longer exists").
			WithDetails(map[string]interface{}{"resource": resource, "constraint": pgErr.ConstraintName})
	}
	return mapError(err, resource, id)
}

// WithinTx opens a transaction, takes an advisory lock for each key in
// sorted order and runs fn against a Store bound to that transaction.
// The locks are released when the transaction ends.
func (s *Store) WithinTx(ctx context.Context, keys []scheduling.ResourceKey, fn func(ctx context.Context, tx scheduling.Store) error) error {
	if _, nested := s.q.(pgx.Tx); nested {
		if err := s.lock(ctx, s.q, keys); err != nil {
			return err
		}
		return fn(ctx, s)
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.lock(ctx, tx, keys); err != nil {
			return err
		}
		return fn(ctx, &Store{pool: s.pool, q: tx, lockPrefix: s.lockPrefix})
	})
}

// LockNames returns the advisory lock names for keys, sorted and deduplicated
func (s *Store) LockNames(keys []scheduling.ResourceKey) []string {
	seen := make(map[string]bool, len(keys))
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := s.lockPrefix + string(k)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Store) lock(ctx context.Context, q DBTX, keys []scheduling.ResourceKey) error {
	started := time.Now()
	for _, name := range s.LockNames(keys) {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, name); err != nil {
			return fmt.Errorf("failed to acquire admission lock %s: %w", name, err)
		}
	}
	logger.Debug().Strs("keys", s.LockNames(keys)).Dur("wait", time.Since(started)).Msg("Admission locks acquired")
	return nil
}
