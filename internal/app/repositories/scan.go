package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/dberrors"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var courseColumns = []string{
	"c.id", "c.name", "c.start_date", "c.end_date", "c.minimum_pass_score",
	"c.maximum_students", "c.ready", "c.created_at", "c.updated_at",
}

var sessionColumns = []string{
	"cs.id", "cs.course_id", "cs.session_date", "cs.start_minute", "cs.end_minute",
	"cs.room_id", "cs.lecturer_id", "cs.syllabus_id", "cs.created_at",
}

// Columns of sessionColumns followed by the joined names
var sessionDetailColumns = append(append([]string{}, sessionColumns...),
	"c.name AS course_name", "r.room_number", "l.name AS lecturer_name")

func selectSessionDetails() squirrel.SelectBuilder {
	return psql.Select(sessionDetailColumns...).
		From("class_sessions cs").
		Join("courses c ON cs.course_id = c.id").
		Join("rooms r ON cs.room_id = r.id").
		Join("lecturers l ON cs.lecturer_id = l.id").
		OrderBy("cs.session_date", "cs.start_minute")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.MinimumPassScore,
		&c.MaximumStudents, &c.Ready, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCourses(rows pgx.Rows) ([]*models.Course, error) {
	defer rows.Close()
	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// sessionScan holds the destinations of sessionColumns
type sessionScan struct {
	s          models.ClassSession
	start, end int
}

func (t *sessionScan) dest() []any {
	return []any{
		&t.s.ID, &t.s.CourseID, &t.s.Date, &t.start, &t.end,
		&t.s.RoomID, &t.s.LecturerID, &t.s.SyllabusID, &t.s.CreatedAt,
	}
}

func (t *sessionScan) session() *models.ClassSession {
	t.s.StartTime = models.TimeOfDay(t.start)
	t.s.EndTime = models.TimeOfDay(t.end)
	return &t.s
}

func scanSession(row pgx.Row) (*models.ClassSession, error) {
	var t sessionScan
	if err := row.Scan(t.dest()...); err != nil {
		return nil, err
	}
	return t.session(), nil
}

func scanSessionDetails(row pgx.Row) (*models.SessionDetails, error) {
	var (
		t  sessionScan
		sd models.SessionDetails
	)
	dest := append(t.dest(), &sd.CourseName, &sd.RoomNumber, &sd.LecturerName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	sd.ClassSession = *t.session()
	return &sd, nil
}

func collectSessionDetails(rows pgx.Rows) ([]*models.SessionDetails, error) {
	defer rows.Close()
	out := []*models.SessionDetails{}
	for rows.Next() {
		sd, err := scanSessionDetails(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	return out, rows.Err()
}

// mapError translates driver errors into the application's error kinds
func mapError(err error, resource string, id uuid.UUID) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewCustomError(apperrors.ErrResourceNotFound, fmt.Sprintf("%s not found", resource)).
			WithDetails(map[string]interface{}{"resource": resource, "id": id.String()})
	case dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key"):
		return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, apperrors.ErrAlreadyEnrolled.Error())
	case dberrors.IsDuplicateConstraintError(err, "rooms_room_number_key"):
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "room number already exists")
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, fmt.Sprintf("%s already exists", resource))
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewCustomError(apperrors.ErrResourceInUse, fmt.Sprintf("%s is referenced by other records", resource))
	case dberrors.IsCheckViolation(err):
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("%s violates a constraint", resource))
	}
	return err
}
