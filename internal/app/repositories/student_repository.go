package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
)

// PgStudentRepository handles database operations for students
type PgStudentRepository struct {
	db    *pgxpool.Pool
	table personTable
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *PgStudentRepository {
	return &PgStudentRepository{db: db, table: personTable{db: db, table: "students", resource: "student"}}
}

// Create inserts a student
func (r *PgStudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	return r.table.insert(ctx, student.ID, student.Name, student.PhoneNumber, student.Email)
}

// GetByID retrieves a student by ID
func (r *PgStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return NewStore(r.db, "").FindStudent(ctx, id)
}

// CurrentCourses lists the student's courses running on day
func (r *PgStudentRepository) CurrentCourses(ctx context.Context, id uuid.UUID, day time.Time) ([]*models.Course, error) {
	day = models.DateOnly(day)
	sql, args, err := psql.Select(courseColumns...).
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": id}).
		Where(squirrel.LtOrEq{"c.start_date": day}).
		Where(squirrel.GtOrEq{"c.end_date": day}).
		OrderBy("c.start_date", "c.name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// Courses lists every course the student is enrolled in
func (r *PgStudentRepository) Courses(ctx context.Context, id uuid.UUID) ([]*models.Course, error) {
	return NewStore(r.db, "").ListEnrollmentsForStudent(ctx, id)
}

// Schedule lists the sessions of the student's courses between from and to, both inclusive
func (r *PgStudentRepository) Schedule(ctx context.Context, id uuid.UUID, from, to time.Time) ([]*models.SessionDetails, error) {
	sql, args, err := selectSessionDetails().
		Join("enrollments e ON e.course_id = cs.course_id").
		Where(squirrel.Eq{"e.student_id": id}).
		Where(squirrel.GtOrEq{"cs.session_date": models.DateOnly(from)}).
		Where(squirrel.LtOrEq{"cs.session_date": models.DateOnly(to)}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectSessionDetails(rows)
}
