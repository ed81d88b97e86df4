package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/logger"
)

// PgCourseRepository handles database operations for courses
type PgCourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *PgCourseRepository {
	return &PgCourseRepository{db: db}
}

// Create inserts a course and fills in its ID and timestamps
func (r *PgCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.StartDate = models.DateOnly(course.StartDate)
	course.EndDate = models.DateOnly(course.EndDate)

	sql, args, err := psql.Insert("courses").
		Columns("id", "name", "start_date", "end_date", "minimum_pass_score", "maximum_students", "ready").
		Values(course.ID, course.Name, course.StartDate, course.EndDate, course.MinimumPassScore, course.MaximumStudents, course.Ready).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.CreatedAt, &course.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return mapError(err, "course", course.ID)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *PgCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return NewStore(r.db, "").FindCourse(ctx, id)
}

// List returns one page of courses ordered by start date, plus the total count
func (r *PgCourseRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM courses`).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return nil, 0, err
	}
	if total == 0 {
		return []*models.Course{}, 0, nil
	}

	sql, args, err := psql.Select(courseColumns...).
		From("courses c").
		OrderBy("c.start_date", "c.name").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, err
	}
	courses, err := collectCourses(rows)
	return courses, total, err
}

