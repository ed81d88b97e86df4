package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/logger"
)

// PgLecturerRepository handles database operations for lecturers
type PgLecturerRepository struct {
	db    *pgxpool.Pool
	table personTable
}

// NewLecturerRepository creates a new lecturer repository
func NewLecturerRepository(db *pgxpool.Pool) *PgLecturerRepository {
	return &PgLecturerRepository{db: db, table: personTable{db: db, table: "lecturers", resource: "lecturer"}}
}

// Create inserts a lecturer
func (r *PgLecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer) error {
	if lecturer.ID == uuid.Nil {
		lecturer.ID = uuid.New()
	}
	return r.table.insert(ctx, lecturer.ID, lecturer.Name, lecturer.PhoneNumber, lecturer.Email)
}

// GetByID retrieves a lecturer by ID
func (r *PgLecturerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lecturer, error) {
	return NewStore(r.db, "").FindLecturer(ctx, id)
}

// taughtCourses selects the distinct courses the lecturer has a session in
func (r *PgLecturerRepository) taughtCourses(ctx context.Context, id uuid.UUID, where squirrel.Sqlizer) ([]*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).
		Distinct().
		From("courses c").
		Join("class_sessions cs ON cs.course_id = c.id").
		Where(squirrel.Eq{"cs.lecturer_id": id}).
		Where(where).
		OrderBy("c.start_date", "c.name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("lecturerId", id.String()).Msg("Error querying lecturer courses")
		return nil, err
	}
	return collectCourses(rows)
}

// CurrentCourses lists the courses the lecturer teaches that are running on day
func (r *PgLecturerRepository) CurrentCourses(ctx context.Context, id uuid.UUID, day time.Time) ([]*models.Course, error) {
	day = models.DateOnly(day)
	return r.taughtCourses(ctx, id, squirrel.And{
		squirrel.LtOrEq{"c.start_date": day},
		squirrel.GtOrEq{"c.end_date": day},
	})
}

// CoursesInRange lists the courses the lecturer teaches a session of between from and to
func (r *PgLecturerRepository) CoursesInRange(ctx context.Context, id uuid.UUID, from, to time.Time) ([]*models.Course, error) {
	return r.taughtCourses(ctx, id, squirrel.And{
		squirrel.GtOrEq{"cs.session_date": models.DateOnly(from)},
		squirrel.LtOrEq{"cs.session_date": models.DateOnly(to)},
	})
}

// Schedule lists the lecturer's sessions between from and to, both inclusive
func (r *PgLecturerRepository) Schedule(ctx context.Context, id uuid.UUID, from, to time.Time) ([]*models.SessionDetails, error) {
	sql, args, err := selectSessionDetails().
		Where(squirrel.Eq{"cs.lecturer_id": id}).
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
