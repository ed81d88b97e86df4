package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// PgEnrollmentRepository removes enrollments
type PgEnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *PgEnrollmentRepository {
	return &PgEnrollmentRepository{db: db}
}

// Delete withdraws a student from a course
func (r *PgEnrollmentRepository) Delete(ctx context.Context, studentID, courseID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("enrollment not found")
	}
	return nil
}
