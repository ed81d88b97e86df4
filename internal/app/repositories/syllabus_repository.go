package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/dberrors"
)

// PgSyllabusRepository handles database operations for syllabus entries
type PgSyllabusRepository struct {
	db *pgxpool.Pool
}

// NewSyllabusRepository creates a new syllabus repository
func NewSyllabusRepository(db *pgxpool.Pool) *PgSyllabusRepository {
	return &PgSyllabusRepository{db: db}
}

// Create inserts a syllabus entry for an existing course
func (r *PgSyllabusRepository) Create(ctx context.Context, entry *models.SyllabusEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.References == nil {
		entry.References = []string{}
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO syllabus_entries (id, course_id, title, description, references_list)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		entry.ID, entry.CourseID, entry.Title, entry.Description, entry.References).Scan(&entry.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("course not found")
		}
		return mapError(err, "syllabus entry", entry.ID)
	}
	return nil
}

// ListByCourse lists the syllabus entries of a course in creation order
func (r *PgSyllabusRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.SyllabusEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, description, references_list, created_at
		FROM syllabus_entries
		WHERE course_id = $1
		ORDER BY created_at, title`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.SyllabusEntry{}
	for rows.Next() {
		var e models.SyllabusEntry
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.References, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
