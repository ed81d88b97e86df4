package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
)

// PgSessionRepository reads and removes class sessions
type PgSessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{db: db}
}

// GetByID retrieves a session with the names of its course, room and lecturer
func (r *PgSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SessionDetails, error) {
	sql, args, err := selectSessionDetails().Where(squirrel.Eq{"cs.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	sd, err := scanSessionDetails(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "class session", id)
	}
	return sd, nil
}

// ListByCourse lists the sessions of a course by date and start time
func (r *PgSessionRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.ClassSession, error) {
	return NewStore(r.db, "").ListSessions(ctx, scheduling.SessionFilter{CourseID: &courseID})
}

// Delete removes a session
func (r *PgSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM class_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "class session", id)
	}
	return nil
}
