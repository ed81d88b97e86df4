package scheduling

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
)

// DeleteCourse removes a course with its sessions, syllabus entries and
// enrollments. It holds the course key, so it waits for any session or
// enrollment admission on the course to finish and no admission can commit
// against the course once it is gone.
func (e *Engine) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return e.remove(ctx, models.ResourceCourse, id)
}

// DeleteRoom removes a room that no session uses
func (e *Engine) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return e.remove(ctx, models.ResourceRoom, id)
}

// DeleteLecturer removes a lecturer that teaches no session
func (e *Engine) DeleteLecturer(ctx context.Context, id uuid.UUID) error {
	return e.remove(ctx, models.ResourceLecturer, id)
}

// DeleteStudent removes a student with their enrollments
func (e *Engine) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return e.remove(ctx, models.ResourceStudent, id)
}

func (e *Engine) remove(ctx context.Context, kind models.ResourceType, id uuid.UUID) error {
	err := e.atomically(ctx, []ResourceKey{resourceKey(kind, id)}, func(ctx context.Context, tx Store) error {
		return tx.Remove(ctx, kind, id)
	})
	if err != nil {
		e.logger.Debug().Err(err).Str("resource", string(kind)).Str("id", id.String()).Msg("Removal rejected")
		return err
	}
	e.logger.Info().Str("resource", string(kind)).Str("id", id.String()).Msg("Resource removed")
	return nil
}
