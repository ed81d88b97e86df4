package scheduling

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// CourseCommitments are the committed facts a course edit is checked against.
type CourseCommitments struct {
	Enrollments    int // Current enrollment count
	SessionsBefore int // Sessions strictly before the proposed start date
	SessionsAfter  int // Sessions strictly after the proposed end date
}

// CheckCourseUpdate validates update against the current course and its
// commitments. Rules apply in order and the first failure wins:
// the effective window must not be inverted, capacity must not drop below
// the enrollment count, and no session may fall outside a new window.
func CheckCourseUpdate(current *models.Course, update models.CourseUpdate, c CourseCommitments) error {
	start, end := current.StartDate, current.EndDate
	if update.StartDate != nil {
		start = *update.StartDate
	}
	if update.EndDate != nil {
		end = *update.EndDate
	}
	if (update.StartDate != nil || update.EndDate != nil) && models.DateOnly(start).After(models.DateOnly(end)) {
		return apperrors.NewCustomError(apperrors.ErrInvalidRange, apperrors.ErrInvalidRange.Error())
	}

	if update.MaximumStudents != nil && *update.MaximumStudents < c.Enrollments {
		return apperrors.NewCustomError(apperrors.ErrCapacityBelowEnrollment, apperrors.ErrCapacityBelowEnrollment.Error()).
			WithDetails(map[string]interface{}{"enrolled": c.Enrollments})
	}
	if update.StartDate != nil && c.SessionsBefore > 0 {
		return apperrors.NewCustomError(apperrors.ErrSessionsPrecedeNewStart, apperrors.ErrSessionsPrecedeNewStart.Error()).
			WithDetails(map[string]interface{}{"sessions": c.SessionsBefore})
	}
	if update.EndDate != nil && c.SessionsAfter > 0 {
		return apperrors.NewCustomError(apperrors.ErrSessionsFollowNewEnd, apperrors.ErrSessionsFollowNewEnd.Error()).
			WithDetails(map[string]interface{}{"sessions": c.SessionsAfter})
	}
	return nil
}

// UpdateCourse applies a partial course edit after checking it against the
// course's committed sessions and enrollments. The course lock is held from
// the count queries to the write, so no admission can slip in between.
func (e *Engine) UpdateCourse(ctx context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error) {
	if update.StartDate != nil {
		d := models.DateOnly(*update.StartDate)
		update.StartDate = &d
	}
	if update.EndDate != nil {
		d := models.DateOnly(*update.EndDate)
		update.EndDate = &d
	}

	var updated *models.Course
	err := e.atomically(ctx, []ResourceKey{CourseKey(id)}, func(ctx context.Context, tx Store) error {
		current, err := tx.FindCourse(ctx, id)
		if err != nil {
			return notFound("course", id, err)
		}
		commitments, err := e.commitments(ctx, tx, id, update)
		if err != nil {
			return err
		}
		if err := CheckCourseUpdate(current, update, commitments); err != nil {
			return err
		}
		if update.IsEmpty() {
			updated = current
			return nil
		}
		updated, err = tx.UpdateCourseFields(ctx, id, update)
		return err
	})
	if err != nil {
		e.logger.Debug().Err(err).Str("courseId", id.String()).Msg("Course update rejected")
		return nil, err
	}

	e.logger.Info().Str("courseId", id.String()).Msg("Course updated")
	return updated, nil
}

func (e *Engine) commitments(ctx context.Context, store Store, id uuid.UUID, update models.CourseUpdate) (CourseCommitments, error) {
	var c CourseCommitments
	var err error
	if update.MaximumStudents != nil {
		if c.Enrollments, err = store.CountEnrollments(ctx, id); err != nil {
			return c, err
		}
	}
	if update.StartDate != nil {
		if c.SessionsBefore, err = store.CountSessions(ctx, SessionFilter{CourseID: &id, Before: update.StartDate}); err != nil {
			return c, err
		}
	}
	if update.EndDate != nil {
		if c.SessionsAfter, err = store.CountSessions(ctx, SessionFilter{CourseID: &id, After: update.EndDate}); err != nil {
			return c, err
		}
	}
	return c, nil
}
