package scheduling

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// AdmitEnrollment enrolls a student into a course. Capacity, duplicate and
// schedule checks are repeated under the course and student locks before
// the commit.
func (e *Engine) AdmitEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	if err := e.CheckEnrollment(ctx, e.store, studentID, courseID); err != nil {
		e.logger.Debug().Err(err).Str("studentId", studentID.String()).Str("courseId", courseID.String()).Msg("Enrollment rejected")
		return nil, err
	}

	keys := []ResourceKey{CourseKey(courseID), StudentKey(studentID)}
	var admitted *models.Enrollment
	err := e.atomically(ctx, keys, func(ctx context.Context, tx Store) error {
		if err := e.CheckEnrollment(ctx, tx, studentID, courseID); err != nil {
			return err
		}
		enrollment, err := tx.CommitEnrollment(ctx, &models.Enrollment{
			ID:        uuid.New(),
			StudentID: studentID,
			CourseID:  courseID,
		})
		if err != nil {
			return err
		}
		admitted = enrollment
		return nil
	})
	if err != nil {
		e.logger.Debug().Err(err).Str("studentId", studentID.String()).Str("courseId", courseID.String()).Msg("Enrollment rejected at commit")
		return nil, err
	}

	e.logger.Info().
		Str("enrollmentId", admitted.ID.String()).
		Str("studentId", studentID.String()).
		Str("courseId", courseID.String()).
		Msg("Enrollment admitted")
	return admitted, nil
}

// CheckEnrollment runs the enrollment checks without writing anything
func (e *Engine) CheckEnrollment(ctx context.Context, store Store, studentID, courseID uuid.UUID) error {
	if _, err := store.FindStudent(ctx, studentID); err != nil {
		return notFound("student", studentID, err)
	}
	course, err := store.FindCourse(ctx, courseID)
	if err != nil {
		return notFound("course", courseID, err)
	}

	enrolled, err := store.EnrollmentExists(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if enrolled {
		return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, apperrors.ErrAlreadyEnrolled.Error())
	}

	count, err := store.CountEnrollments(ctx, courseID)
	if err != nil {
		return err
	}
	if count >= course.MaximumStudents {
		return apperrors.NewCustomError(apperrors.ErrCourseFull, apperrors.ErrCourseFull.Error()).
			WithDetails(map[string]interface{}{"maximumStudents": course.MaximumStudents})
	}

	current, err := store.ListEnrollmentsForStudent(ctx, studentID)
	if err != nil {
		return err
	}
	for _, other := range current {
		if DateWindowsOverlap(other.StartDate, other.EndDate, course.StartDate, course.EndDate) {
			return conflict(apperrors.ErrStudentScheduleConflict, other.ID)
		}
	}
	return nil
}
