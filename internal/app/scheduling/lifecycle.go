package scheduling

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
)

// Readiness comments
const (
	CommentMissingSyllabus = "Missing syllabus."
	CommentMissingSessions = "Missing class sessions."
)

// Readiness is the evaluated lifecycle state of a course
type Readiness struct {
	State    models.ReadinessState `json:"state"`
	Ready    bool                  `json:"ready"`
	Comments []string              `json:"comments"`
}

// EvaluateReadiness derives the lifecycle state from the number of syllabus
// entries and sessions. A course with neither is a draft, one with only one
// of them is not ready.
func EvaluateReadiness(syllabusCount, sessionCount int) Readiness {
	comments := []string{}
	if syllabusCount < 1 {
		comments = append(comments, CommentMissingSyllabus)
	}
	if sessionCount < 1 {
		comments = append(comments, CommentMissingSessions)
	}

	switch len(comments) {
	case 0:
		return Readiness{State: models.ReadinessReady, Ready: true, Comments: comments}
	case 2:
		return Readiness{State: models.ReadinessDraft, Comments: comments}
	default:
		return Readiness{State: models.ReadinessNotReady, Comments: comments}
	}
}

// RecomputeReadiness counts the course's syllabus entries and sessions,
// evaluates readiness and stores the resulting flag on the course.
func (e *Engine) RecomputeReadiness(ctx context.Context, courseID uuid.UUID) (Readiness, error) {
	var result Readiness
	err := e.atomically(ctx, []ResourceKey{CourseKey(courseID)}, func(ctx context.Context, tx Store) error {
		if _, err := tx.FindCourse(ctx, courseID); err != nil {
			return notFound("course", courseID, err)
		}
		syllabusCount, err := tx.CountSyllabusEntries(ctx, courseID)
		if err != nil {
			return err
		}
		sessionCount, err := tx.CountSessions(ctx, SessionFilter{CourseID: &courseID})
		if err != nil {
			return err
		}
		result = EvaluateReadiness(syllabusCount, sessionCount)
		return tx.SetCourseReady(ctx, courseID, result.Ready)
	})
	if err != nil {
		return Readiness{}, err
	}

	e.logger.Info().Str("courseId", courseID.String()).Str("state", string(result.State)).Msg("Course readiness recomputed")
	return result, nil
}
