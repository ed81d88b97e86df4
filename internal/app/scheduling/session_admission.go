package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// SessionRequest is a candidate class session
type SessionRequest struct {
	CourseID   uuid.UUID
	RoomID     uuid.UUID
	LecturerID uuid.UUID
	SyllabusID *uuid.UUID
	Date       time.Time
	StartTime  models.TimeOfDay
	EndTime    models.TimeOfDay
}

func (r SessionRequest) keys() []ResourceKey {
	return []ResourceKey{CourseKey(r.CourseID), RoomKey(r.RoomID), LecturerKey(r.LecturerID)}
}

// AdmitSession checks a candidate session and commits it when every check
// passes. The checks run again under the course, room and lecturer locks
// right before the commit, so a concurrent admission that won the race is
// reported with the same conflict kind as a plain pre-check failure.
// Course readiness is not touched.
func (e *Engine) AdmitSession(ctx context.Context, req SessionRequest) (*models.ClassSession, error) {
	req.Date = models.DateOnly(req.Date)

	if err := e.CheckSession(ctx, e.store, req); err != nil {
		e.logger.Debug().Err(err).Str("courseId", req.CourseID.String()).Msg("Session rejected")
		return nil, err
	}

	var admitted *models.ClassSession
	err := e.atomically(ctx, req.keys(), func(ctx context.Context, tx Store) error {
		if err := e.CheckSession(ctx, tx, req); err != nil {
			return err
		}
		session, err := tx.CommitSession(ctx, &models.ClassSession{
			ID:         uuid.New(),
			CourseID:   req.CourseID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			RoomID:     req.RoomID,
			LecturerID: req.LecturerID,
			SyllabusID: req.SyllabusID,
		})
		if err != nil {
			return err
		}
		admitted = session
		return nil
	})
	if err != nil {
		e.logger.Debug().Err(err).Str("courseId", req.CourseID.String()).Msg("Session rejected at commit")
		return nil, err
	}

	e.logger.Info().
		Str("sessionId", admitted.ID.String()).
		Str("courseId", admitted.CourseID.String()).
		Str("roomId", admitted.RoomID.String()).
		Str("date", admitted.Date.Format("2006-01-02")).
		Str("start", admitted.StartTime.String()).
		Str("end", admitted.EndTime.String()).
		Msg("Session admitted")
	return admitted, nil
}

// CheckSession runs the admission checks for req against store without
// writing anything. The first failing check decides the error.
func (e *Engine) CheckSession(ctx context.Context, store Store, req SessionRequest) error {
	course, err := store.FindCourse(ctx, req.CourseID)
	if err != nil {
		return notFound("course", req.CourseID, err)
	}
	if _, err := store.FindRoom(ctx, req.RoomID); err != nil {
		return notFound("room", req.RoomID, err)
	}
	if _, err := store.FindLecturer(ctx, req.LecturerID); err != nil {
		return notFound("lecturer", req.LecturerID, err)
	}
	if req.SyllabusID != nil {
		entry, err := store.FindSyllabusEntry(ctx, *req.SyllabusID)
		if err != nil {
			return notFound("syllabus entry", *req.SyllabusID, err)
		}
		if entry.CourseID != course.ID {
			return apperrors.NewCustomError(apperrors.ErrResourceNotFound, "syllabus entry not found in this course").
				WithDetails(map[string]interface{}{"resource": "syllabus entry", "id": req.SyllabusID.String()})
		}
	}

	if !course.Contains(req.Date) {
		return apperrors.NewCustomError(apperrors.ErrOutOfRange, apperrors.ErrOutOfRange.Error()).
			WithDetails(map[string]interface{}{
				"date":      req.Date.Format("2006-01-02"),
				"startDate": course.StartDate.Format("2006-01-02"),
				"endDate":   course.EndDate.Format("2006-01-02"),
			})
	}

	slot := TimeRange{Start: req.StartTime, End: req.EndTime}
	if !slot.Valid() {
		return apperrors.NewCustomError(apperrors.ErrInvalidInterval, apperrors.ErrInvalidInterval.Error())
	}

	cal := NewCalendar(store)
	if s, err := cal.RoomConflict(ctx, req.RoomID, req.Date, slot); err != nil {
		return err
	} else if s != nil {
		return conflict(apperrors.ErrRoomConflict, s.ID)
	}
	if s, err := cal.LecturerConflict(ctx, req.LecturerID, req.Date, slot); err != nil {
		return err
	} else if s != nil {
		return conflict(apperrors.ErrLecturerConflict, s.ID)
	}
	if s, err := cal.CourseConflict(ctx, req.CourseID, req.Date, slot); err != nil {
		return err
	} else if s != nil {
		return conflict(apperrors.ErrCourseSlotConflict, s.ID)
	}
	return nil
}
