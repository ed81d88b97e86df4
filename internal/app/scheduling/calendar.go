package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
)

// TimeRange is a half-open interval [Start, End) within one day.
type TimeRange struct {
	Start models.TimeOfDay
	End   models.TimeOfDay
}

// Valid reports whether the range is non-empty and within a day
func (r TimeRange) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && r.Start < r.End
}

// Overlaps reports whether two ranges share any minute. Touching ranges,
// where one ends exactly when the other starts, do not overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// SessionRange returns the time range a session occupies
func SessionRange(s *models.ClassSession) TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// DateWindowsOverlap compares two whole-day windows, both ends inclusive,
// so sharing a single day counts as overlapping.
func DateWindowsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = models.DateOnly(aStart), models.DateOnly(aEnd)
	bStart, bEnd = models.DateOnly(bStart), models.DateOnly(bEnd)
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Calendar answers overlap queries against committed sessions.
type Calendar struct {
	store Store
}

// NewCalendar creates a calendar reading from store
func NewCalendar(store Store) *Calendar {
	return &Calendar{store: store}
}

// IsRoomFree reports whether no session in the room overlaps r on date
func (c *Calendar) IsRoomFree(ctx context.Context, roomID uuid.UUID, date time.Time, r TimeRange) (bool, error) {
	s, err := c.RoomConflict(ctx, roomID, date, r)
	if err != nil {
		return false, err
	}
	return s == nil, nil
}

// IsLecturerFree reports whether the lecturer teaches nothing overlapping r on date
func (c *Calendar) IsLecturerFree(ctx context.Context, lecturerID uuid.UUID, date time.Time, r TimeRange) (bool, error) {
	s, err := c.LecturerConflict(ctx, lecturerID, date, r)
	if err != nil {
		return false, err
	}
	return s == nil, nil
}

// IsCourseSlotFree reports whether the course has no session overlapping r on date
func (c *Calendar) IsCourseSlotFree(ctx context.Context, courseID uuid.UUID, date time.Time, r TimeRange) (bool, error) {
	s, err := c.CourseConflict(ctx, courseID, date, r)
	if err != nil {
		return false, err
	}
	return s == nil, nil
}

// RoomConflict returns the first session blocking the room, or nil
func (c *Calendar) RoomConflict(ctx context.Context, roomID uuid.UUID, date time.Time, r TimeRange) (*models.ClassSession, error) {
	return c.firstOverlap(ctx, SessionFilter{RoomID: &roomID}, date, r)
}

// LecturerConflict returns the first session blocking the lecturer, or nil
func (c *Calendar) LecturerConflict(ctx context.Context, lecturerID uuid.UUID, date time.Time, r TimeRange) (*models.ClassSession, error) {
	return c.firstOverlap(ctx, SessionFilter{LecturerID: &lecturerID}, date, r)
}

// CourseConflict returns the first session of the course blocking the slot, or nil
func (c *Calendar) CourseConflict(ctx context.Context, courseID uuid.UUID, date time.Time, r TimeRange) (*models.ClassSession, error) {
	return c.firstOverlap(ctx, SessionFilter{CourseID: &courseID}, date, r)
}

func (c *Calendar) firstOverlap(ctx context.Context, filter SessionFilter, date time.Time, r TimeRange) (*models.ClassSession, error) {
	day := models.DateOnly(date)
	filter.Date = &day
	sessions, err := c.store.ListSessions(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if SessionRange(s).Overlaps(r) {
			return s, nil
		}
	}
	return nil, nil
}
