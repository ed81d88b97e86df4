package scheduling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
)

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b scheduling.TimeRange
		want bool
	}{
		{"partial overlap", tr("18:00", "20:00"), tr("19:00", "21:00"), true},
		{"contained", tr("09:00", "12:00"), tr("10:00", "11:00"), true},
		{"identical", tr("09:00", "10:00"), tr("09:00", "10:00"), true},
		{"touching end to start", tr("18:00", "20:00"), tr("20:00", "21:00"), false},
		{"touching start to end", tr("20:00", "21:00"), tr("18:00", "20:00"), false},
		{"disjoint", tr("08:00", "09:00"), tr("10:00", "11:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric")
			}
		})
	}
}

func TestTimeRange_Valid(t *testing.T) {
	if tr("10:00", "10:00").Valid() {
		t.Error("empty range should be invalid")
	}
	if tr("11:00", "10:00").Valid() {
		t.Error("inverted range should be invalid")
	}
	if !tr("00:00", "23:59").Valid() {
		t.Error("full-day range should be valid")
	}
}

func TestDateWindowsOverlap(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"shared single day", "2024-01-01", "2024-01-31", "2024-01-31", "2024-02-28", true},
		{"nested", "2024-01-01", "2024-12-31", "2024-03-01", "2024-03-02", true},
		{"adjacent days", "2024-01-01", "2024-01-31", "2024-02-01", "2024-02-28", false},
		{"before", "2024-03-01", "2024-03-31", "2024-01-01", "2024-01-31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheduling.DateWindowsOverlap(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			if got != tt.want {
				t.Errorf("DateWindowsOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateWindowsOverlap_IgnoresClock(t *testing.T) {
	late := day("2024-01-31").Add(23 * time.Hour)
	if !scheduling.DateWindowsOverlap(day("2024-01-01"), late, day("2024-01-31"), day("2024-02-10")) {
		t.Error("windows sharing 2024-01-31 should overlap regardless of clock time")
	}
}

func TestCalendar_Queries(t *testing.T) {
	f := newFixture(t)
	c := f.course("JavaScript", "2024-01-01", "2024-03-01", 10)
	r1, r2 := f.room(1), f.room(2)
	l1 := f.lecturer("Yaki")
	f.admit(sessionReq(c, r1, l1, "2024-01-10", "18:00", "20:00"))

	cal := f.engine.Calendar()
	date := day("2024-01-10")

	free, err := cal.IsRoomFree(f.ctx, r1.ID, date, tr("19:00", "21:00"))
	if err != nil || free {
		t.Errorf("room 1 should be busy at 19:00, free=%v err=%v", free, err)
	}
	free, _ = cal.IsRoomFree(f.ctx, r1.ID, date, tr("20:00", "21:00"))
	if !free {
		t.Error("room 1 should be free from 20:00")
	}
	free, _ = cal.IsRoomFree(f.ctx, r2.ID, date, tr("18:00", "20:00"))
	if !free {
		t.Error("room 2 should be free")
	}
	free, _ = cal.IsRoomFree(f.ctx, r1.ID, day("2024-01-11"), tr("18:00", "20:00"))
	if !free {
		t.Error("room 1 should be free on another day")
	}
	free, _ = cal.IsLecturerFree(f.ctx, l1.ID, date, tr("17:00", "18:30"))
	if free {
		t.Error("lecturer should be busy at 18:00")
	}
	free, _ = cal.IsCourseSlotFree(f.ctx, c.ID, date, tr("17:00", "18:00"))
	if !free {
		t.Error("course slot ending at 18:00 should be free")
	}
}

func tr(start, end string) scheduling.TimeRange {
	return scheduling.TimeRange{Start: clock(start), End: clock(end)}
}

// failingStore fails every session query
type failingStore struct {
	scheduling.Store
	err error
}

func (s failingStore) ListSessions(context.Context, scheduling.SessionFilter) ([]*models.ClassSession, error) {
	return nil, s.err
}

func TestCalendar_StoreErrorIsNeverFree(t *testing.T) {
	boom := errors.New("connection reset")
	cal := scheduling.NewCalendar(failingStore{err: boom})
	ctx := context.Background()
	id := uuid.New()
	date := day("2024-01-10")
	r := tr("18:00", "20:00")

	checks := map[string]func() (bool, error){
		"room":     func() (bool, error) { return cal.IsRoomFree(ctx, id, date, r) },
		"lecturer": func() (bool, error) { return cal.IsLecturerFree(ctx, id, date, r) },
		"course":   func() (bool, error) { return cal.IsCourseSlotFree(ctx, id, date, r) },
	}
	for name, check := range checks {
		free, err := check()
		if !errors.Is(err, boom) {
			t.Errorf("%s: expected the store error, got %v", name, err)
		}
		if free {
			t.Errorf("%s: a failed lookup must not report the slot as free", name)
		}
	}
}
