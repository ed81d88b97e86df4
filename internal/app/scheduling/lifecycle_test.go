package scheduling_test

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

func TestEvaluateReadiness(t *testing.T) {
	tests := []struct {
		syllabus, sessions int
		want               scheduling.Readiness
	}{
		{0, 0, scheduling.Readiness{State: models.ReadinessDraft, Comments: []string{scheduling.CommentMissingSyllabus, scheduling.CommentMissingSessions}}},
		{1, 0, scheduling.Readiness{State: models.ReadinessNotReady, Comments: []string{scheduling.CommentMissingSessions}}},
		{0, 4, scheduling.Readiness{State: models.ReadinessNotReady, Comments: []string{scheduling.CommentMissingSyllabus}}},
		{1, 1, scheduling.Readiness{State: models.ReadinessReady, Ready: true, Comments: []string{}}},
		{3, 9, scheduling.Readiness{State: models.ReadinessReady, Ready: true, Comments: []string{}}},
	}

	for _, tt := range tests {
		got := scheduling.EvaluateReadiness(tt.syllabus, tt.sessions)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("EvaluateReadiness(%d, %d) = %+v, want %+v", tt.syllabus, tt.sessions, got, tt.want)
		}
	}
}

func TestRecomputeReadiness(t *testing.T) {
	f := newFixture(t)
	c := f.course("C", "2024-01-01", "2024-03-01", 2)

	got, err := f.engine.RecomputeReadiness(f.ctx, c.ID)
	if err != nil {
		t.Fatalf("RecomputeReadiness: %v", err)
	}
	if got.State != models.ReadinessDraft {
		t.Errorf("expected draft, got %s", got.State)
	}

	f.syllabus(c.ID, "Intro")
	f.admit(sessionReq(c, f.room(1), f.lecturer("L"), "2024-01-10", "10:00", "11:00"))

	// Admission does not push readiness.
	stored, _ := f.repos.Courses.GetByID(f.ctx, c.ID)
	if stored.Ready {
		t.Error("readiness should stay stale until recomputed")
	}

	for i := 0; i < 2; i++ {
		got, err = f.engine.RecomputeReadiness(f.ctx, c.ID)
		if err != nil {
			t.Fatalf("RecomputeReadiness: %v", err)
		}
		if got.State != models.ReadinessReady || !got.Ready {
			t.Errorf("expected ready, got %+v", got)
		}
	}
	stored, _ = f.repos.Courses.GetByID(f.ctx, c.ID)
	if !stored.Ready {
		t.Error("expected ready flag to be stored")
	}
}

func TestRecomputeReadiness_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.RecomputeReadiness(f.ctx, uuid.New())
	assertKind(t, err, apperrors.ErrResourceNotFound)
}
