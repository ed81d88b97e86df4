package scheduling_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// pausingStore stops admissions right before their commit until release is closed
type pausingStore struct {
	scheduling.Store
	atCommit chan struct{}
	release  chan struct{}
	once     *sync.Once
}

func newPausingStore(inner scheduling.Store) *pausingStore {
	return &pausingStore{Store: inner, atCommit: make(chan struct{}), release: make(chan struct{}), once: &sync.Once{}}
}

func (p *pausingStore) WithinTx(ctx context.Context, keys []scheduling.ResourceKey, fn func(ctx context.Context, tx scheduling.Store) error) error {
	return p.Store.WithinTx(ctx, keys, func(ctx context.Context, tx scheduling.Store) error {
		return fn(ctx, &pausingStore{Store: tx, atCommit: p.atCommit, release: p.release, once: p.once})
	})
}

func (p *pausingStore) pause() {
	p.once.Do(func() { close(p.atCommit) })
	<-p.release
}

func (p *pausingStore) CommitSession(ctx context.Context, s *models.ClassSession) (*models.ClassSession, error) {
	p.pause()
	return p.Store.CommitSession(ctx, s)
}

func (p *pausingStore) CommitEnrollment(ctx context.Context, e *models.Enrollment) (*models.Enrollment, error) {
	p.pause()
	return p.Store.CommitEnrollment(ctx, e)
}

// assertBlocked fails if done delivers before the admission is released
func assertBlocked(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		t.Fatalf("delete finished while an admission held the lock: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeleteCourse_WaitsForSessionAdmission(t *testing.T) {
	f := newFixture(t)
	c := f.course("C", "2024-01-01", "2024-03-01", 2)
	r, l := f.room(1), f.lecturer("L")
	paused := newPausingStore(f.repos.Store)
	engine := scheduling.NewEngine(paused, zerolog.Nop())

	admitted := make(chan error, 1)
	go func() {
		_, err := engine.AdmitSession(f.ctx, sessionReq(c, r, l, "2024-01-10", "18:00", "20:00"))
		admitted <- err
	}()
	<-paused.atCommit

	deleted := make(chan error, 1)
	go func() { deleted <- engine.DeleteCourse(f.ctx, c.ID) }()
	assertBlocked(t, deleted)

	close(paused.release)
	if err := <-admitted; err != nil {
		t.Fatalf("AdmitSession: %v", err)
	}
	if err := <-deleted; err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}

	if _, err := f.repos.Store.FindCourse(f.ctx, c.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("course should be gone, got %v", err)
	}
	if n, _ := f.repos.Store.CountSessions(f.ctx, scheduling.SessionFilter{CourseID: &c.ID}); n != 0 {
		t.Errorf("orphan sessions left: %d", n)
	}
}

func TestDeleteStudent_WaitsForEnrollmentAdmission(t *testing.T) {
	f := newFixture(t)
	c := f.course("C", "2024-01-01", "2024-03-01", 2)
	s := f.student("A")
	paused := newPausingStore(f.repos.Store)
	engine := scheduling.NewEngine(paused, zerolog.Nop())

	admitted := make(chan error, 1)
	go func() {
		_, err := engine.AdmitEnrollment(f.ctx, s.ID, c.ID)
		admitted <- err
	}()
	<-paused.atCommit

	deleted := make(chan error, 1)
	go func() { deleted <- engine.DeleteStudent(f.ctx, s.ID) }()
	assertBlocked(t, deleted)

	close(paused.release)
	if err := <-admitted; err != nil {
		t.Fatalf("AdmitEnrollment: %v", err)
	}
	if err := <-deleted; err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	if n, _ := f.repos.Store.CountEnrollments(f.ctx, c.ID); n != 0 {
		t.Errorf("orphan enrollments left: %d", n)
	}
}

func TestAdmission_AfterDeleteIsNotFound(t *testing.T) {
	f := newFixture(t)
	c := f.course("C", "2024-01-01", "2024-03-01", 2)
	r, l := f.room(1), f.lecturer("L")
	s := f.student("A")

	if err := f.engine.DeleteRoom(f.ctx, r.ID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	_, err := f.engine.AdmitSession(f.ctx, sessionReq(c, r, l, "2024-01-10", "18:00", "20:00"))
	assertKind(t, err, apperrors.ErrResourceNotFound)

	if err := f.engine.DeleteCourse(f.ctx, c.ID); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	_, err = f.engine.AdmitEnrollment(f.ctx, s.ID, c.ID)
	assertKind(t, err, apperrors.ErrResourceNotFound)
}

func TestDelete_ScheduledResourcesInUse(t *testing.T) {
	f := newFixture(t)
	c := f.course("C", "2024-01-01", "2024-03-01", 2)
	r, l := f.room(1), f.lecturer("L")
	f.admit(sessionReq(c, r, l, "2024-01-10", "18:00", "20:00"))

	assertKind(t, f.engine.DeleteRoom(f.ctx, r.ID), apperrors.ErrResourceInUse)
	assertKind(t, f.engine.DeleteLecturer(f.ctx, l.ID), apperrors.ErrResourceInUse)
	assertKind(t, f.engine.DeleteLecturer(f.ctx, uuid.New()), apperrors.ErrResourceNotFound)
}
