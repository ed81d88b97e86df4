package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

func seedCourse(t *testing.T, repos interface {
	Create(context.Context, *models.Course) error
}) *models.Course {
	t.Helper()
	c := &models.Course{
		Name:            "JavaScript",
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MaximumStudents: 2,
	}
	if err := repos.Create(context.Background(), c); err != nil {
		t.Fatalf("create course: %v", err)
	}
	return c
}

func TestWithinTx_UndoesWritesOnError(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	c := seedCourse(t, repos.Courses)
	room := &models.Room{Number: 1}
	lecturer := &models.Lecturer{Name: "Yaki"}
	_ = repos.Rooms.Create(ctx, room)
	_ = repos.Lecturers.Create(ctx, lecturer)
	boom := errors.New("boom")

	err := repos.Store.WithinTx(ctx, []scheduling.ResourceKey{scheduling.CourseKey(c.ID)}, func(ctx context.Context, tx scheduling.Store) error {
		if _, err := tx.CommitSession(ctx, &models.ClassSession{CourseID: c.ID, RoomID: room.ID, LecturerID: lecturer.ID, Date: c.StartDate, StartTime: 600, EndTime: 660}); err != nil {
			return err
		}
		name := "Renamed"
		if _, err := tx.UpdateCourseFields(ctx, c.ID, models.CourseUpdate{Name: &name}); err != nil {
			return err
		}
		if err := tx.SetCourseReady(ctx, c.ID, true); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	n, _ := repos.Store.CountSessions(ctx, scheduling.SessionFilter{CourseID: &c.ID})
	if n != 0 {
		t.Errorf("expected the session to be undone, found %d", n)
	}
	stored, _ := repos.Store.FindCourse(ctx, c.ID)
	if stored.Name != "JavaScript" || stored.Ready {
		t.Errorf("expected course fields to be undone, got %+v", stored)
	}
}

func TestWithinTx_KeepsWritesOnSuccess(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	c := seedCourse(t, repos.Courses)
	student := &models.Student{Name: "Dana"}
	if err := repos.Students.Create(ctx, student); err != nil {
		t.Fatalf("create student: %v", err)
	}

	err := repos.Store.WithinTx(ctx, []scheduling.ResourceKey{scheduling.StudentKey(student.ID)}, func(ctx context.Context, tx scheduling.Store) error {
		_, err := tx.CommitEnrollment(ctx, &models.Enrollment{StudentID: student.ID, CourseID: c.ID})
		return err
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	courses, _ := repos.Students.Courses(ctx, student.ID)
	if len(courses) != 1 || courses[0].ID != c.ID {
		t.Errorf("expected enrollment in %s, got %v", c.ID, courses)
	}
	if _, err := repos.Store.CommitEnrollment(ctx, &models.Enrollment{StudentID: student.ID, CourseID: c.ID}); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("expected ErrAlreadyEnrolled on duplicate, got %v", err)
	}
}

func TestFind_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewRepositories().Store
	id := uuid.New()

	if _, err := s.FindCourse(ctx, id); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("FindCourse: %v", err)
	}
	if _, err := s.FindRoom(ctx, id); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("FindRoom: %v", err)
	}
	if _, err := s.FindLecturer(ctx, id); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("FindLecturer: %v", err)
	}
	if _, err := s.FindStudent(ctx, id); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("FindStudent: %v", err)
	}
	if _, err := s.FindSyllabusEntry(ctx, id); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("FindSyllabusEntry: %v", err)
	}
}

func TestRemoveCourse_Cascades(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	c := seedCourse(t, repos.Courses)
	room := &models.Room{Number: 1}
	lecturer := &models.Lecturer{Name: "Yaki"}
	student := &models.Student{Name: "Dana"}
	_ = repos.Rooms.Create(ctx, room)
	_ = repos.Lecturers.Create(ctx, lecturer)
	_ = repos.Students.Create(ctx, student)
	_ = repos.Syllabus.Create(ctx, &models.SyllabusEntry{CourseID: c.ID, Title: "Intro"})
	if _, err := repos.Store.CommitSession(ctx, &models.ClassSession{CourseID: c.ID, RoomID: room.ID, LecturerID: lecturer.ID, Date: c.StartDate, StartTime: 600, EndTime: 660}); err != nil {
		t.Fatalf("CommitSession: %v", err)
	}
	if _, err := repos.Store.CommitEnrollment(ctx, &models.Enrollment{StudentID: student.ID, CourseID: c.ID}); err != nil {
		t.Fatalf("CommitEnrollment: %v", err)
	}

	if err := repos.Store.Remove(ctx, models.ResourceRoom, room.ID); !errors.Is(err, apperrors.ErrResourceInUse) {
		t.Errorf("expected room in use, got %v", err)
	}
	if err := repos.Store.Remove(ctx, models.ResourceLecturer, lecturer.ID); !errors.Is(err, apperrors.ErrResourceInUse) {
		t.Errorf("expected lecturer in use, got %v", err)
	}

	if err := repos.Store.Remove(ctx, models.ResourceCourse, c.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if n, _ := repos.Store.CountSessions(ctx, scheduling.SessionFilter{CourseID: &c.ID}); n != 0 {
		t.Errorf("sessions left: %d", n)
	}
	if n, _ := repos.Store.CountSyllabusEntries(ctx, c.ID); n != 0 {
		t.Errorf("syllabus entries left: %d", n)
	}
	if n, _ := repos.Store.CountEnrollments(ctx, c.ID); n != 0 {
		t.Errorf("enrollments left: %d", n)
	}
	if err := repos.Store.Remove(ctx, models.ResourceRoom, room.ID); err != nil {
		t.Errorf("room should be removable once unused: %v", err)
	}
	if err := repos.Store.Remove(ctx, models.ResourceCourse, c.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found on second remove, got %v", err)
	}
}

func TestRemove_UndoneWhenUnitFails(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	c := seedCourse(t, repos.Courses)
	student := &models.Student{Name: "Dana"}
	_ = repos.Students.Create(ctx, student)
	if _, err := repos.Store.CommitEnrollment(ctx, &models.Enrollment{StudentID: student.ID, CourseID: c.ID}); err != nil {
		t.Fatalf("CommitEnrollment: %v", err)
	}
	boom := errors.New("boom")

	keys := []scheduling.ResourceKey{scheduling.CourseKey(c.ID), scheduling.StudentKey(student.ID)}
	err := repos.Store.WithinTx(ctx, keys, func(ctx context.Context, tx scheduling.Store) error {
		if err := tx.Remove(ctx, models.ResourceStudent, student.ID); err != nil {
			return err
		}
		if err := tx.Remove(ctx, models.ResourceCourse, c.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := repos.Store.FindStudent(ctx, student.ID); err != nil {
		t.Errorf("student should be restored: %v", err)
	}
	if _, err := repos.Store.FindCourse(ctx, c.ID); err != nil {
		t.Errorf("course should be restored: %v", err)
	}
	if n, _ := repos.Store.CountEnrollments(ctx, c.ID); n != 1 {
		t.Errorf("enrollment should be restored, count = %d", n)
	}
}

func TestCommit_RejectsMissingReferences(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	c := seedCourse(t, repos.Courses)
	room := &models.Room{Number: 1}
	lecturer := &models.Lecturer{Name: "Yaki"}
	student := &models.Student{Name: "Dana"}
	_ = repos.Rooms.Create(ctx, room)
	_ = repos.Lecturers.Create(ctx, lecturer)
	_ = repos.Students.Create(ctx, student)
	missing := uuid.New()

	sessions := map[string]*models.ClassSession{
		"course":   {CourseID: missing, RoomID: room.ID, LecturerID: lecturer.ID, Date: c.StartDate, StartTime: 600, EndTime: 660},
		"room":     {CourseID: c.ID, RoomID: missing, LecturerID: lecturer.ID, Date: c.StartDate, StartTime: 600, EndTime: 660},
		"lecturer": {CourseID: c.ID, RoomID: room.ID, LecturerID: missing, Date: c.StartDate, StartTime: 600, EndTime: 660},
		"syllabus": {CourseID: c.ID, RoomID: room.ID, LecturerID: lecturer.ID, SyllabusID: &missing, Date: c.StartDate, StartTime: 600, EndTime: 660},
	}
	for name, session := range sessions {
		if _, err := repos.Store.CommitSession(ctx, session); !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("%s: expected not found, got %v", name, err)
		}
	}
	if n, _ := repos.Store.CountSessions(ctx, scheduling.SessionFilter{}); n != 0 {
		t.Errorf("rejected commits must not store sessions, found %d", n)
	}

	if _, err := repos.Store.CommitEnrollment(ctx, &models.Enrollment{StudentID: missing, CourseID: c.ID}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("missing student: expected not found, got %v", err)
	}
	if _, err := repos.Store.CommitEnrollment(ctx, &models.Enrollment{StudentID: student.ID, CourseID: missing}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("missing course: expected not found, got %v", err)
	}
}

func TestRoomCreate_UniqueNumber(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	if err := repos.Rooms.Create(ctx, &models.Room{Number: 7}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repos.Rooms.Create(ctx, &models.Room{Number: 7}); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists, got %v", err)
	}
}

func TestCourseList_Pages(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	for i := 0; i < 5; i++ {
		seedCourse(t, repos.Courses)
	}

	page, total, err := repos.Courses.List(ctx, 3, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 || len(page) != 2 {
		t.Errorf("got %d items of %d, want 2 of 5", len(page), total)
	}
	page, _, _ = repos.Courses.List(ctx, 10, 2)
	if len(page) != 0 {
		t.Errorf("expected an empty page past the end, got %d", len(page))
	}
}
