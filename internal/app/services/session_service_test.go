package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/websocket"
)

func TestCreateSession_ParsesWireForm(t *testing.T) {
	e := newEnv(t, "2024-01-01")
	c := e.course("JavaScript", "2024-01-01", "2024-03-01", 10)
	r, l := e.room(1), e.lecturer("Yaki")

	base := dto.CreateSessionRequest{
		CourseID: c.ID.String(), RoomID: r.ID.String(), LecturerID: l.ID.String(),
		Date: "2024-01-10", StartTime: "18:00", EndTime: "20:00",
	}

	tests := []struct {
		name   string
		mutate func(*dto.CreateSessionRequest)
		kind   error
	}{
		{"bad course id", func(r *dto.CreateSessionRequest) { r.CourseID = "x" }, apperrors.ErrValidationFailed},
		{"bad date", func(r *dto.CreateSessionRequest) { r.Date = "tomorrow" }, apperrors.ErrValidationFailed},
		{"bad start", func(r *dto.CreateSessionRequest) { r.StartTime = "25:00" }, apperrors.ErrValidationFailed},
		{"bad syllabus id", func(r *dto.CreateSessionRequest) { r.SyllabusID = strPtr("nope") }, apperrors.ErrValidationFailed},
		{"reversed interval", func(r *dto.CreateSessionRequest) { r.StartTime, r.EndTime = "20:00", "18:00" }, apperrors.ErrInvalidInterval},
		{"outside window", func(r *dto.CreateSessionRequest) { r.Date = "2024-03-02" }, apperrors.ErrOutOfRange},
		{"unknown room", func(r *dto.CreateSessionRequest) { r.RoomID = uuid.NewString() }, apperrors.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := e.svc.Sessions.CreateSession(e.ctx, &req)
			assertKind(t, err, tt.kind)
		})
	}

	s, err := e.svc.Sessions.CreateSession(e.ctx, &base)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.StartTime.String() != "18:00" || s.EndTime.String() != "20:00" {
		t.Errorf("unexpected times %s-%s", s.StartTime, s.EndTime)
	}

	_, err = e.svc.Sessions.CreateSession(e.ctx, &base)
	assertKind(t, err, apperrors.ErrRoomConflict)
}

func TestCreateSession_PublishesToResourceTopics(t *testing.T) {
	e := newEnv(t, "2024-01-01")
	c := e.course("JavaScript", "2024-01-01", "2024-03-01", 10)
	r, l := e.room(1), e.lecturer("Yaki")
	e.session(c, r, l, "2024-01-10", "18:00", "20:00")

	if len(e.events.events) != 1 {
		t.Fatalf("expected one event, got %d", len(e.events.events))
	}
	ev := e.events.events[0]
	if ev.eventType != websocket.EventSessionAdmitted {
		t.Errorf("type = %s", ev.eventType)
	}
	want := map[string]bool{
		websocket.CourseTopic(c.ID):   true,
		websocket.RoomTopic(r.ID):     true,
		websocket.LecturerTopic(l.ID): true,
	}
	for _, topic := range ev.topics {
		delete(want, topic)
	}
	if len(want) != 0 {
		t.Errorf("missing topics %v", want)
	}
}

func TestDeleteSession_FreesTheSlot(t *testing.T) {
	e := newEnv(t, "2024-01-01")
	c := e.course("JavaScript", "2024-01-01", "2024-03-01", 10)
	r, l := e.room(1), e.lecturer("Yaki")
	s := e.session(c, r, l, "2024-01-10", "18:00", "20:00")

	details, err := e.svc.Sessions.GetSession(e.ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if details.CourseName != "JavaScript" || details.RoomNumber != 1 || details.LecturerName != "Yaki" {
		t.Errorf("unexpected details %+v", details)
	}

	if err := e.svc.Sessions.DeleteSession(e.ctx, s.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	assertKind(t, e.svc.Sessions.DeleteSession(e.ctx, s.ID), apperrors.ErrResourceNotFound)

	e.session(c, r, l, "2024-01-10", "18:00", "20:00")
}
