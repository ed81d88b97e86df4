package services

import (
	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/pkg/websocket"
)

// EventPublisher pushes calendar changes to live subscribers
type EventPublisher interface {
	Publish(eventType string, payload interface{}, topics ...string)
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(string, interface{}, ...string) {}

func sessionTopics(s *models.ClassSession) []string {
	return []string{
		websocket.CourseTopic(s.CourseID),
		websocket.RoomTopic(s.RoomID),
		websocket.LecturerTopic(s.LecturerID),
	}
}

func courseTopics(id uuid.UUID) []string {
	return []string{websocket.CourseTopic(id)}
}
