// Package services holds the application use cases behind the HTTP controllers.
// Admission and course edits go through the scheduling engine; plain catalog
// reads and writes go straight to the repositories.
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/helpers"
)

// Clock returns the current day. Current-course queries depend on it.
type Clock func() time.Time

// Services bundles every service the controllers need
type Services struct {
	Courses   CourseService
	Sessions  SessionService
	Rooms     RoomService
	Lecturers LecturerService
	Students  StudentService
}

// Deps are the collaborators shared by all services
type Deps struct {
	Repos  *repositories.Repositories
	Engine *scheduling.Engine
	Events EventPublisher
	Clock  Clock
	Logger zerolog.Logger
}

// NewServices wires all services from deps. A nil publisher or clock falls
// back to NopPublisher and helpers.Today.
func NewServices(deps Deps) *Services {
	if deps.Events == nil {
		deps.Events = NopPublisher{}
	}
	if deps.Clock == nil {
		deps.Clock = helpers.Today
	}
	return &Services{
		Courses:   NewCourseService(deps),
		Sessions:  NewSessionService(deps),
		Rooms:     NewRoomService(deps),
		Lecturers: NewLecturerService(deps),
		Students:  NewStudentService(deps),
	}
}

// ParseID parses a path or body identifier
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError(field, field+" must be a valid UUID")
	}
	return id, nil
}

// parseDate parses an API date for field
func parseDate(field, raw string) (time.Time, error) {
	d, err := helpers.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, err.Error())
	}
	return d, nil
}

// parseDateRange parses an inclusive [from, to] pair of path dates
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := parseDate("from", from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate("to", to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.NewCustomError(apperrors.ErrInvalidRange, "from date is after to date")
	}
	return start, end, nil
}
