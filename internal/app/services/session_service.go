package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/websocket"
)

// SessionService defines class session admission and lookup
type SessionService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*models.ClassSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.SessionDetails, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type sessionServiceImpl struct {
	repos  *repositories.Repositories
	engine *scheduling.Engine
	events EventPublisher
	logger zerolog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(deps Deps) SessionService {
	return &sessionServiceImpl{
		repos:  deps.Repos,
		engine: deps.Engine,
		events: deps.Events,
		logger: deps.Logger.With().Str("service", "session").Logger(),
	}
}

// toSessionRequest parses the wire form of a candidate session
func toSessionRequest(req *dto.CreateSessionRequest) (scheduling.SessionRequest, error) {
	var out scheduling.SessionRequest
	var err error

	if out.CourseID, err = ParseID("courseId", req.CourseID); err != nil {
		return out, err
	}
	if out.RoomID, err = ParseID("roomId", req.RoomID); err != nil {
		return out, err
	}
	if out.LecturerID, err = ParseID("lecturerId", req.LecturerID); err != nil {
		return out, err
	}
	if req.SyllabusID != nil && *req.SyllabusID != "" {
		id, err := ParseID("syllabusId", *req.SyllabusID)
		if err != nil {
			return out, err
		}
		out.SyllabusID = &id
	}
	if out.Date, err = parseDate("date", req.Date); err != nil {
		return out, err
	}
	if out.StartTime, err = models.ParseTimeOfDay(req.StartTime); err != nil {
		return out, apperrors.NewValidationError("startTime", err.Error())
	}
	if out.EndTime, err = models.ParseTimeOfDay(req.EndTime); err != nil {
		return out, apperrors.NewValidationError("endTime", err.Error())
	}
	return out, nil
}

func (s *sessionServiceImpl) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*models.ClassSession, error) {
	candidate, err := toSessionRequest(req)
	if err != nil {
		return nil, err
	}

	session, err := s.engine.AdmitSession(ctx, candidate)
	if err != nil {
		return nil, err
	}

	s.events.Publish(websocket.EventSessionAdmitted, session, sessionTopics(session)...)
	return session, nil
}

func (s *sessionServiceImpl) GetSession(ctx context.Context, id uuid.UUID) (*models.SessionDetails, error) {
	return s.repos.Sessions.GetByID(ctx, id)
}

func (s *sessionServiceImpl) DeleteSession(ctx context.Context, id uuid.UUID) error {
	session, err := s.repos.Sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Sessions.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("sessionID", id.String()).Msg("Class session deleted")
	s.events.Publish(websocket.EventSessionDeleted, session, sessionTopics(&session.ClassSession)...)
	return nil
}
