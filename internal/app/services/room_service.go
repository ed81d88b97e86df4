package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// RoomService defines room management
type RoomService interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error)
	GetAllRooms(ctx context.Context) ([]*models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type roomServiceImpl struct {
	repo   repositories.RoomRepository
	engine *scheduling.Engine
	logger zerolog.Logger
}

// NewRoomService creates a new room service instance
func NewRoomService(deps Deps) RoomService {
	return &roomServiceImpl{
		repo:   deps.Repos.Rooms,
		engine: deps.Engine,
		logger: deps.Logger.With().Str("service", "room").Logger(),
	}
}

func (s *roomServiceImpl) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error) {
	if req.Number < 1 {
		return nil, apperrors.NewValidationError("number", "room number must be positive")
	}

	room := &models.Room{Number: req.Number}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		room.Description = &desc
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info().Int("number", room.Number).Msg("Room created")
	return room, nil
}

func (s *roomServiceImpl) GetAllRooms(ctx context.Context) ([]*models.Room, error) {
	rooms, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []*models.Room{}
	}
	return rooms, nil
}

func (s *roomServiceImpl) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return s.engine.DeleteRoom(ctx, id)
}
