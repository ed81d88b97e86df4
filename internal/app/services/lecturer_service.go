package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/pkg/export"
	"github.com/yigit/coursesched/internal/pkg/helpers"
)

// LecturerService defines lecturer management and teaching queries
type LecturerService interface {
	CreateLecturer(ctx context.Context, req *dto.CreatePersonRequest) (*models.Lecturer, error)
	DeleteLecturer(ctx context.Context, id uuid.UUID) error
	CurrentCourses(ctx context.Context, id uuid.UUID) ([]*models.Course, error)
	CoursesInRange(ctx context.Context, id uuid.UUID, from, to string) ([]*models.Course, error)
	Schedule(ctx context.Context, id uuid.UUID, from, to string) ([]*models.SessionDetails, error)
	ExportSchedule(ctx context.Context, id uuid.UUID, from, to string) (*bytes.Buffer, string, error)
}

type lecturerServiceImpl struct {
	repo   repositories.LecturerRepository
	engine *scheduling.Engine
	clock  Clock
	logger zerolog.Logger
}

// NewLecturerService creates a new lecturer service instance
func NewLecturerService(deps Deps) LecturerService {
	return &lecturerServiceImpl{
		repo:   deps.Repos.Lecturers,
		engine: deps.Engine,
		clock:  deps.Clock,
		logger: deps.Logger.With().Str("service", "lecturer").Logger(),
	}
}

func (s *lecturerServiceImpl) CreateLecturer(ctx context.Context, req *dto.CreatePersonRequest) (*models.Lecturer, error) {
	p, err := validatePerson(req)
	if err != nil {
		return nil, err
	}

	lecturer := &models.Lecturer{Name: p.name, PhoneNumber: p.phone, Email: p.email}
	if err := s.repo.Create(ctx, lecturer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("lecturerID", lecturer.ID.String()).Msg("Lecturer created")
	return lecturer, nil
}

func (s *lecturerServiceImpl) DeleteLecturer(ctx context.Context, id uuid.UUID) error {
	return s.engine.DeleteLecturer(ctx, id)
}

func (s *lecturerServiceImpl) CurrentCourses(ctx context.Context, id uuid.UUID) ([]*models.Course, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	courses, err := s.repo.CurrentCourses(ctx, id, s.clock())
	return nonNilCourses(courses), err
}

func (s *lecturerServiceImpl) CoursesInRange(ctx context.Context, id uuid.UUID, from, to string) ([]*models.Course, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	courses, err := s.repo.CoursesInRange(ctx, id, start, end)
	return nonNilCourses(courses), err
}

func (s *lecturerServiceImpl) Schedule(ctx context.Context, id uuid.UUID, from, to string) ([]*models.SessionDetails, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sessions, err := s.repo.Schedule(ctx, id, start, end)
	return nonNilDetails(sessions), err
}

func (s *lecturerServiceImpl) ExportSchedule(ctx context.Context, id uuid.UUID, from, to string) (*bytes.Buffer, string, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, "", err
	}
	lecturer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	sessions, err := s.repo.Schedule(ctx, id, start, end)
	if err != nil {
		return nil, "", err
	}

	fromStr, toStr := helpers.FormatDate(start), helpers.FormatDate(end)
	buf, err := export.ScheduleWorkbook(fmt.Sprintf("%s %s to %s", lecturer.Name, fromStr, toStr), sessions)
	if err != nil {
		s.logger.Error().Err(err).Str("lecturerID", id.String()).Msg("Failed to export schedule")
		return nil, "", err
	}
	return buf, export.Filename("lecturer", fromStr, toStr), nil
}

func nonNilCourses(cs []*models.Course) []*models.Course {
	if cs == nil {
		return []*models.Course{}
	}
	return cs
}

func nonNilDetails(ds []*models.SessionDetails) []*models.SessionDetails {
	if ds == nil {
		return []*models.SessionDetails{}
	}
	return ds
}
