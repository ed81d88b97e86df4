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
	"github.com/yigit/coursesched/internal/pkg/helpers"
	"github.com/yigit/coursesched/internal/pkg/validation"
	"github.com/yigit/coursesched/internal/pkg/websocket"
)

// CourseService defines course authoring, guarded edits and readiness
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID, full bool) (*models.Course, error)
	ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	RecomputeReadiness(ctx context.Context, id uuid.UUID) (*dto.ReadinessResponse, error)
	AddSyllabusEntry(ctx context.Context, courseID uuid.UUID, req *dto.CreateSyllabusEntryRequest) (*models.SyllabusEntry, error)
	ListSyllabus(ctx context.Context, courseID uuid.UUID) ([]*models.SyllabusEntry, error)
}

type courseServiceImpl struct {
	repos  *repositories.Repositories
	engine *scheduling.Engine
	events EventPublisher
	logger zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(deps Deps) CourseService {
	return &courseServiceImpl{
		repos:  deps.Repos,
		engine: deps.Engine,
		events: deps.Events,
		logger: deps.Logger.With().Str("service", "course").Logger(),
	}
}

func validateCourseName(name string) error {
	if !validation.CourseName(name) {
		return apperrors.NewValidationError("name", "name must be 2-100 letters, digits or spaces")
	}
	return nil
}

func validatePassScore(score int) error {
	if !validation.PassScore(score) {
		return apperrors.NewValidationError("minimumPassScore", "minimum pass score must be between 0 and 100")
	}
	return nil
}

func validateMaxStudents(n int) error {
	if !validation.MaxStudents(n) {
		return apperrors.NewValidationError("maximumStudents", "maximum students must be at least 1")
	}
	return nil
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{Name: strings.TrimSpace(req.Name), MaximumStudents: req.MaximumStudents}
	if req.MinimumPassScore != nil {
		course.MinimumPassScore = *req.MinimumPassScore
	}

	if err := validateCourseName(course.Name); err != nil {
		return nil, err
	}
	if err := validatePassScore(course.MinimumPassScore); err != nil {
		return nil, err
	}
	if err := validateMaxStudents(course.MaximumStudents); err != nil {
		return nil, err
	}

	var err error
	if course.StartDate, err = parseDate("startDate", req.StartDate); err != nil {
		return nil, err
	}
	if course.EndDate, err = parseDate("endDate", req.EndDate); err != nil {
		return nil, err
	}
	if course.StartDate.After(course.EndDate) {
		return nil, apperrors.ErrInvalidRange
	}

	if err := s.repos.Courses.Create(ctx, course); err != nil {
		s.logger.Error().Err(err).Str("name", course.Name).Msg("Failed to create course")
		return nil, err
	}

	s.logger.Info().Str("courseID", course.ID.String()).Str("name", course.Name).Msg("Course created")
	return course, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id uuid.UUID, full bool) (*models.Course, error) {
	course, err := s.repos.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !full {
		return course, nil
	}

	if course.Sessions, err = s.repos.Sessions.ListByCourse(ctx, id); err != nil {
		return nil, err
	}
	if course.Syllabus, err = s.repos.Syllabus.ListByCourse(ctx, id); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	courses, total, err := s.repos.Courses.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return &dto.CourseListResponse{
		Courses:        courses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// toCourseUpdate parses and validates the supplied fields of req
func toCourseUpdate(req *dto.UpdateCourseRequest) (models.CourseUpdate, error) {
	update := models.CourseUpdate{
		MinimumPassScore: req.MinimumPassScore,
		MaximumStudents:  req.MaximumStudents,
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateCourseName(name); err != nil {
			return update, err
		}
		update.Name = &name
	}
	if req.MinimumPassScore != nil {
		if err := validatePassScore(*req.MinimumPassScore); err != nil {
			return update, err
		}
	}
	if req.MaximumStudents != nil {
		if err := validateMaxStudents(*req.MaximumStudents); err != nil {
			return update, err
		}
	}
	if req.StartDate != nil {
		d, err := parseDate("startDate", *req.StartDate)
		if err != nil {
			return update, err
		}
		update.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := parseDate("endDate", *req.EndDate)
		if err != nil {
			return update, err
		}
		update.EndDate = &d
	}
	return update, nil
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id uuid.UUID, req *dto.UpdateCourseRequest) (*models.Course, error) {
	update, err := toCourseUpdate(req)
	if err != nil {
		return nil, err
	}

	course, err := s.engine.UpdateCourse(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if !update.IsEmpty() {
		s.events.Publish(websocket.EventCourseUpdated, course, courseTopics(id)...)
	}
	return course, nil
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.engine.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("courseID", id.String()).Msg("Course deleted")
	return nil
}

func (s *courseServiceImpl) RecomputeReadiness(ctx context.Context, id uuid.UUID) (*dto.ReadinessResponse, error) {
	r, err := s.engine.RecomputeReadiness(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReadinessResponse{
		CourseID: id.String(),
		State:    r.State,
		Ready:    r.Ready,
		Comments: r.Comments,
	}
	s.events.Publish(websocket.EventCourseReadiness, resp, courseTopics(id)...)
	return resp, nil
}

func (s *courseServiceImpl) AddSyllabusEntry(ctx context.Context, courseID uuid.UUID, req *dto.CreateSyllabusEntryRequest) (*models.SyllabusEntry, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}

	refs := req.References
	if refs == nil {
		refs = []string{}
	}
	entry := &models.SyllabusEntry{
		CourseID:    courseID,
		Title:       title,
		Description: req.Description,
		References:  refs,
	}
	if err := s.repos.Syllabus.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *courseServiceImpl) ListSyllabus(ctx context.Context, courseID uuid.UUID) ([]*models.SyllabusEntry, error) {
	if _, err := s.repos.Courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	entries, err := s.repos.Syllabus.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.SyllabusEntry{}
	}
	return entries, nil
}
