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
	"github.com/yigit/coursesched/internal/pkg/websocket"
)

// StudentService defines student management, enrollment and study queries
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreatePersonRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	Withdraw(ctx context.Context, studentID, courseID uuid.UUID) error
	CurrentCourses(ctx context.Context, id uuid.UUID) ([]*models.Course, error)
	Courses(ctx context.Context, id uuid.UUID) ([]*models.Course, error)
	Schedule(ctx context.Context, id uuid.UUID, from, to string) ([]*models.SessionDetails, error)
	ExportSchedule(ctx context.Context, id uuid.UUID, from, to string) (*bytes.Buffer, string, error)
}

type studentServiceImpl struct {
	repo        repositories.StudentRepository
	enrollments repositories.EnrollmentRepository
	engine      *scheduling.Engine
	events      EventPublisher
	clock       Clock
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(deps Deps) StudentService {
	return &studentServiceImpl{
		repo:        deps.Repos.Students,
		enrollments: deps.Repos.Enrollments,
		engine:      deps.Engine,
		events:      deps.Events,
		clock:       deps.Clock,
		logger:      deps.Logger.With().Str("service", "student").Logger(),
	}
}

func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreatePersonRequest) (*models.Student, error) {
	p, err := validatePerson(req)
	if err != nil {
		return nil, err
	}

	student := &models.Student{Name: p.name, PhoneNumber: p.phone, Email: p.email}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentID", student.ID.String()).Msg("Student created")
	return student, nil
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return s.engine.DeleteStudent(ctx, id)
}

func (s *studentServiceImpl) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	enrollment, err := s.engine.AdmitEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(websocket.EventEnrollmentAdmitted, enrollment, courseTopics(courseID)...)
	return enrollment, nil
}

func (s *studentServiceImpl) Withdraw(ctx context.Context, studentID, courseID uuid.UUID) error {
	if err := s.enrollments.Delete(ctx, studentID, courseID); err != nil {
		return err
	}

	s.logger.Info().
		Str("studentID", studentID.String()).
		Str("courseID", courseID.String()).
		Msg("Student withdrawn from course")
	s.events.Publish(websocket.EventEnrollmentWithdrawn, map[string]string{
		"studentId": studentID.String(),
		"courseId":  courseID.String(),
	}, courseTopics(courseID)...)
	return nil
}

func (s *studentServiceImpl) CurrentCourses(ctx context.Context, id uuid.UUID) ([]*models.Course, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	courses, err := s.repo.CurrentCourses(ctx, id, s.clock())
	return nonNilCourses(courses), err
}

func (s *studentServiceImpl) Courses(ctx context.Context, id uuid.UUID) ([]*models.Course, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	courses, err := s.repo.Courses(ctx, id)
	return nonNilCourses(courses), err
}

func (s *studentServiceImpl) Schedule(ctx context.Context, id uuid.UUID, from, to string) ([]*models.SessionDetails, error) {
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

func (s *studentServiceImpl) ExportSchedule(ctx context.Context, id uuid.UUID, from, to string) (*bytes.Buffer, string, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, "", err
	}
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	sessions, err := s.repo.Schedule(ctx, id, start, end)
	if err != nil {
		return nil, "", err
	}

	fromStr, toStr := helpers.FormatDate(start), helpers.FormatDate(end)
	buf, err := export.ScheduleWorkbook(fmt.Sprintf("%s %s to %s", student.Name, fromStr, toStr), sessions)
	if err != nil {
		s.logger.Error().Err(err).Str("studentID", id.String()).Msg("Failed to export schedule")
		return nil, "", err
	}
	return buf, export.Filename("student", fromStr, toStr), nil
}
