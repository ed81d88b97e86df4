package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
	"github.com/yigit/coursesched/internal/app/scheduling"
)

// CourseRepository authors and reads courses
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error)
}

// RoomRepository manages rooms
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetAll(ctx context.Context) ([]*models.Room, error)
}

// LecturerRepository manages lecturers and answers their course queries
type LecturerRepository interface {
	Create(ctx context.Context, lecturer *models.Lecturer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lecturer, error)
	// CurrentCourses lists distinct courses the lecturer teaches whose window contains day
	CurrentCourses(ctx context.Context, id uuid.UUID, day time.Time) ([]*models.Course, error)
	// CoursesInRange lists distinct courses the lecturer teaches a session of in [from, to]
	CoursesInRange(ctx context.Context, id uuid.UUID, from, to time.Time) ([]*models.Course, error)
	Schedule(ctx context.Context, id uuid.UUID, from, to time.Time) ([]*models.SessionDetails, error)
}

// StudentRepository manages students and answers their course queries
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	CurrentCourses(ctx context.Context, id uuid.UUID, day time.Time) ([]*models.Course, error)
	Courses(ctx context.Context, id uuid.UUID) ([]*models.Course, error)
	Schedule(ctx context.Context, id uuid.UUID, from, to time.Time) ([]*models.SessionDetails, error)
}

// SyllabusRepository manages syllabus entries
type SyllabusRepository interface {
	Create(ctx context.Context, entry *models.SyllabusEntry) error
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.SyllabusEntry, error)
}

// SessionRepository reads and removes committed sessions. Sessions are only
// ever created through scheduling admission.
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.SessionDetails, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.ClassSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnrollmentRepository removes enrollments. Enrollments are only ever
// created through scheduling admission.
type EnrollmentRepository interface {
	Delete(ctx context.Context, studentID, courseID uuid.UUID) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Store       scheduling.Store
	Courses     CourseRepository
	Rooms       RoomRepository
	Lecturers   LecturerRepository
	Students    StudentRepository
	Syllabus    SyllabusRepository
	Sessions    SessionRepository
	Enrollments EnrollmentRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db *pgxpool.Pool, lockPrefix string) *Repositories {
	return &Repositories{
		Store:       NewStore(db, lockPrefix),
		Courses:     NewCourseRepository(db),
		Rooms:       NewRoomRepository(db),
		Lecturers:   NewLecturerRepository(db),
		Students:    NewStudentRepository(db),
		Syllabus:    NewSyllabusRepository(db),
		Sessions:    NewSessionRepository(db),
		Enrollments: NewEnrollmentRepository(db),
	}
}
