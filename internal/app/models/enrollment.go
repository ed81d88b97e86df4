package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment links a student to a course
type Enrollment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	StudentID  uuid.UUID `json:"studentId" db:"student_id"`
	CourseID   uuid.UUID `json:"courseId" db:"course_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}
