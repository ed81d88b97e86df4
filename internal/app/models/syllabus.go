package models

import (
	"time"

	"github.com/google/uuid"
)

// SyllabusEntry is one item of a course syllabus. Only its count matters for readiness.
type SyllabusEntry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CourseID    uuid.UUID `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title" example:"JavaScript syllabus"`
	Description string    `json:"description" db:"description" example:"First lesson."`
	References  []string  `json:"references" db:"references_list"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
