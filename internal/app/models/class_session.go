package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassSession is a single scheduled class meeting of a course.
type ClassSession struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CourseID   uuid.UUID  `json:"courseId" db:"course_id"`
	Date       time.Time  `json:"date" db:"session_date"`                       // Calendar day, time part ignored
	StartTime  TimeOfDay  `json:"startTime" db:"start_minute" example:"18:00"` // Inclusive
	EndTime    TimeOfDay  `json:"endTime" db:"end_minute" example:"21:30"`     // Exclusive
	RoomID     uuid.UUID  `json:"roomId" db:"room_id"`
	LecturerID uuid.UUID  `json:"lecturerId" db:"lecturer_id"`
	SyllabusID *uuid.UUID `json:"syllabusId,omitempty" db:"syllabus_id"` // Nullable
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// SessionDetails is a class session joined with the names of what it references.
type SessionDetails struct {
	ClassSession
	CourseName   string `json:"courseName" db:"course_name"`
	RoomNumber   int    `json:"roomNumber" db:"room_number"`
	LecturerName string `json:"lecturerName" db:"lecturer_name"`
}
