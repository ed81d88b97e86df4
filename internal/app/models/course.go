package models

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a time-bounded course offering.
type Course struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name" example:"JavaScript"`
	StartDate        time.Time `json:"startDate" db:"start_date"`
	EndDate          time.Time `json:"endDate" db:"end_date"`
	MinimumPassScore int       `json:"minimumPassScore" db:"minimum_pass_score" example:"75"`
	MaximumStudents  int       `json:"maximumStudents" db:"maximum_students" example:"50"`
	Ready            bool      `json:"ready" db:"ready"` // Persisted result of the last readiness evaluation
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Sessions []*ClassSession  `json:"sessions,omitempty"`
	Syllabus []*SyllabusEntry `json:"syllabus,omitempty"`
}

// Contains reports whether the calendar day d falls within the course window, both ends inclusive.
func (c *Course) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(c.StartDate)) && !day.After(DateOnly(c.EndDate))
}

// CourseUpdate is a partial update of a course. A nil field is left untouched.
type CourseUpdate struct {
	Name             *string
	StartDate        *time.Time
	EndDate          *time.Time
	MinimumPassScore *int
	MaximumStudents  *int
}

// IsEmpty reports whether the update carries no field at all
func (u CourseUpdate) IsEmpty() bool {
	return u.Name == nil && u.StartDate == nil && u.EndDate == nil &&
		u.MinimumPassScore == nil && u.MaximumStudents == nil
}

// Apply copies the supplied fields onto c.
func (u CourseUpdate) Apply(c *Course) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.StartDate != nil {
		c.StartDate = DateOnly(*u.StartDate)
	}
	if u.EndDate != nil {
		c.EndDate = DateOnly(*u.EndDate)
	}
	if u.MinimumPassScore != nil {
		c.MinimumPassScore = *u.MinimumPassScore
	}
	if u.MaximumStudents != nil {
		c.MaximumStudents = *u.MaximumStudents
	}
}
