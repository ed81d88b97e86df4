package dto

import "github.com/yigit/coursesched/internal/app/models"

// CreateCourseRequest represents course creation data. Dates accept
// YYYY-MM-DD, DD-MM-YYYY or DD.MM.YYYY.
type CreateCourseRequest struct {
	Name             string `json:"name" binding:"required,min=2,max=100" example:"JavaScript"`
	StartDate        string `json:"startDate" binding:"required" example:"2024-01-01"`
	EndDate          string `json:"endDate" binding:"required" example:"2024-03-01"`
	MinimumPassScore *int   `json:"minimumPassScore" binding:"required,min=0,max=100" example:"75"`
	MaximumStudents  int    `json:"maximumStudents" binding:"required,min=1" example:"50"`
}

// UpdateCourseRequest is a partial course update. Omitted fields are left untouched.
type UpdateCourseRequest struct {
	Name             *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	StartDate        *string `json:"startDate,omitempty"`
	EndDate          *string `json:"endDate,omitempty"`
	MinimumPassScore *int    `json:"minimumPassScore,omitempty" binding:"omitempty,min=0,max=100"`
	MaximumStudents  *int    `json:"maximumStudents,omitempty" binding:"omitempty,min=1"`
}

// CourseListResponse represents one page of courses
type CourseListResponse struct {
	Courses []*models.Course `json:"courses"`
	PaginationInfo
}

// CreateSyllabusEntryRequest represents a new syllabus entry
type CreateSyllabusEntryRequest struct {
	Title       string   `json:"title" binding:"required,max=200" example:"JavaScript syllabus"`
	Description string   `json:"description" example:"First lesson."`
	References  []string `json:"references"`
}

// ReadinessResponse is the outcome of a readiness recomputation
type ReadinessResponse struct {
	CourseID string                `json:"courseId"`
	State    models.ReadinessState `json:"state" example:"not-ready"`
	Ready    bool                  `json:"ready"`
	Comments []string              `json:"comments"`
}
