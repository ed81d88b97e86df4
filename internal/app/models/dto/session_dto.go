package dto

// CreateSessionRequest represents a candidate class session. Times are HH:MM, 24h.
type CreateSessionRequest struct {
	CourseID   string  `json:"courseId" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required" example:"2024-01-10"`
	StartTime  string  `json:"startTime" binding:"required" example:"18:00"`
	EndTime    string  `json:"endTime" binding:"required" example:"20:00"`
	RoomID     string  `json:"roomId" binding:"required,uuid"`
	LecturerID string  `json:"lecturerId" binding:"required,uuid"`
	SyllabusID *string `json:"syllabusId,omitempty" binding:"omitempty,uuid"`
}

// CreateRoomRequest represents room creation data
type CreateRoomRequest struct {
	Number      int     `json:"number" binding:"required,min=1" example:"1"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
}

// EnrollRequest names the course a student enrolls into
type EnrollRequest struct {
	CourseID string `json:"courseId" binding:"required,uuid"`
}
