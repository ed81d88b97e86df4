package dto

// CreatePersonRequest is the body for creating a lecturer or a student
type CreatePersonRequest struct {
	Name        string `json:"name" binding:"required" example:"Yaki"`
	PhoneNumber string `json:"phoneNumber" binding:"required" example:"0541111111"`
	Email       string `json:"email" binding:"required" example:"yaki@gmail.com"`
}
