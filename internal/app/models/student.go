package models

import "github.com/google/uuid"

// Student defines the student model based on the 'students' table
type Student struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Inon"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number" example:"0542222222"`
	Email       string    `json:"email" db:"email" example:"inon@school.edu"`
}
