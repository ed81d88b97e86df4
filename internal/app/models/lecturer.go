package models

import "github.com/google/uuid"

// Lecturer defines the lecturer model based on the 'lecturers' table
type Lecturer struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Yaki"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number" example:"0541111111"`
	Email       string    `json:"email" db:"email" example:"yaki@gmail.com"`
}
