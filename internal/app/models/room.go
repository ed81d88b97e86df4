package models

import "github.com/google/uuid"

// Room is a physical room a class session takes place in
type Room struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Number      int       `json:"number" db:"room_number" example:"1"` // Unique
	Description *string   `json:"description,omitempty" db:"description"`
}
