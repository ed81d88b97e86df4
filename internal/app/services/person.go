package services

import (
	"strings"

	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/validation"
)

// person is the validated form of a lecturer or student creation request
type person struct {
	name, phone, email string
}

func validatePerson(req *dto.CreatePersonRequest) (person, error) {
	p := person{
		name:  strings.TrimSpace(req.Name),
		phone: strings.TrimSpace(req.PhoneNumber),
		email: strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if !validation.PersonName(p.name) {
		return p, apperrors.NewValidationError("name", "name must be 2-100 letters or spaces")
	}
	if !validation.Phone(p.phone) {
		return p, apperrors.NewValidationError("phoneNumber", "phone number is not valid")
	}
	if !validation.Email(p.email) {
		return p, apperrors.NewValidationError("email", "email is not valid")
	}
	return p, nil
}
