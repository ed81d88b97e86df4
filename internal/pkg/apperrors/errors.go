package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrResourceInUse         = errors.New("resource is referenced by other records")
	ErrConflict              = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Session admission errors
var (
	ErrOutOfRange         = errors.New("session date is outside the course window")
	ErrInvalidInterval    = errors.New("session start time must be before its end time")
	ErrRoomConflict       = errors.New("room is already booked for an overlapping time")
	ErrLecturerConflict   = errors.New("lecturer is already teaching at an overlapping time")
	ErrCourseSlotConflict = errors.New("course already has a session at an overlapping time")
)

// Enrollment admission errors
var (
	ErrCourseFull              = errors.New("course is full")
	ErrAlreadyEnrolled         = errors.New("student is already enrolled in this course")
	ErrStudentScheduleConflict = errors.New("student is already enrolled in a course during the specified time period")
)

// Course mutation errors
var (
	ErrInvalidRange            = errors.New("starting date is after end date")
	ErrCapacityBelowEnrollment = errors.New("maximum students is less than the number of students enrolled in this course")
	ErrSessionsPrecedeNewStart = errors.New("there are class sessions before the new starting date")
	ErrSessionsFollowNewEnd    = errors.New("there are class sessions after the new end date")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed field validation
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// DetailsOf returns the details attached to the first CustomError in err's chain
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
