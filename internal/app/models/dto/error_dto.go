package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceInvalid       ErrorCode = "RES_003"
	ErrorCodeResourceInUse         ErrorCode = "RES_004"

	// Scheduling errors
	ErrorCodeOutOfRange              ErrorCode = "SCH_001"
	ErrorCodeInvalidInterval         ErrorCode = "SCH_002"
	ErrorCodeRoomConflict            ErrorCode = "SCH_003"
	ErrorCodeLecturerConflict        ErrorCode = "SCH_004"
	ErrorCodeCourseSlotConflict      ErrorCode = "SCH_005"
	ErrorCodeCourseFull              ErrorCode = "SCH_006"
	ErrorCodeAlreadyEnrolled         ErrorCode = "SCH_007"
	ErrorCodeStudentScheduleConflict ErrorCode = "SCH_008"
	ErrorCodeInvalidRange            ErrorCode = "SCH_009"
	ErrorCodeCapacityBelowEnrollment ErrorCode = "SCH_010"
	ErrorCodeSessionsPrecedeNewStart ErrorCode = "SCH_011"
	ErrorCodeSessionsFollowNewEnd    ErrorCode = "SCH_012"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// Severity levels
const (
	ErrorSeverityInfo     ErrorSeverity = "INFO"
	ErrorSeverityWarning  ErrorSeverity = "WARNING"
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"SCH_003"`
	Message  string        `json:"message" example:"room is already booked for an overlapping time"`
	Field    string        `json:"field,omitempty" example:"email"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}
