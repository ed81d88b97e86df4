package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
	"github.com/yigit/coursesched/internal/pkg/logger"
)

// errorMapping binds a sentinel error to its HTTP status and error code
type errorMapping struct {
	err    error
	status int
	code   dto.ErrorCode
}

// Ordered: the first sentinel found in the chain wins.
var errorMappings = []errorMapping{
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},

	{apperrors.ErrOutOfRange, http.StatusBadRequest, dto.ErrorCodeOutOfRange},
	{apperrors.ErrInvalidInterval, http.StatusBadRequest, dto.ErrorCodeInvalidInterval},
	{apperrors.ErrInvalidRange, http.StatusBadRequest, dto.ErrorCodeInvalidRange},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeResourceInvalid},

	{apperrors.ErrRoomConflict, http.StatusConflict, dto.ErrorCodeRoomConflict},
	{apperrors.ErrLecturerConflict, http.StatusConflict, dto.ErrorCodeLecturerConflict},
	{apperrors.ErrCourseSlotConflict, http.StatusConflict, dto.ErrorCodeCourseSlotConflict},
	{apperrors.ErrCourseFull, http.StatusConflict, dto.ErrorCodeCourseFull},
	{apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled},
	{apperrors.ErrStudentScheduleConflict, http.StatusConflict, dto.ErrorCodeStudentScheduleConflict},
	{apperrors.ErrCapacityBelowEnrollment, http.StatusConflict, dto.ErrorCodeCapacityBelowEnrollment},
	{apperrors.ErrSessionsPrecedeNewStart, http.StatusConflict, dto.ErrorCodeSessionsPrecedeNewStart},
	{apperrors.ErrSessionsFollowNewEnd, http.StatusConflict, dto.ErrorCodeSessionsFollowNewEnd},
	{apperrors.ErrResourceInUse, http.StatusConflict, dto.ErrorCodeResourceInUse},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
}

// StatusFor returns the HTTP status and error code for err
func StatusFor(err error) (int, dto.ErrorCode) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer
}

// HandleAPIError writes the error response for err. Known kinds carry their
// message and details; anything else is logged and reported as a 500.
func HandleAPIError(c *gin.Context, err error) {
	status, code := StatusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(status, dto.APIResponse{
			Error:     dto.NewErrorDetail(code, "Internal server error"),
			Timestamp: time.Now(),
		})
		return
	}

	detail := dto.NewErrorDetail(code, err.Error())
	if details := apperrors.DetailsOf(err); details != nil {
		detail = detail.WithDetails(details)
		if field, ok := details["field"].(string); ok {
			detail = detail.WithField(field)
		}
	}
	if status < http.StatusInternalServerError {
		detail = detail.WithSeverity(dto.ErrorSeverityWarning)
	}

	c.JSON(status, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}

// AbortBadRequest rejects a request whose path or query could not be parsed
func AbortBadRequest(c *gin.Context, message string, details interface{}) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if details != nil {
		detail = detail.WithDetails(details)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}
