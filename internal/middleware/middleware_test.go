package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.NewResourceNotFoundError("course not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrOutOfRange, http.StatusBadRequest, dto.ErrorCodeOutOfRange},
		{apperrors.ErrInvalidInterval, http.StatusBadRequest, dto.ErrorCodeInvalidInterval},
		{apperrors.ErrInvalidRange, http.StatusBadRequest, dto.ErrorCodeInvalidRange},
		{apperrors.NewValidationError("email", "bad email"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
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
		{fmt.Errorf("wrapped: %w", apperrors.ErrResourceAlreadyExists), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := StatusFor(tt.err)
			if status != tt.status || code != tt.code {
				t.Errorf("StatusFor() = (%d, %s), want (%d, %s)", status, code, tt.status, tt.code)
			}
		})
	}
}

func TestHandleAPIError_CarriesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)

	err := apperrors.NewCustomError(apperrors.ErrRoomConflict, "room is already booked for an overlapping time").
		WithDetails(map[string]interface{}{"conflictingId": "abc"})
	HandleAPIError(c, err)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var body struct {
		Error dto.ErrorDetail `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != dto.ErrorCodeRoomConflict {
		t.Errorf("code = %s", body.Error.Code)
	}
	details, _ := body.Error.Details.(map[string]interface{})
	if details["conflictingId"] != "abc" {
		t.Errorf("details = %v", body.Error.Details)
	}
}

func TestHandleAPIError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)

	HandleAPIError(c, fmt.Errorf("pq: password authentication failed"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("internal error leaked into the response: %s", w.Body.String())
	}
}

func TestBindJSON(t *testing.T) {
	type body struct {
		CourseID string `json:"courseId" binding:"required,uuid"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if !BindJSON(c, &b) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"courseId":"6f1c1f44-3c1e-4c53-9a2f-4a0f5f5f2a11"}`, http.StatusNoContent},
		{"missing", `{}`, http.StatusBadRequest},
		{"not a uuid", `{"courseId":"42"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestRequestLoggerAndID(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected a generated request id")
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["path"] != "/ping" || entry["status"] != float64(200) || entry["requestID"] != id {
		t.Errorf("unexpected log entry %v", entry)
	}
}
