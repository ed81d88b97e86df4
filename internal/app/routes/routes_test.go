package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/controllers"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/repositories/memory"
	"github.com/yigit/coursesched/internal/app/scheduling"
	"github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/pkg/export"
	"github.com/yigit/coursesched/internal/pkg/websocket"
)

func newTestRouter(t *testing.T, health HealthCheck) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := memory.NewRepositories()
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	svc := services.NewServices(services.Deps{
		Repos:  repos,
		Engine: scheduling.NewEngine(repos.Store, zerolog.Nop()),
		Clock:  func() time.Time { return today },
		Logger: zerolog.Nop(),
	})

	r := gin.New()
	SetupRouter(r, Controllers{
		Courses:   controllers.NewCourseController(svc.Courses),
		Sessions:  controllers.NewSessionController(svc.Sessions),
		Rooms:     controllers.NewRoomController(svc.Rooms),
		Lecturers: controllers.NewLecturerController(svc.Lecturers),
		Students:  controllers.NewStudentController(svc.Students),
	}, health)
	return r
}

type apiResult struct {
	Data  json.RawMessage  `json:"data"`
	Error *dto.ErrorDetail `json:"error"`
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) (int, apiResult) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res apiResult
	if w.Header().Get("Content-Type") != export.ContentTypeXLSX && w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, res
}

// create posts body and returns the id of the created resource
func create(t *testing.T, r http.Handler, path string, body interface{}) string {
	t.Helper()
	code, res := call(t, r, http.MethodPost, path, body)
	if code != http.StatusCreated {
		t.Fatalf("POST %s = %d (%+v)", path, code, res.Error)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(res.Data, &out); err != nil {
		t.Fatalf("decode id: %v", err)
	}
	return out.ID
}

func TestPingAndHealth(t *testing.T) {
	r := newTestRouter(t, func(context.Context) error { return nil })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Errorf("ping = %d %q", w.Code, w.Body.String())
	}

	if code, _ := call(t, r, http.MethodGet, "/api/v1/health", nil); code != http.StatusOK {
		t.Errorf("health = %d", code)
	}

	down := newTestRouter(t, func(context.Context) error { return errors.New("down") })
	if code, _ := call(t, down, http.MethodGet, "/api/v1/health", nil); code != http.StatusServiceUnavailable {
		t.Errorf("health with failing store = %d", code)
	}
}

func TestHealth_ReportsCalendarClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRouter(r, Controllers{
		Calendar: websocket.NewHandler(websocket.NewHub(zerolog.Nop()), zerolog.Nop()),
	}, nil)

	code, res := call(t, r, http.MethodGet, "/api/v1/health", nil)
	if code != http.StatusOK {
		t.Fatalf("health = %d", code)
	}
	var data struct {
		Status          string `json:"status"`
		CalendarClients *int   `json:"calendarClients"`
	}
	if err := json.Unmarshal(res.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Status != "ok" || data.CalendarClients == nil || *data.CalendarClients != 0 {
		t.Errorf("health data = %s", res.Data)
	}
}

// The admission scenario: two courses, one room, two lecturers.
func TestSessionAdmissionOverHTTP(t *testing.T) {
	r := newTestRouter(t, nil)

	js := create(t, r, "/api/v1/courses", gin.H{
		"name": "JavaScript", "startDate": "2024-01-01", "endDate": "2024-03-01",
		"minimumPassScore": 75, "maximumStudents": 50,
	})
	node := create(t, r, "/api/v1/courses", gin.H{
		"name": "Node js", "startDate": "2024-01-01", "endDate": "2024-03-01",
		"minimumPassScore": 75, "maximumStudents": 50,
	})
	room := create(t, r, "/api/v1/rooms", gin.H{"number": 1})
	yaki := create(t, r, "/api/v1/lecturers", gin.H{"name": "Yaki", "phoneNumber": "0541111111", "email": "yaki@gmail.com"})
	chaim := create(t, r, "/api/v1/lecturers", gin.H{"name": "Chaim", "phoneNumber": "0543333333", "email": "chaim@gmail.com"})

	session := func(course, lecturer, date, start, end string) gin.H {
		return gin.H{"courseId": course, "roomId": room, "lecturerId": lecturer, "date": date, "startTime": start, "endTime": end}
	}

	tests := []struct {
		name   string
		body   gin.H
		status int
		code   dto.ErrorCode
	}{
		{"first booking", session(js, yaki, "2024-01-10", "18:00", "20:00"), http.StatusCreated, ""},
		{"room taken", session(node, chaim, "2024-01-10", "19:00", "21:00"), http.StatusConflict, dto.ErrorCodeRoomConflict},
		{"touching interval", session(node, chaim, "2024-01-10", "20:00", "22:00"), http.StatusCreated, ""},
		{"outside window", session(js, yaki, "2024-03-02", "18:00", "20:00"), http.StatusBadRequest, dto.ErrorCodeOutOfRange},
		{"reversed interval", session(js, yaki, "2024-01-11", "20:00", "18:00"), http.StatusBadRequest, dto.ErrorCodeInvalidInterval},
		{"missing field", gin.H{"courseId": js}, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, res := call(t, r, http.MethodPost, "/api/v1/sessions", tt.body)
			if code != tt.status {
				t.Fatalf("status = %d, want %d (%+v)", code, tt.status, res.Error)
			}
			if tt.code != "" && (res.Error == nil || res.Error.Code != tt.code) {
				t.Errorf("error = %+v, want code %s", res.Error, tt.code)
			}
		})
	}

	code, res := call(t, r, http.MethodGet, "/api/v1/lecturers/"+yaki+"/schedule/2024-01-01/2024-01-31", nil)
	if code != http.StatusOK {
		t.Fatalf("schedule = %d", code)
	}
	var schedule []map[string]interface{}
	if err := json.Unmarshal(res.Data, &schedule); err != nil {
		t.Fatalf("decode schedule: %v", err)
	}
	if len(schedule) != 1 || schedule[0]["courseName"] != "JavaScript" || schedule[0]["startTime"] != "18:00" {
		t.Errorf("unexpected schedule %v", schedule)
	}
}

func TestCourseLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t, nil)

	js := create(t, r, "/api/v1/courses", gin.H{
		"name": "JavaScript", "startDate": "2024-01-01", "endDate": "2024-03-01",
		"minimumPassScore": 75, "maximumStudents": 1,
	})

	code, res := call(t, r, http.MethodPut, "/api/v1/courses/"+js+"/readiness", nil)
	if code != http.StatusOK {
		t.Fatalf("readiness = %d", code)
	}
	var readiness dto.ReadinessResponse
	json.Unmarshal(res.Data, &readiness)
	if readiness.State != "draft" || len(readiness.Comments) != 2 {
		t.Errorf("unexpected readiness %+v", readiness)
	}

	create(t, r, "/api/v1/courses/"+js+"/syllabus", gin.H{"title": "JavaScript syllabus", "description": "First lesson."})

	_, res = call(t, r, http.MethodPut, "/api/v1/courses/"+js+"/readiness", nil)
	json.Unmarshal(res.Data, &readiness)
	if readiness.State != "not-ready" || len(readiness.Comments) != 1 || readiness.Comments[0] != "Missing class sessions." {
		t.Errorf("unexpected readiness %+v", readiness)
	}

	student := create(t, r, "/api/v1/students", gin.H{"name": "Inon", "phoneNumber": "0542222222", "email": "inon@gmail.com"})
	create(t, r, "/api/v1/students/"+student+"/enrollments", gin.H{"courseId": js})

	code, res = call(t, r, http.MethodPost, "/api/v1/students/"+student+"/enrollments", gin.H{"courseId": js})
	if code != http.StatusConflict || res.Error.Code != dto.ErrorCodeAlreadyEnrolled {
		t.Errorf("second enrollment = %d %+v", code, res.Error)
	}

	code, res = call(t, r, http.MethodPatch, "/api/v1/courses/"+js, gin.H{"maximumStudents": 0})
	if code != http.StatusBadRequest {
		t.Errorf("zero capacity = %d %+v", code, res.Error)
	}

	code, res = call(t, r, http.MethodPatch, "/api/v1/courses/"+js, gin.H{"startDate": "2024-04-01"})
	if code != http.StatusBadRequest || res.Error.Code != dto.ErrorCodeInvalidRange {
		t.Errorf("start after end = %d %+v", code, res.Error)
	}

	code, res = call(t, r, http.MethodPatch, "/api/v1/courses/"+js, gin.H{"name": "Modern JavaScript"})
	if code != http.StatusOK {
		t.Fatalf("rename = %d %+v", code, res.Error)
	}

	code, res = call(t, r, http.MethodGet, "/api/v1/students/"+student+"/current-courses", nil)
	var current []map[string]interface{}
	json.Unmarshal(res.Data, &current)
	if code != http.StatusOK || len(current) != 1 || current[0]["name"] != "Modern JavaScript" {
		t.Errorf("current courses = %d %v", code, current)
	}

	if code, _ := call(t, r, http.MethodDelete, "/api/v1/students/"+student+"/enrollments/"+js, nil); code != http.StatusOK {
		t.Errorf("withdraw = %d", code)
	}
	if code, _ := call(t, r, http.MethodDelete, "/api/v1/courses/"+js, nil); code != http.StatusOK {
		t.Errorf("delete = %d", code)
	}
	if code, _ := call(t, r, http.MethodGet, "/api/v1/courses/"+js, nil); code != http.StatusNotFound {
		t.Errorf("get deleted course = %d", code)
	}
}

func TestBadPathParameters(t *testing.T) {
	r := newTestRouter(t, nil)

	paths := []string{
		"/api/v1/courses/not-a-uuid",
		"/api/v1/sessions/42",
		"/api/v1/lecturers/x/current-courses",
		"/api/v1/students/x/courses",
	}
	for _, p := range paths {
		if code, res := call(t, r, http.MethodGet, p, nil); code != http.StatusBadRequest || res.Error == nil {
			t.Errorf("GET %s = %d", p, code)
		}
	}
}

func TestScheduleExportOverHTTP(t *testing.T) {
	r := newTestRouter(t, nil)
	lecturer := create(t, r, "/api/v1/lecturers", gin.H{"name": "Yaki", "phoneNumber": "0541111111", "email": "yaki@gmail.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lecturers/"+lecturer+"/schedule/2024-01-01/2024-01-31/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("export = %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentTypeXLSX {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename*=UTF-8''schedule_lecturer_2024-01-01_2024-01-31.xlsx" {
		t.Errorf("content disposition = %q", cd)
	}

	if code, _ := call(t, r, http.MethodGet, "/api/v1/lecturers/"+lecturer+"/schedule/2024-02-01/2024-01-01/export", nil); code != http.StatusBadRequest {
		t.Errorf("reversed range = %d", code)
	}
}
