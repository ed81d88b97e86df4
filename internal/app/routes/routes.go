package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursesched/internal/app/controllers"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/pkg/websocket"
)

// Controllers groups every controller the router mounts
type Controllers struct {
	Courses   *controllers.CourseController
	Sessions  *controllers.SessionController
	Rooms     *controllers.RoomController
	Lecturers *controllers.LecturerController
	Students  *controllers.StudentController
	Calendar  *websocket.Handler
}

// HealthCheck reports whether the backing store is reachable
type HealthCheck func(ctx context.Context) error

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, health HealthCheck) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		status, code := "ok", http.StatusOK
		if health != nil {
			if err := health(ctx.Request.Context()); err != nil {
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}
		data := gin.H{"status": status}
		if c.Calendar != nil {
			data["calendarClients"] = c.Calendar.ClientsCount()
		}
		ctx.JSON(code, dto.APIResponse{
			Data:      data,
			Timestamp: time.Now(),
		})
	})

	courses := v1.Group("/courses")
	{
		courses.POST("", c.Courses.CreateCourse)
		courses.GET("", c.Courses.ListCourses)
		courses.GET("/:id", c.Courses.GetCourse)
		courses.PATCH("/:id", c.Courses.UpdateCourse)
		courses.DELETE("/:id", c.Courses.DeleteCourse)
		courses.PUT("/:id/readiness", c.Courses.RecomputeReadiness)
		courses.POST("/:id/syllabus", c.Courses.AddSyllabusEntry)
		courses.GET("/:id/syllabus", c.Courses.ListSyllabus)
	}

	sessions := v1.Group("/sessions")
	{
		sessions.POST("", c.Sessions.CreateSession)
		sessions.GET("/:id", c.Sessions.GetSession)
		sessions.DELETE("/:id", c.Sessions.DeleteSession)
	}

	rooms := v1.Group("/rooms")
	{
		rooms.POST("", c.Rooms.CreateRoom)
		rooms.GET("", c.Rooms.GetAllRooms)
		rooms.DELETE("/:id", c.Rooms.DeleteRoom)
	}

	lecturers := v1.Group("/lecturers")
	{
		lecturers.POST("", c.Lecturers.CreateLecturer)
		lecturers.DELETE("/:id", c.Lecturers.DeleteLecturer)
		lecturers.GET("/:id/current-courses", c.Lecturers.CurrentCourses)
		lecturers.GET("/:id/courses/:from/:to", c.Lecturers.CoursesInRange)
		lecturers.GET("/:id/schedule/:from/:to", c.Lecturers.Schedule)
		lecturers.GET("/:id/schedule/:from/:to/export", c.Lecturers.ExportSchedule)
	}

	students := v1.Group("/students")
	{
		students.POST("", c.Students.CreateStudent)
		students.DELETE("/:id", c.Students.DeleteStudent)
		students.POST("/:id/enrollments", c.Students.Enroll)
		students.DELETE("/:id/enrollments/:courseId", c.Students.Withdraw)
		students.GET("/:id/current-courses", c.Students.CurrentCourses)
		students.GET("/:id/courses", c.Students.Courses)
		students.GET("/:id/schedule/:from/:to", c.Students.Schedule)
		students.GET("/:id/schedule/:from/:to/export", c.Students.ExportSchedule)
	}

	if c.Calendar != nil {
		v1.GET("/ws/calendar", c.Calendar.HandleConnection)
	}
}
