package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/middleware"
)

// StudentController handles students and their enrollments
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent handles student creation
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.APIResponse "Invalid name, phone or email"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreatePersonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, student)
}

// DeleteStudent removes a student and their enrollments
// @Summary Delete a student
// @Tags students
// @Produce json
// @Param id path string true "Student ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, "Student deleted successfully")
}

// Enroll admits a student into a course
// @Summary Enroll a student
// @Description The enrollment is committed only if a seat is free and the course window does not overlap another course of the student.
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID" Format(uuid)
// @Param request body dto.EnrollRequest true "Course to enroll into"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 404 {object} dto.APIResponse "Student or course not found"
// @Failure 409 {object} dto.APIResponse "Already enrolled, course full or schedule conflict"
// @Router /students/{id}/enrollments [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		middleware.AbortBadRequest(ctx, "Invalid courseId", "courseId must be a valid UUID")
		return
	}

	enrollment, err := c.studentService.Enroll(ctx, id, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, enrollment)
}

// Withdraw removes a student from a course
// @Summary Withdraw from a course
// @Tags students
// @Produce json
// @Param id path string true "Student ID" Format(uuid)
// @Param courseId path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse "Enrollment not found"
// @Router /students/{id}/enrollments/{courseId} [delete]
func (c *StudentController) Withdraw(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}
	if err := c.studentService.Withdraw(ctx, id, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, "Student withdrawn successfully")
}

// CurrentCourses lists the running courses of a student
// @Summary Current courses of a student
// @Tags students
// @Produce json
// @Param id path string true "Student ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /students/{id}/current-courses [get]
func (c *StudentController) CurrentCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courses, err := c.studentService.CurrentCourses(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses)
}

// Courses lists every course the student is enrolled in
// @Summary Courses of a student
// @Tags students
// @Produce json
// @Param id path string true "Student ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /students/{id}/courses [get]
func (c *StudentController) Courses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courses, err := c.studentService.Courses(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses)
}

// Schedule lists the sessions of the student's courses between two dates
// @Summary Student schedule
// @Tags students
// @Produce json
// @Param id path string true "Student ID" Format(uuid)
// @Param from path string true "First day" example(2024-01-01)
// @Param to path string true "Last day" example(2024-01-31)
// @Success 200 {object} dto.APIResponse{data=[]models.SessionDetails}
// @Router /students/{id}/schedule/{from}/{to} [get]
func (c *StudentController) Schedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	sessions, err := c.studentService.Schedule(ctx, id, ctx.Param("from"), ctx.Param("to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, sessions)
}

// ExportSchedule downloads the student's schedule as a spreadsheet
// @Summary Export student schedule
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Student ID" Format(uuid)
// @Param from path string true "First day" example(2024-01-01)
// @Param to path string true "Last day" example(2024-01-31)
// @Success 200 {file} file
// @Router /students/{id}/schedule/{from}/{to}/export [get]
func (c *StudentController) ExportSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	buf, filename, err := c.studentService.ExportSchedule(ctx, id, ctx.Param("from"), ctx.Param("to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendWorkbook(ctx, filename, buf)
}
