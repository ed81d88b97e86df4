package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/middleware"
)

// LecturerController handles lecturer management and teaching queries
type LecturerController struct {
	lecturerService services.LecturerService
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService services.LecturerService) *LecturerController {
	return &LecturerController{lecturerService: lecturerService}
}

// CreateLecturer handles lecturer creation
// @Summary Create a lecturer
// @Tags lecturers
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Lecturer information"
// @Success 201 {object} dto.APIResponse{data=models.Lecturer}
// @Failure 400 {object} dto.APIResponse "Invalid name, phone or email"
// @Router /lecturers [post]
func (c *LecturerController) CreateLecturer(ctx *gin.Context) {
	var req dto.CreatePersonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	lecturer, err := c.lecturerService.CreateLecturer(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, lecturer)
}

// DeleteLecturer removes a lecturer without sessions
// @Summary Delete a lecturer
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse "Lecturer not found"
// @Failure 409 {object} dto.APIResponse "Lecturer has scheduled sessions"
// @Router /lecturers/{id} [delete]
func (c *LecturerController) DeleteLecturer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.lecturerService.DeleteLecturer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, "Lecturer deleted successfully")
}

// CurrentCourses lists the running courses the lecturer teaches
// @Summary Current courses of a lecturer
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Failure 404 {object} dto.APIResponse "Lecturer not found"
// @Router /lecturers/{id}/current-courses [get]
func (c *LecturerController) CurrentCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courses, err := c.lecturerService.CurrentCourses(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses)
}

// CoursesInRange lists the courses the lecturer teaches a session of between two dates
// @Summary Courses of a lecturer within a date range
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID" Format(uuid)
// @Param from path string true "First day" example(2024-01-01)
// @Param to path string true "Last day" example(2024-01-31)
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /lecturers/{id}/courses/{from}/{to} [get]
func (c *LecturerController) CoursesInRange(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courses, err := c.lecturerService.CoursesInRange(ctx, id, ctx.Param("from"), ctx.Param("to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses)
}

// Schedule lists the lecturer's sessions between two dates
// @Summary Lecturer schedule
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID" Format(uuid)
// @Param from path string true "First day" example(2024-01-01)
// @Param to path string true "Last day" example(2024-01-31)
// @Success 200 {object} dto.APIResponse{data=[]models.SessionDetails}
// @Router /lecturers/{id}/schedule/{from}/{to} [get]
func (c *LecturerController) Schedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	sessions, err := c.lecturerService.Schedule(ctx, id, ctx.Param("from"), ctx.Param("to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, sessions)
}

// ExportSchedule downloads the lecturer's schedule as a spreadsheet
// @Summary Export lecturer schedule
// @Tags lecturers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Lecturer ID" Format(uuid)
// @Param from path string true "First day" example(2024-01-01)
// @Param to path string true "Last day" example(2024-01-31)
// @Success 200 {file} file
// @Router /lecturers/{id}/schedule/{from}/{to}/export [get]
func (c *LecturerController) ExportSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	buf, filename, err := c.lecturerService.ExportSchedule(ctx, id, ctx.Param("from"), ctx.Param("to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendWorkbook(ctx, filename, buf)
}
