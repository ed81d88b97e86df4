package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/middleware"
	"github.com/yigit/coursesched/internal/pkg/helpers"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, course)
}

// ListCourses returns one page of courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	list, err := c.courseService.ListCourses(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, list)
}

// GetCourse retrieves a course by ID
// @Summary Get course details
// @Description With full=true the class sessions and syllabus entries are included.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param full query bool false "Include sessions and syllabus"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	full, _ := strconv.ParseBool(ctx.DefaultQuery("full", "false"))

	course, err := c.courseService.GetCourse(ctx, id, full)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// UpdateCourse applies a guarded partial update
// @Summary Update a course
// @Description Rejected when the new window would orphan class sessions or the new capacity is below the enrollment count.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.APIResponse "Invalid data or date range"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Failure 409 {object} dto.APIResponse "Edit conflicts with committed sessions or enrollments"
// @Router /courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// DeleteCourse removes a course with its sessions, syllabus and enrollments
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, "Course deleted successfully")
}

// RecomputeReadiness re-derives and stores the readiness of a course
// @Summary Recompute course readiness
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.ReadinessResponse}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id}/readiness [put]
func (c *CourseController) RecomputeReadiness(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	readiness, err := c.courseService.RecomputeReadiness(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, readiness)
}

// AddSyllabusEntry appends an entry to the course syllabus
// @Summary Add a syllabus entry
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.CreateSyllabusEntryRequest true "Syllabus entry"
// @Success 201 {object} dto.APIResponse{data=models.SyllabusEntry}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id}/syllabus [post]
func (c *CourseController) AddSyllabusEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateSyllabusEntryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	entry, err := c.courseService.AddSyllabusEntry(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, entry)
}

// ListSyllabus returns the syllabus of a course
// @Summary List syllabus entries
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.SyllabusEntry}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id}/syllabus [get]
func (c *CourseController) ListSyllabus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	entries, err := c.courseService.ListSyllabus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, entries)
}
