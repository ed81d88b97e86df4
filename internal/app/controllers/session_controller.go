package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/middleware"
)

// SessionController handles class session admission
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// CreateSession admits a class session
// @Summary Schedule a class session
// @Description The session is committed only if its room, lecturer and course are all free for the interval and the date lies within the course window.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Candidate session"
// @Success 201 {object} dto.APIResponse{data=models.ClassSession}
// @Failure 400 {object} dto.APIResponse "Invalid data, interval or date outside the course"
// @Failure 404 {object} dto.APIResponse "Course, room, lecturer or syllabus entry not found"
// @Failure 409 {object} dto.APIResponse "Room, lecturer or course slot conflict"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.CreateSession(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, session)
}

// GetSession retrieves a class session with its course, room and lecturer names
// @Summary Get class session details
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.SessionDetails}
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Router /sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	session, err := c.sessionService.GetSession(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, session)
}

// DeleteSession removes a class session
// @Summary Delete a class session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Router /sessions/{id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.sessionService.DeleteSession(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, "Class session deleted successfully")
}
