package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/middleware"
)

// RoomController handles room management
type RoomController struct {
	roomService services.RoomService
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService services.RoomService) *RoomController {
	return &RoomController{roomService: roomService}
}

// CreateRoom handles room creation
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse{data=models.Room}
// @Failure 409 {object} dto.APIResponse "Room number already exists"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	room, err := c.roomService.CreateRoom(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, room)
}

// GetAllRooms lists the rooms
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Room}
// @Router /rooms [get]
func (c *RoomController) GetAllRooms(ctx *gin.Context) {
	rooms, err := c.roomService.GetAllRooms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, rooms)
}

// DeleteRoom removes a room that hosts no session
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Failure 409 {object} dto.APIResponse "Room has scheduled sessions"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.roomService.DeleteRoom(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, "Room deleted successfully")
}
