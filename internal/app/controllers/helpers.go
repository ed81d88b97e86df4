package controllers

import (
	"bytes"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/middleware"
	"github.com/yigit/coursesched/internal/pkg/export"
)

// parseIDParam reads a UUID path parameter. On failure the request is
// answered with 400 and false is returned.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		middleware.AbortBadRequest(ctx, "Invalid "+name, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

func respondMessage(ctx *gin.Context, message string) {
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: message})
}

// sendWorkbook streams an xlsx attachment
func sendWorkbook(ctx *gin.Context, filename string, buf *bytes.Buffer) {
	ctx.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	ctx.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
