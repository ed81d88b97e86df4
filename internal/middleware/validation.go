package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursesched/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure the
// request is answered with 400 and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.APIResponse{
			Error:     dto.HandleValidationError(err),
			Timestamp: time.Now(),
		})
		return false
	}
	return true
}

// ValidateRequest validates a request body against the provided model and
// stores it under "validatedBody".
func ValidateRequest(newObj func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj := newObj()
		if !BindJSON(c, obj) {
			return
		}
		c.Set("validatedBody", obj)
		c.Next()
	}
}
