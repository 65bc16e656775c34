package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/models"
)

// RequireAdmin gates admin-only endpoints. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Sorry, you need admin access to perform this action."))
			c.Abort()
			return
		}
		c.Next()
	}
}
