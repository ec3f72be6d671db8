package middleware

import (
	"net/http"

	"sokoni/models"

	"github.com/gin-gonic/gin"
)

// RequireAdminMiddleware allows only authenticated admins through. It must
// run after JWTAuthUserMiddleware, which sets the role in context.
func RequireAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("userRole")
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
