package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ewaste-tracker/pkg/utils"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware("admin")
}

func PickupPersonOnly() gin.HandlerFunc {
	return RoleMiddleware("pickup_person")
}

func UserOnly() gin.HandlerFunc {
	return RoleMiddleware("user")
}
