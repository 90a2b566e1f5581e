package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolcrm/backend/internal/interfaces/http/dto"
)

// RequireOwner restricts a route to admins with the owner role. Must run
// after JWTAuthMiddleware.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != "owner" {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Owner role required", requestID))
			return
		}
		c.Next()
	}
}
