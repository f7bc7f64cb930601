package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/response"
	"github.com/ipremium/repairdesk-api/pkg/utils"
)

// Auth validates the Bearer token and stores the staff name on the context.
func Auth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("staff_name", claims.StaffName)
		c.Next()
	}
}

// GetStaffName extracts the authenticated staff name from the Gin context
func GetStaffName(c *gin.Context) string {
	name, exists := c.Get("staff_name")
	if !exists {
		return ""
	}
	staffName, ok := name.(string)
	if !ok {
		return ""
	}
	return staffName
}
