package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/response"
)

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

// parseIDParam parses the :id path parameter as a UUID, responding 400 itself
// when the value is malformed.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return uuid.Nil, false
	}
	return id, true
}
