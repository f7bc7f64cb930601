package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ipremium/repairdesk-api/internal/application/service"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/request"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles staff login
// @Summary Login
// @Description Exchange the shop access code for a staff token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Access code and staff name"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.AccessCode, req.StaffName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", response.LoginResponse{
		Token:     result.Token,
		StaffName: result.StaffName,
	})
}
