package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/request"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/response"
	"github.com/ipremium/repairdesk-api/pkg/textgen"
)

// AssistHandler exposes the drafting helpers backed by the text service.
// These endpoints always answer 200: when the service is down or throttled
// the client substitutes its fallback text.
type AssistHandler struct {
	textgen *textgen.Client
}

// NewAssistHandler creates a new assist handler
func NewAssistHandler(textgenClient *textgen.Client) *AssistHandler {
	return &AssistHandler{textgen: textgenClient}
}

// Estimate returns a structured repair cost estimate
// @Summary Estimate repair cost
// @Tags assist
// @Accept json
// @Produce json
// @Param request body request.EstimateRequest true "Device and issue"
// @Success 200 {object} response.APIResponse
// @Router /assist/estimate [post]
func (h *AssistHandler) Estimate(c *gin.Context) {
	var req request.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	estimate := h.textgen.EstimateCost(c.Request.Context(), req.DeviceCategory, req.Issue)
	response.OK(c, "Estimate ready", estimate)
}

// FollowUp returns a drafted customer follow-up message
// @Summary Draft follow-up message
// @Tags assist
// @Accept json
// @Produce json
// @Param request body request.FollowUpRequest true "Customer and amount"
// @Success 200 {object} response.APIResponse
// @Router /assist/followup [post]
func (h *AssistHandler) FollowUp(c *gin.Context) {
	var req request.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	message := h.textgen.DraftFollowUp(c.Request.Context(), req.CustomerName, req.DeviceCategory, decimal.NewFromFloat(req.Amount))
	response.OK(c, "Follow-up drafted", response.FollowUpResponse{Message: message})
}
