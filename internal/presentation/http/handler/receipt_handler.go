package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ipremium/repairdesk-api/internal/application/service"
	"github.com/ipremium/repairdesk-api/internal/domain/enum"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/request"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService  *service.ReceiptService
	documentService *service.DocumentService
	feed            *service.ReceiptFeed
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(
	receiptService *service.ReceiptService,
	documentService *service.DocumentService,
	feed *service.ReceiptFeed,
) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService:  receiptService,
		documentService: documentService,
		feed:            feed,
	}
}

// Create handles receipt submission
// @Summary Create receipt
// @Description Run the receipt submission workflow
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body request.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		Address:        req.Address,
		Email:          req.Email,
		DeviceCategory: enum.ParseDeviceCategory(req.DeviceCategory),
		IMEI:           req.IMEI,
		SerialNumber:   req.SerialNumber,
		Issue:          req.Issue,
		ConditionNote:  req.ConditionNote,
		TotalAmount:    decimal.NewFromFloat(req.TotalAmount),
		ExpandIssue:    req.ExpandIssue,
		SendMessage:    req.SendMessage,
		CreatedBy:      GetStaffName(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created", response.CreateReceiptResponse{
		Receipt:         result.Receipt,
		WhatsAppLink:    result.WhatsAppLink,
		DocumentWarning: result.DocumentWarning,
	})
}

// List returns the current ordered snapshot
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	receipts, err := h.receiptService.ListReceipts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipts retrieved", receipts)
}

// Stream pushes live receipt snapshots over server-sent events. Each event is
// the full current snapshot, so a client can always render from the latest
// event alone.
// @Summary Stream receipts
// @Tags receipts
// @Produce text/event-stream
// @Router /receipts/stream [get]
func (h *ReceiptHandler) Stream(c *gin.Context) {
	snapshots, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			payload, err := json.Marshal(snapshot)
			if err != nil {
				return
			}
			fmt.Fprintf(c.Writer, "event: snapshot\ndata: %s\n\n", payload)
			c.Writer.Flush()
		case <-clientGone:
			return
		}
	}
}

// Get returns a single receipt
// @Summary Get receipt
// @Tags receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved", receipt)
}

// Document streams the printable PDF for a receipt
// @Summary Download receipt document
// @Tags receipts
// @Produce application/pdf
// @Param id path string true "Receipt ID"
// @Success 200 {file} binary
// @Failure 503 {object} response.APIResponse
// @Router /receipts/{id}/document [get]
func (h *ReceiptHandler) Document(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	data, filename, err := h.documentService.GenerateByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Message composes the customer notification link and records it
// @Summary Compose customer message
// @Tags receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} response.APIResponse
// @Router /receipts/{id}/message [post]
func (h *ReceiptHandler) Message(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	link, err := h.receiptService.ComposeMessage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Message link composed", response.MessageResponse{WhatsAppLink: link})
}

// UpdateStatus moves a receipt between payment states
// @Summary Update receipt status
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Receipt ID"
// @Param request body request.UpdateStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /receipts/{id}/status [post]
func (h *ReceiptHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := enum.ParseReceiptStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Invalid receipt status")
		return
	}

	receipt, err := h.receiptService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt status updated", receipt)
}
