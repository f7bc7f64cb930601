package request

// CreateReceiptRequest represents a receipt submission
type CreateReceiptRequest struct {
	CustomerName   string  `json:"customer_name" binding:"required,max=255"`
	Phone          string  `json:"phone" binding:"required,max=20"`
	Address        string  `json:"address" binding:"omitempty,max=500"`
	Email          string  `json:"email" binding:"omitempty,email"`
	DeviceCategory string  `json:"device_category" binding:"required"`
	IMEI           string  `json:"imei" binding:"omitempty,max=20"`
	SerialNumber   string  `json:"serial_number" binding:"omitempty,max=50"`
	Issue          string  `json:"issue" binding:"omitempty,max=2000"`
	ConditionNote  string  `json:"condition_note" binding:"omitempty,max=2000"`
	TotalAmount    float64 `json:"total_amount" binding:"min=0"`
	ExpandIssue    bool    `json:"expand_issue"`
	SendMessage    bool    `json:"send_message"`
}

// UpdateStatusRequest moves a receipt between payment states
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Paid Overdue"`
}
