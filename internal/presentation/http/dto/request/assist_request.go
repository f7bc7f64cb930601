package request

// EstimateRequest asks for a repair cost estimate
type EstimateRequest struct {
	DeviceCategory string `json:"device_category" binding:"required"`
	Issue          string `json:"issue" binding:"required,max=2000"`
}

// FollowUpRequest asks for a customer follow-up draft
type FollowUpRequest struct {
	CustomerName   string  `json:"customer_name" binding:"required,max=255"`
	DeviceCategory string  `json:"device_category" binding:"required"`
	Amount         float64 `json:"amount" binding:"min=0"`
}
