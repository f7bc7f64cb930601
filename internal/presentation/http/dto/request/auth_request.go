package request

// LoginRequest represents a login request
type LoginRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
	StaffName  string `json:"staff_name" binding:"omitempty,max=255"`
}
