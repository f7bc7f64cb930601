package response

import "github.com/ipremium/repairdesk-api/internal/domain/entity"

// LoginResponse carries the issued staff token
type LoginResponse struct {
	Token     string `json:"token"`
	StaffName string `json:"staff_name"`
}

// CreateReceiptResponse mirrors the submission outcome: the persisted record,
// the share link when messaging was requested, and any document warning.
type CreateReceiptResponse struct {
	Receipt         *entity.Receipt `json:"receipt"`
	WhatsAppLink    string          `json:"whatsapp_link,omitempty"`
	DocumentWarning string          `json:"document_warning,omitempty"`
}

// MessageResponse carries a composed customer notification link
type MessageResponse struct {
	WhatsAppLink string `json:"whatsapp_link"`
}

// FollowUpResponse carries a drafted follow-up message
type FollowUpResponse struct {
	Message string `json:"message"`
}
