package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ipremium/repairdesk-api/internal/domain/enum"
)

// Receipt is the persisted record of one repair intake/billing event.
//
// ReceiptNumber and AmountInWords are assigned exactly once at creation and
// never recomputed: the printed document must stay stable even if formatting
// rules change later. Receipts are never deleted.
type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber string    `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`

	// Customer fields (name and phone are mandatory).
	CustomerName string `gorm:"size:255;not null" json:"customer_name"`
	Phone        string `gorm:"size:50;not null" json:"phone"`
	Address      string `gorm:"size:500" json:"address"`
	Email        string `gorm:"size:255" json:"email"`

	// Device fields.
	DeviceCategory enum.DeviceCategory `gorm:"default:0" json:"device_category"`
	IMEI           string              `gorm:"size:50" json:"imei"`
	SerialNumber   string              `gorm:"size:100" json:"serial_number"`
	Issue          string              `gorm:"type:text" json:"issue"`
	ConditionNote  string              `gorm:"type:text" json:"condition_note"`

	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	AmountInWords string          `gorm:"size:500;not null" json:"amount_in_words"`

	Status       enum.ReceiptStatus `gorm:"default:0" json:"status"`
	MessageSent  bool               `gorm:"default:false" json:"message_sent"`
	ExternalLink string             `gorm:"size:1000" json:"external_link,omitempty"`

	CreatedBy string    `gorm:"size:255;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptSequence backs the year-scoped atomic receipt number allocator.
// Rows are upserted with an atomic increment; the visible number format is
// derived from LastValue, never from list length.
type ReceiptSequence struct {
	Year      int       `gorm:"primary_key;autoIncrement:false"`
	LastValue int64     `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the ReceiptSequence model
func (ReceiptSequence) TableName() string {
	return "receipt_sequences"
}
