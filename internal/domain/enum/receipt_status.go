package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptStatus represents the payment status of a receipt
type ReceiptStatus int

const (
	ReceiptStatusPending ReceiptStatus = 0
	ReceiptStatusPaid    ReceiptStatus = 1
	ReceiptStatusOverdue ReceiptStatus = 2
)

// ParseReceiptStatus maps a display name onto its status.
func ParseReceiptStatus(name string) (ReceiptStatus, bool) {
	switch name {
	case "Pending":
		return ReceiptStatusPending, true
	case "Paid":
		return ReceiptStatusPaid, true
	case "Overdue":
		return ReceiptStatusOverdue, true
	}
	return ReceiptStatusPending, false
}

func (s ReceiptStatus) String() string {
	if !s.Valid() {
		return "Pending"
	}
	return [...]string{"Pending", "Paid", "Overdue"}[s]
}

// Valid reports whether s is one of the known statuses.
func (s ReceiptStatus) Valid() bool {
	return s >= ReceiptStatusPending && s <= ReceiptStatusOverdue
}

func (s ReceiptStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReceiptStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = ReceiptStatusPending
	case "Paid":
		*s = ReceiptStatusPaid
	case "Overdue":
		*s = ReceiptStatusOverdue
	}
	return nil
}

func (s ReceiptStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReceiptStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReceiptStatus(v)
	case int:
		*s = ReceiptStatus(v)
	}
	return nil
}
