package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptStatusString(t *testing.T) {
	assert.Equal(t, "Pending", ReceiptStatusPending.String())
	assert.Equal(t, "Paid", ReceiptStatusPaid.String())
	assert.Equal(t, "Overdue", ReceiptStatusOverdue.String())

	// Out-of-range values (e.g. scanned from a mangled row) must not panic.
	assert.Equal(t, "Pending", ReceiptStatus(99).String())
	assert.Equal(t, "Pending", ReceiptStatus(-1).String())
}

func TestReceiptStatusMarshalOutOfRange(t *testing.T) {
	var s ReceiptStatus
	require.NoError(t, s.Scan(int64(42)))

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"Pending"`, string(data))
}

func TestParseReceiptStatus(t *testing.T) {
	tests := []struct {
		in       string
		expected ReceiptStatus
		ok       bool
	}{
		{"Pending", ReceiptStatusPending, true},
		{"Paid", ReceiptStatusPaid, true},
		{"Overdue", ReceiptStatusOverdue, true},
		{"paid", ReceiptStatusPending, false},
		{"", ReceiptStatusPending, false},
	}
	for _, tt := range tests {
		got, ok := ParseReceiptStatus(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.expected, got, "input %q", tt.in)
	}
}
