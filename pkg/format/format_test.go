package format

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptNumber(t *testing.T) {
	assert.Equal(t, "PFX-2024-0001", NextReceiptNumber(0, 2024))
	assert.Equal(t, "PFX-2024-0010", NextReceiptNumber(9, 2024))
	assert.Equal(t, "PFX-2025-0042", ReceiptNumber(42, 2025))
	// Padding widens past four digits rather than truncating.
	assert.Equal(t, "PFX-2024-12345", ReceiptNumber(12345, 2024))
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "zero", amount: "0", expected: "₹0.00"},
		{name: "small", amount: "12.5", expected: "₹12.50"},
		{name: "thousand", amount: "1500", expected: "₹1,500.00"},
		{name: "lakh grouping", amount: "123456.78", expected: "₹1,23,456.78"},
		{name: "crore grouping", amount: "12345678.9", expected: "₹1,23,45,678.90"},
		{name: "rounds to two digits", amount: "99.999", expected: "₹100.00"},
		{name: "negative renders as zero", amount: "-50", expected: "₹0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Currency(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestCurrencyPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^₹[\d,]+\.\d{2}$`)
	for _, amount := range []string{"0", "1", "999", "1000", "99999.99", "123456789.01"} {
		got := Currency(decimal.RequireFromString(amount))
		assert.Regexp(t, pattern, got, "amount %s", amount)
	}
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "zero", amount: "0", expected: "Zero Rupees Only."},
		{name: "negative treated as zero", amount: "-10", expected: "Zero Rupees Only."},
		{name: "thousand and hundreds", amount: "1500", expected: "one thousand five hundred Rupees Only."},
		{name: "paise dropped", amount: "1500.99", expected: "one thousand five hundred Rupees Only."},
		{name: "teens", amount: "14", expected: "fourteen Rupees Only."},
		{name: "round tens", amount: "90", expected: "ninety Rupees Only."},
		{name: "hundreds", amount: "705", expected: "seven hundred five Rupees Only."},
		{name: "lakh", amount: "250000", expected: "two lakh fifty thousand Rupees Only."},
		{name: "crore", amount: "30000000", expected: "three crore Rupees Only."},
		{
			name:     "full grouping",
			amount:   "123456789",
			expected: "twelve crore thirty four lakh fifty six thousand seven hundred eighty nine Rupees Only.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AmountInWords(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestAmountInWordsTotal(t *testing.T) {
	// Every amount in the documented domain must produce a terminated words
	// string without panicking.
	for _, n := range []int64{0, 1, 19, 20, 21, 99, 100, 101, 999, 1000, 99999, 100000, 9999999, 10000000, 999999999} {
		got := AmountInWords(decimal.NewFromInt(n))
		assert.True(t, strings.HasSuffix(got, "Rupees Only."), "amount %d produced %q", n, got)
	}
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", SanitizePhone("98765-43210"))
	assert.Equal(t, "919876543210", SanitizePhone("+91 98765 43210"))
	assert.Equal(t, "", SanitizePhone("no digits"))
}

func TestMessageLink(t *testing.T) {
	link := MessageLink("98765-43210", "Asha", "PFX-2024-0001")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/9876543210", parsed.Path)
	assert.Regexp(t, `^\d+$`, strings.TrimPrefix(parsed.Path, "/"))

	greeting := parsed.Query().Get("text")
	assert.Contains(t, greeting, "Asha")
	assert.Contains(t, greeting, "PFX-2024-0001")
}

func TestGroupIndian(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"100000", "1,00,000"},
		{"10000000", "1,00,00,000"},
		{"123456789", "12,34,56,789"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("group %s", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.expected, groupIndian(tt.in))
		})
	}
}
