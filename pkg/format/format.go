package format

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// receiptNumberPrefix is the fixed prefix for all receipt numbers.
const receiptNumberPrefix = "PFX"

// messagingHost is the WhatsApp click-to-chat endpoint.
const messagingHost = "https://wa.me"

// CurrencySymbol is the single fixed currency symbol used across the app.
const CurrencySymbol = "₹"

// wordsSuffix terminates every amount-in-words string. The wording is part of
// the printed document contract and must not change.
const wordsSuffix = " Rupees Only."

// ReceiptNumber formats a receipt number from an allocated sequence value.
// Format: PFX-{year}-{seq zero-padded to 4 digits}.
func ReceiptNumber(seq int64, year int) string {
	return fmt.Sprintf("%s-%d-%04d", receiptNumberPrefix, year, seq)
}

// NextReceiptNumber derives the next receipt number from the current count of
// receipts. This is count-based, not collision-safe under concurrent writers;
// the repository's year-scoped sequence is the authoritative allocator and
// uses ReceiptNumber directly.
func NextReceiptNumber(existingCount int64, year int) string {
	return ReceiptNumber(existingCount+1, year)
}

// Currency renders a non-negative amount as ₹ plus Indian-grouped digits with
// two fractional digits, e.g. "₹12,34,567.89". Negative amounts render as the
// zero string rather than failing.
func Currency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	fixed := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return CurrencySymbol + groupIndian(intPart) + "." + fracPart
}

// groupIndian inserts Indian-system separators: the last three digits form a
// group, every preceding pair forms another ("1234567" -> "12,34,567").
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

// AmountInWords converts the integer rupee part of amount into words using
// crore/lakh/thousand/hundred grouping, ending in " Rupees Only.". Paise are
// dropped. Zero, negative, and out-of-domain values produce "Zero Rupees
// Only.". Total over [0, 10^9).
func AmountInWords(amount decimal.Decimal) string {
	rupees := amount.IntPart()
	if rupees <= 0 {
		return "Zero" + wordsSuffix
	}
	return rupeesToWords(rupees) + wordsSuffix
}

func rupeesToWords(n int64) string {
	var parts []string

	if crore := n / 1_00_00_000; crore > 0 {
		parts = append(parts, rupeesToWords(crore), "crore")
		n %= 1_00_00_000
	}
	if lakh := n / 1_00_000; lakh > 0 {
		parts = append(parts, belowHundred(lakh), "lakh")
		n %= 1_00_000
	}
	if thousand := n / 1_000; thousand > 0 {
		parts = append(parts, belowHundred(thousand), "thousand")
		n %= 1_000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred], "hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}

// SanitizePhone strips every non-digit character. Length and country code are
// not validated; WhatsApp rejects unusable numbers on its own side.
func SanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MessageLink builds a WhatsApp deep link whose query payload is a
// URL-encoded greeting referencing the customer and their receipt number.
// Pure string composition; nothing is sent here.
func MessageLink(phone, customerName, receiptNumber string) string {
	greeting := fmt.Sprintf(
		"Hello %s, your repair receipt %s has been generated at iPremium Repairs. We will notify you once your device is ready for pickup.",
		customerName, receiptNumber,
	)
	return messagingHost + "/" + SanitizePhone(phone) + "?text=" + url.QueryEscape(greeting)
}
