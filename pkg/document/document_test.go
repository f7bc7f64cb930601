package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout() *Layout {
	return &Layout{
		Shop: ShopInfo{
			Name:         "iPremium Repairs",
			TagLine:      "Authorized Device Service Centre",
			AddressLines: []string{"12 MG Road", "Bengaluru 560001"},
			Phone:        "+91 80 4000 1234",
			Email:        "service@ipremiumrepairs.in",
		},
		ReceiptNumber: "PFX-2024-0001",
		DateLine:      "15 Mar 2024",
		Customer: []LabelValue{
			{Label: "Name", Value: "Asha Rao"},
			{Label: "Phone", Value: "98765 43210"},
		},
		Device: []LabelValue{
			{Label: "IMEI", Value: "356938035643809"},
			{Label: "Issue", Value: "Screen cracked"},
		},
		Checklist: []ChecklistItem{
			{Label: "Mobile Phone", Checked: true},
			{Label: "Laptop"},
			{Label: "Tablet"},
			{Label: "Smartwatch"},
			{Label: "Desktop"},
			{Label: "Other"},
		},
		AmountDisplay:  "₹1,500.00",
		AmountInWords:  "one thousand five hundred Rupees Only.",
		SignatureLines: [2]string{"Customer Signature", "Authorized Signatory"},
		Footnote: [2]string{
			"Goods once repaired will not be taken back.",
			"Please retain this receipt for warranty claims.",
		},
	}
}

func TestPDFRendererProducesDocument(t *testing.T) {
	r := NewPDFRenderer()
	assert.True(t, r.Available())

	data, err := r.Render(sampleLayout())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// PDF magic bytes.
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRendererEmptyChecklist(t *testing.T) {
	l := sampleLayout()
	l.Checklist = nil

	data, err := NewPDFRenderer().Render(l)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDisabledRendererReturnsUnavailable(t *testing.T) {
	r := NewDisabledRenderer()
	assert.False(t, r.Available())

	data, err := r.Render(sampleLayout())
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrRendererUnavailable)
}

func TestNewRendererFromConfig(t *testing.T) {
	r, err := NewRendererFromConfig("pdf")
	require.NoError(t, err)
	assert.True(t, r.Available())

	r, err = NewRendererFromConfig("none")
	require.NoError(t, err)
	assert.False(t, r.Available())

	_, err = NewRendererFromConfig("laser")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "PFX-2024-0001_Asha_Rao_REPAIR.pdf", Filename("PFX-2024-0001", "Asha Rao"))
	assert.Equal(t, "PFX-2024-0002_Ravi_REPAIR.pdf", Filename("PFX-2024-0002", " Ravi "))
}
