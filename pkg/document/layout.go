package document

import (
	"errors"
	"fmt"
	"strings"
)

// ShopInfo is the fixed shop metadata printed on every receipt. It is passed
// in at construction time, never read from ambient state.
type ShopInfo struct {
	Name         string
	TagLine      string
	AddressLines []string
	Phone        string
	Email        string
}

// LabelValue is one ruled label/value pair on the printed page.
type LabelValue struct {
	Label string
	Value string
}

// ChecklistItem is one entry of the device-category checklist.
type ChecklistItem struct {
	Label   string
	Checked bool
}

// Layout is the complete content of one repair receipt page in its fixed
// vertical order. It is pure data: building it does no I/O, so identical
// input always produces an identical layout.
type Layout struct {
	Shop           ShopInfo
	ReceiptNumber  string
	DateLine       string
	Customer       []LabelValue
	Device         []LabelValue
	Checklist      []ChecklistItem
	AmountDisplay  string
	AmountInWords  string
	SignatureLines [2]string
	Footnote       [2]string
}

// ErrRendererUnavailable is returned when the rendering capability is not
// ready. Callers degrade gracefully: the record is persisted either way.
var ErrRendererUnavailable = errors.New("document: renderer unavailable")

// Renderer turns a Layout into a downloadable document.
type Renderer interface {
	// Render produces the document bytes for one layout.
	Render(l *Layout) ([]byte, error)
	// Available reports whether rendering can succeed right now.
	Available() bool
}

// --- Disabled renderer (used when no rendering backend is configured) ---

type disabledRenderer struct{}

// NewDisabledRenderer creates a renderer that always reports unavailable.
func NewDisabledRenderer() Renderer {
	return &disabledRenderer{}
}

func (r *disabledRenderer) Render(_ *Layout) ([]byte, error) {
	return nil, ErrRendererUnavailable
}

func (r *disabledRenderer) Available() bool {
	return false
}

// NewRendererFromConfig creates the appropriate Renderer based on type.
//
//	rendererType: "pdf" or "none"
func NewRendererFromConfig(rendererType string) (Renderer, error) {
	switch rendererType {
	case "pdf", "":
		return NewPDFRenderer(), nil
	case "none":
		return NewDisabledRenderer(), nil
	default:
		return nil, fmt.Errorf("document: unknown renderer type %q (use pdf or none)", rendererType)
	}
}

// Filename builds the download name for a rendered receipt:
// {receiptNumber}_{customerNameWithSpacesReplaced}_REPAIR.pdf
func Filename(receiptNumber, customerName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(customerName), " ", "_")
	return fmt.Sprintf("%s_%s_REPAIR.pdf", receiptNumber, name)
}
