package document

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type pdfRenderer struct{}

// NewPDFRenderer creates the maroto-backed A4 renderer.
func NewPDFRenderer() Renderer {
	return &pdfRenderer{}
}

func (r *pdfRenderer) Available() bool {
	return true
}

// Render lays the receipt out on a single fixed page: header, number/date
// pair, customer block, device block, category checklist, amount block, two
// signature lines and the footnote, in that order.
func (r *pdfRenderer) Render(l *Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	addHeader(m, l)
	addNumberAndDate(m, l)
	addSection(m, "CUSTOMER DETAILS", l.Customer)
	addSection(m, "DEVICE DETAILS", l.Device)
	addChecklist(m, l.Checklist)
	addAmountBlock(m, l)
	addSignatures(m, l)
	addFootnote(m, l)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("document: failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, l *Layout) {
	m.AddRow(12,
		col.New(12).Add(
			text.New(l.Shop.Name, props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
			text.New(l.Shop.TagLine, props.Text{
				Size:  9,
				Top:   9,
				Align: align.Center,
			}),
		),
	)

	for _, addr := range l.Shop.AddressLines {
		m.AddRow(5,
			col.New(12).Add(
				text.New(addr, props.Text{Size: 8, Align: align.Center}),
			),
		)
	}
	m.AddRow(5,
		col.New(12).Add(
			text.New(fmt.Sprintf("Phone: %s | Email: %s", l.Shop.Phone, l.Shop.Email), props.Text{
				Size:  8,
				Align: align.Center,
			}),
		),
	)
	m.AddRow(4, line.NewCol(12))
}

func addNumberAndDate(m core.Maroto, l *Layout) {
	m.AddRow(8,
		col.New(6).Add(
			text.New(fmt.Sprintf("Receipt No: %s", l.ReceiptNumber), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New(l.DateLine, props.Text{
				Size:  10,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(3, line.NewCol(12))
}

// addSection renders a titled block of ruled label/value pairs with a fixed
// left margin and line pitch.
func addSection(m core.Maroto, title string, pairs []LabelValue) {
	m.AddRow(7,
		col.New(12).Add(
			text.New(title, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
	)

	for _, p := range pairs {
		m.AddRow(6,
			col.New(3).Add(
				text.New(p.Label, props.Text{Size: 9, Align: align.Left}),
			),
			col.New(9).Add(
				text.New(p.Value, props.Text{Size: 9, Align: align.Left}),
			),
		)
		// Ruled line under the value area only.
		m.AddRow(1, col.New(3), line.NewCol(9))
	}
	m.AddRow(3)
}

func addChecklist(m core.Maroto, items []ChecklistItem) {
	if len(items) == 0 {
		return
	}
	m.AddRow(6,
		col.New(12).Add(
			text.New("DEVICE CATEGORY", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
	)

	cols := make([]core.Col, 0, len(items))
	width := 12 / len(items)
	for _, item := range items {
		mark := "[  ]"
		if item.Checked {
			mark = "[X]"
		}
		cols = append(cols, col.New(width).Add(
			text.New(fmt.Sprintf("%s %s", mark, item.Label), props.Text{
				Size:  8,
				Align: align.Left,
			}),
		))
	}
	m.AddRow(7, cols...)
	m.AddRow(3, line.NewCol(12))
}

func addAmountBlock(m core.Maroto, l *Layout) {
	m.AddRow(9,
		col.New(8).Add(
			text.New("TOTAL AMOUNT", props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
		col.New(4).Add(
			text.New(l.AmountDisplay, props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(6,
		col.New(12).Add(
			text.New(fmt.Sprintf("In words: %s", l.AmountInWords), props.Text{
				Size:  9,
				Align: align.Left,
			}),
		),
	)
	m.AddRow(3, line.NewCol(12))
}

func addSignatures(m core.Maroto, l *Layout) {
	m.AddRow(16)
	m.AddRow(1, line.NewCol(4), col.New(4), line.NewCol(4))
	m.AddRow(6,
		col.New(4).Add(
			text.New(l.SignatureLines[0], props.Text{Size: 8, Align: align.Center}),
		),
		col.New(4),
		col.New(4).Add(
			text.New(l.SignatureLines[1], props.Text{Size: 8, Align: align.Center}),
		),
	)
}

func addFootnote(m core.Maroto, l *Layout) {
	m.AddRow(8)
	m.AddRow(5,
		col.New(12).Add(
			text.New(l.Footnote[0], props.Text{Size: 7, Align: align.Center}),
		),
	)
	m.AddRow(5,
		col.New(12).Add(
			text.New(l.Footnote[1], props.Text{Size: 7, Align: align.Center}),
		),
	)
}
