package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ipremium/repairdesk-api/internal/domain/entity"
	"github.com/ipremium/repairdesk-api/internal/domain/enum"
	"github.com/ipremium/repairdesk-api/internal/domain/repository"
	"github.com/ipremium/repairdesk-api/pkg/apperror"
	"github.com/ipremium/repairdesk-api/pkg/document"
	"github.com/ipremium/repairdesk-api/pkg/format"
)

// DocumentService renders printable receipts
type DocumentService struct {
	receiptRepo repository.ReceiptRepository
	renderer    document.Renderer
	shop        document.ShopInfo
}

// NewDocumentService creates a new document service
func NewDocumentService(receiptRepo repository.ReceiptRepository, renderer document.Renderer, shop document.ShopInfo) *DocumentService {
	return &DocumentService{
		receiptRepo: receiptRepo,
		renderer:    renderer,
		shop:        shop,
	}
}

// Generate renders the printable document for an already-loaded receipt and
// returns the bytes with the download filename.
func (s *DocumentService) Generate(receipt *entity.Receipt) ([]byte, string, error) {
	if !s.renderer.Available() {
		return nil, "", apperror.NewDocumentUnavailableError("Document generation is disabled")
	}
	layout := BuildRepairReceipt(receipt, s.shop)
	data, err := s.renderer.Render(layout)
	if err != nil {
		return nil, "", apperror.NewDocumentUnavailableError("Document could not be generated")
	}
	return data, document.Filename(receipt.ReceiptNumber, receipt.CustomerName), nil
}

// GenerateByID loads a receipt and renders its document.
func (s *DocumentService) GenerateByID(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if receipt == nil {
		return nil, "", apperror.NewNotFoundError("Receipt")
	}
	return s.Generate(receipt)
}

// BuildRepairReceipt maps a receipt onto the fixed print layout. It is pure:
// the same receipt and shop always produce the same layout.
func BuildRepairReceipt(receipt *entity.Receipt, shop document.ShopInfo) *document.Layout {
	return &document.Layout{
		Shop:          shop,
		ReceiptNumber: receipt.ReceiptNumber,
		DateLine:      "Date: " + receipt.CreatedAt.Format("02 Jan 2006"),
		Customer: []document.LabelValue{
			{Label: "Name", Value: receipt.CustomerName},
			{Label: "Phone", Value: receipt.Phone},
			{Label: "Address", Value: receipt.Address},
			{Label: "Email", Value: receipt.Email},
		},
		Device: []document.LabelValue{
			{Label: "Device", Value: receipt.DeviceCategory.String()},
			{Label: "IMEI", Value: receipt.IMEI},
			{Label: "Serial No", Value: receipt.SerialNumber},
			{Label: "Issue", Value: receipt.Issue},
			{Label: "Condition", Value: receipt.ConditionNote},
		},
		Checklist: lo.Map(enum.AllDeviceCategories(), func(category enum.DeviceCategory, _ int) document.ChecklistItem {
			return document.ChecklistItem{
				Label:   category.String(),
				Checked: category == receipt.DeviceCategory,
			}
		}),
		AmountDisplay: format.Currency(receipt.TotalAmount),
		AmountInWords: receipt.AmountInWords,
		SignatureLines: [2]string{
			"Customer Signature",
			"Authorized Signatory",
		},
		Footnote: [2]string{
			"Devices not collected within 30 days of repair completion may attract storage charges.",
			"Thank you for choosing " + shop.Name + ".",
		},
	}
}
