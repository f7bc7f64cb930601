package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ipremium/repairdesk-api/internal/domain/entity"
	"github.com/ipremium/repairdesk-api/internal/domain/enum"
	"github.com/ipremium/repairdesk-api/internal/domain/repository"
	"github.com/ipremium/repairdesk-api/pkg/apperror"
	"github.com/ipremium/repairdesk-api/pkg/format"
	"github.com/ipremium/repairdesk-api/pkg/textgen"
)

// WorkflowState tracks where a submission is in its lifecycle.
type WorkflowState int

const (
	StateDraft WorkflowState = iota
	StateValidating
	StateSubmitting
	StatePersisted
	StateFailed
)

func (s WorkflowState) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StatePersisted:
		return "persisted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReceiptService drives the receipt submission workflow
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	textgen     *textgen.Client
	documents   *DocumentService
	feed        *ReceiptFeed
	logger      *zap.Logger
	now         func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	textgenClient *textgen.Client,
	documents *DocumentService,
	feed *ReceiptFeed,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		textgen:     textgenClient,
		documents:   documents,
		feed:        feed,
		logger:      logger.Named("receipt_service"),
		now:         time.Now,
	}
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	CustomerName   string
	Phone          string
	Address        string
	Email          string
	DeviceCategory enum.DeviceCategory
	IMEI           string
	SerialNumber   string
	Issue          string
	ConditionNote  string
	TotalAmount    decimal.Decimal
	ExpandIssue    bool
	SendMessage    bool
	CreatedBy      string
}

// CreateReceiptResult is the outcome of a persisted submission.
type CreateReceiptResult struct {
	Receipt         *entity.Receipt
	State           WorkflowState
	WhatsAppLink    string
	DocumentWarning string
}

// CreateReceipt runs the submission workflow. A validation or store failure
// leaves the draft untouched on the caller's side so it can be corrected and
// resubmitted; only a persisted receipt clears it.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*CreateReceiptResult, error) {
	// Validating
	if err := s.validate(input); err != nil {
		return nil, err
	}

	// Submitting
	now := s.now()
	receiptNumber, err := s.receiptRepo.NextReceiptNumber(ctx, now.Year())
	if err != nil {
		s.logger.Error("receipt number allocation failed", zap.Error(err))
		return nil, apperror.NewStoreWriteError("Could not save receipt. Your draft has been kept.")
	}

	issue := input.Issue
	if input.ExpandIssue && issue != "" {
		issue = s.textgen.ExpandIssueText(ctx, issue)
	}

	// Words are computed once at submission; the stored value is what prints.
	receipt := &entity.Receipt{
		ReceiptNumber:  receiptNumber,
		CustomerName:   input.CustomerName,
		Phone:          format.SanitizePhone(input.Phone),
		Address:        input.Address,
		Email:          input.Email,
		DeviceCategory: input.DeviceCategory,
		IMEI:           input.IMEI,
		SerialNumber:   input.SerialNumber,
		Issue:          issue,
		ConditionNote:  input.ConditionNote,
		TotalAmount:    input.TotalAmount,
		AmountInWords:  format.AmountInWords(input.TotalAmount),
		Status:         enum.ReceiptStatusPending,
		CreatedBy:      input.CreatedBy,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		s.logger.Error("receipt write failed", zap.String("receipt_number", receiptNumber), zap.Error(err))
		return nil, apperror.NewStoreWriteError("Could not save receipt. Your draft has been kept.")
	}

	// Persisted
	s.logger.Info("receipt persisted",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("customer", receipt.CustomerName))

	if _, err := s.feed.Refresh(ctx); err != nil {
		s.logger.Warn("feed refresh after append failed", zap.Error(err))
	}

	result := &CreateReceiptResult{Receipt: receipt, State: StatePersisted}

	if _, _, err := s.documents.Generate(receipt); err != nil {
		// The record is already persisted; document trouble is a warning.
		result.DocumentWarning = "Receipt saved, but the printable document could not be generated."
		s.logger.Warn("document render failed", zap.String("receipt_number", receipt.ReceiptNumber), zap.Error(err))
	}

	if input.SendMessage {
		link := format.MessageLink(receipt.Phone, receipt.CustomerName, receipt.ReceiptNumber)
		if err := s.receiptRepo.MarkMessageSent(ctx, receipt.ID, link); err != nil {
			s.logger.Warn("failed to record message link", zap.Error(err))
		} else {
			receipt.MessageSent = true
			receipt.ExternalLink = link
		}
		result.WhatsAppLink = link
	}

	return result, nil
}

func (s *ReceiptService) validate(input *CreateReceiptInput) error {
	var fields []apperror.FieldError
	if input.CustomerName == "" {
		fields = append(fields, apperror.FieldError{Field: "customer_name", Message: "Customer name is required"})
	}
	if format.SanitizePhone(input.Phone) == "" {
		fields = append(fields, apperror.FieldError{Field: "phone", Message: "Phone number is required"})
	}
	if input.TotalAmount.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "total_amount", Message: "Amount must not be negative"})
	}
	if !input.DeviceCategory.Valid() {
		fields = append(fields, apperror.FieldError{Field: "device_category", Message: "Unknown device category"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// GetReceipt returns a receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts returns the current ordered snapshot. When the store is
// unreachable the last known snapshot is served; only a cold start with no
// snapshot at all becomes an error.
func (s *ReceiptService) ListReceipts(ctx context.Context) ([]entity.Receipt, error) {
	snapshot, err := s.feed.Snapshot(ctx)
	if snapshot == nil && err != nil {
		return nil, apperror.NewStoreSubscriptionError("Receipts are temporarily unavailable")
	}
	return snapshot, nil
}

// UpdateStatus moves a receipt between payment states
func (s *ReceiptService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ReceiptStatus) (*entity.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperror.NewBadRequestError("Invalid receipt status")
	}
	if err := s.receiptRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperror.NewStoreWriteError("Could not update receipt status")
	}
	receipt.Status = status
	if _, err := s.feed.Refresh(ctx); err != nil {
		s.logger.Warn("feed refresh after status update failed", zap.Error(err))
	}
	return receipt, nil
}

// ComposeMessage builds the customer notification link for a persisted
// receipt and records that it was sent.
func (s *ReceiptService) ComposeMessage(ctx context.Context, id uuid.UUID) (string, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return "", err
	}
	link := format.MessageLink(receipt.Phone, receipt.CustomerName, receipt.ReceiptNumber)
	if err := s.receiptRepo.MarkMessageSent(ctx, id, link); err != nil {
		return "", apperror.NewStoreWriteError("Could not record message link")
	}
	return link, nil
}
