package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ipremium/repairdesk-api/internal/domain/entity"
	"github.com/ipremium/repairdesk-api/internal/domain/enum"
	domainRepo "github.com/ipremium/repairdesk-api/internal/domain/repository"
	"github.com/ipremium/repairdesk-api/pkg/format"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "receipt_number = ?", receiptNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

// List returns every receipt, newest first. Ties on created_at fall back to
// receipt_number so the order is stable across reads.
func (r *receiptRepository) List(ctx context.Context) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Order("created_at DESC, receipt_number DESC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).Count(&total).Error
	return total, err
}

func (r *receiptRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ReceiptStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *receiptRepository) MarkMessageSent(ctx context.Context, id uuid.UUID, externalLink string) error {
	return r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"message_sent":  true,
			"external_link": externalLink,
		}).Error
}

// NextReceiptNumber reserves the next sequence value for the given year in a
// single atomic upsert, so concurrent submissions never share a number.
func (r *receiptRepository) NextReceiptNumber(ctx context.Context, year int) (string, error) {
	var lastValue int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO receipt_sequences (year, last_value, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (year) DO UPDATE
		SET last_value = receipt_sequences.last_value + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING last_value`, year).Scan(&lastValue).Error
	if err != nil {
		return "", fmt.Errorf("failed to reserve receipt sequence: %w", err)
	}
	return format.ReceiptNumber(lastValue, year), nil
}
