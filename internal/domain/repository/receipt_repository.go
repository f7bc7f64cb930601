package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ipremium/repairdesk-api/internal/domain/entity"
	"github.com/ipremium/repairdesk-api/internal/domain/enum"
)

// ReceiptRepository defines the interface for receipt data operations.
// Receipts are append-only: there is no delete, and updates are limited to
// status and message-sent flags.
type ReceiptRepository interface {
	// Create appends one new receipt. The store assigns the key and the
	// timestamp; the call returns only after the write is acknowledged.
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Receipt, error)
	// List returns all receipts ordered by created_at descending, ties broken
	// by insertion order.
	List(ctx context.Context) ([]entity.Receipt, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ReceiptStatus) error
	// MarkMessageSent records that the customer notification link was
	// composed for this receipt.
	MarkMessageSent(ctx context.Context, id uuid.UUID, externalLink string) error
	// NextReceiptNumber atomically allocates the next number for the given
	// year. Allocation is exactly-once even under concurrent submitters.
	NextReceiptNumber(ctx context.Context, year int) (string, error)
}
