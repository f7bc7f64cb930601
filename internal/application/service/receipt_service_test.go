package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ipremium/repairdesk-api/internal/domain/entity"
	"github.com/ipremium/repairdesk-api/internal/domain/enum"
	"github.com/ipremium/repairdesk-api/pkg/apperror"
	"github.com/ipremium/repairdesk-api/pkg/document"
	"github.com/ipremium/repairdesk-api/pkg/format"
	"github.com/ipremium/repairdesk-api/pkg/textgen"
)

// fakeReceiptRepo is an in-memory ReceiptRepository with the same atomic
// numbering contract as the SQL implementation.
type fakeReceiptRepo struct {
	mu        sync.Mutex
	receipts  []entity.Receipt
	sequences map[int]int64
	createErr error
	listErr   error
	seqErr    error
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{sequences: make(map[int]int64)}
}

func (f *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	f.receipts = append(f.receipts, *receipt)
	return nil
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			receipt := f.receipts[i]
			return &receipt, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) GetByReceiptNumber(_ context.Context, receiptNumber string) (*entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.receipts {
		if f.receipts[i].ReceiptNumber == receiptNumber {
			receipt := f.receipts[i]
			return &receipt, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) List(_ context.Context) ([]entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Receipt, len(f.receipts))
	copy(out, f.receipts)
	return out, nil
}

func (f *fakeReceiptRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.receipts)), nil
}

func (f *fakeReceiptRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.ReceiptStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			f.receipts[i].Status = status
			return nil
		}
	}
	return nil
}

func (f *fakeReceiptRepo) MarkMessageSent(_ context.Context, id uuid.UUID, externalLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			f.receipts[i].MessageSent = true
			f.receipts[i].ExternalLink = externalLink
			return nil
		}
	}
	return nil
}

func (f *fakeReceiptRepo) NextReceiptNumber(_ context.Context, year int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seqErr != nil {
		return "", f.seqErr
	}
	f.sequences[year]++
	return format.ReceiptNumber(f.sequences[year], year), nil
}

func testShop() document.ShopInfo {
	return document.ShopInfo{
		Name:         "iPremium Repairs",
		TagLine:      "Authorized Device Service Centre",
		AddressLines: []string{"12 MG Road", "Bengaluru 560001"},
		Phone:        "+91 80 4000 1234",
		Email:        "service@ipremiumrepairs.in",
	}
}

func newTestReceiptService(t *testing.T, repo *fakeReceiptRepo, renderer document.Renderer) (*ReceiptService, *ReceiptFeed) {
	t.Helper()
	logger := zap.NewNop()
	if renderer == nil {
		var err error
		renderer, err = document.NewRendererFromConfig("pdf")
		require.NoError(t, err)
	}
	feed := NewReceiptFeed(repo, time.Hour, logger)
	t.Cleanup(feed.Close)
	documents := NewDocumentService(repo, renderer, testShop())
	textgenClient := textgen.NewClient(textgen.Config{}, logger)
	return NewReceiptService(repo, textgenClient, documents, feed, logger), feed
}

func validInput() *CreateReceiptInput {
	return &CreateReceiptInput{
		CustomerName:   "Asha Verma",
		Phone:          "+91 98765-43210",
		Address:        "44 Residency Road",
		DeviceCategory: enum.DeviceCategoryMobilePhone,
		IMEI:           "356938035643809",
		Issue:          "Cracked screen",
		TotalAmount:    decimal.NewFromInt(1500),
		CreatedBy:      "Ravi",
	}
}

func TestCreateReceipt_Persisted(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)

	result, err := svc.CreateReceipt(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, result.Receipt)

	assert.Equal(t, StatePersisted, result.State)
	assert.Equal(t, fmt.Sprintf("PFX-%d-0001", time.Now().Year()), result.Receipt.ReceiptNumber)
	assert.Equal(t, "919876543210", result.Receipt.Phone)
	assert.Equal(t, "one thousand five hundred Rupees Only.", result.Receipt.AmountInWords)
	assert.Equal(t, enum.ReceiptStatusPending, result.Receipt.Status)
	assert.Empty(t, result.DocumentWarning)
	assert.Empty(t, result.WhatsAppLink)
}

func TestCreateReceipt_ValidationFailureKeepsDraft(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)

	input := validInput()
	input.CustomerName = ""
	input.Phone = "---"

	result, err := svc.CreateReceipt(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, result)

	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 2)

	// Nothing was written; the caller retries with the same draft.
	count, _ := repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestCreateReceipt_StoreFailureKeepsDraft(t *testing.T) {
	repo := newFakeReceiptRepo()
	repo.createErr = fmt.Errorf("connection reset")
	svc, _ := newTestReceiptService(t, repo, nil)

	_, err := svc.CreateReceipt(context.Background(), validInput())
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.Code)

	count, _ := repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestCreateReceipt_SequentialNumbers(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		input := validInput()
		result, err := svc.CreateReceipt(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PFX-%d-%04d", year, i), result.Receipt.ReceiptNumber)
	}
}

func TestCreateReceipt_ConcurrentNumbersUnique(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)

	var wg sync.WaitGroup
	results := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.CreateReceipt(context.Background(), validInput())
			if err == nil {
				results <- result.Receipt.ReceiptNumber
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for number := range results {
		assert.False(t, seen[number], "duplicate receipt number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, 20)
}

func TestCreateReceipt_MessageOptIn(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)

	input := validInput()
	input.SendMessage = true

	result, err := svc.CreateReceipt(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, result.WhatsAppLink, "https://wa.me/919876543210?text=")
	assert.True(t, result.Receipt.MessageSent)

	stored, err := repo.GetByID(context.Background(), result.Receipt.ID)
	require.NoError(t, err)
	assert.True(t, stored.MessageSent)
	assert.Equal(t, result.WhatsAppLink, stored.ExternalLink)
}

func TestCreateReceipt_DocumentWarningWhenRendererDisabled(t *testing.T) {
	repo := newFakeReceiptRepo()
	renderer, err := document.NewRendererFromConfig("none")
	require.NoError(t, err)
	svc, _ := newTestReceiptService(t, repo, renderer)

	result, err := svc.CreateReceipt(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, result.DocumentWarning)

	// Persistence is independent of document trouble.
	count, _ := repo.Count(context.Background())
	assert.EqualValues(t, 1, count)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)

	result, err := svc.CreateReceipt(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), result.Receipt.ID, enum.ReceiptStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStatusPaid, updated.Status)

	stored, _ := repo.GetByID(context.Background(), result.Receipt.ID)
	assert.Equal(t, enum.ReceiptStatusPaid, stored.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enum.ReceiptStatusPaid)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestComposeMessage(t *testing.T) {
	repo := newFakeReceiptRepo()
	svc, _ := newTestReceiptService(t, repo, nil)

	result, err := svc.CreateReceipt(context.Background(), validInput())
	require.NoError(t, err)

	link, err := svc.ComposeMessage(context.Background(), result.Receipt.ID)
	require.NoError(t, err)
	assert.Contains(t, link, "wa.me/919876543210")

	stored, _ := repo.GetByID(context.Background(), result.Receipt.ID)
	assert.True(t, stored.MessageSent)
}
