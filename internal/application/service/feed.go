package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ipremium/repairdesk-api/internal/domain/entity"
	"github.com/ipremium/repairdesk-api/internal/domain/repository"
)

// ReceiptFeed maintains a live, ordered snapshot of every receipt and fans it
// out to subscribers. Snapshots are immutable; a refresh builds a new slice and
// publishes it, it never mutates one already handed out.
type ReceiptFeed struct {
	receiptRepo  repository.ReceiptRepository
	logger       *zap.Logger
	pollInterval time.Duration

	mu       sync.RWMutex
	snapshot []entity.Receipt
	subs     map[int]chan []entity.Receipt
	nextSub  int
	closed   bool

	stop chan struct{}
	done chan struct{}
}

// NewReceiptFeed creates the feed and starts its background poller. Call Close
// to stop it.
func NewReceiptFeed(receiptRepo repository.ReceiptRepository, pollInterval time.Duration, logger *zap.Logger) *ReceiptFeed {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	f := &ReceiptFeed{
		receiptRepo:  receiptRepo,
		logger:       logger.Named("receipt_feed"),
		pollInterval: pollInterval,
		subs:         make(map[int]chan []entity.Receipt),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	go f.poll()
	return f
}

// Subscribe registers a listener. The current snapshot is delivered
// immediately, then every refreshed snapshot after it. The returned function
// removes the subscription.
func (f *ReceiptFeed) Subscribe() (<-chan []entity.Receipt, func()) {
	ch := make(chan []entity.Receipt, 8)

	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = ch
	current := f.snapshot
	f.mu.Unlock()

	if current != nil {
		ch <- current
	}

	unsubscribe := func() {
		f.mu.Lock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
		f.mu.Unlock()
	}
	return ch, unsubscribe
}

// Snapshot returns the latest published snapshot, refreshing first if none has
// been loaded yet.
func (f *ReceiptFeed) Snapshot(ctx context.Context) ([]entity.Receipt, error) {
	f.mu.RLock()
	current := f.snapshot
	f.mu.RUnlock()
	if current != nil {
		return current, nil
	}
	return f.Refresh(ctx)
}

// Refresh reloads the snapshot from the store and publishes it. On failure the
// previous snapshot stays in place and the error is returned so callers can
// surface it as a warning rather than losing data already shown.
func (f *ReceiptFeed) Refresh(ctx context.Context) ([]entity.Receipt, error) {
	receipts, err := f.receiptRepo.List(ctx)
	if err != nil {
		f.logger.Warn("snapshot refresh failed, keeping previous snapshot", zap.Error(err))
		f.mu.RLock()
		current := f.snapshot
		f.mu.RUnlock()
		return current, err
	}

	normalizeTimestamps(receipts)
	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return receipts, nil
	}
	f.snapshot = receipts
	for _, sub := range f.subs {
		select {
		case sub <- receipts:
		default:
			// Slow subscriber keeps only the snapshots it can drain; the
			// next delivery carries the full current state anyway.
		}
	}
	f.mu.Unlock()
	return receipts, nil
}

// Close stops the poller and closes all subscriber channels.
func (f *ReceiptFeed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	for id, sub := range f.subs {
		delete(f.subs, id)
		close(sub)
	}
	f.mu.Unlock()

	close(f.stop)
	<-f.done
}

func (f *ReceiptFeed) poll() {
	defer close(f.done)
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	ctx := context.Background()
	if _, err := f.Refresh(ctx); err != nil {
		f.logger.Warn("initial snapshot load failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			_, _ = f.Refresh(ctx)
		case <-f.stop:
			return
		}
	}
}

// normalizeTimestamps substitutes the current time for receipts whose
// server-side timestamp has not resolved yet, so fresh writes sort to the top
// instead of the bottom.
func normalizeTimestamps(receipts []entity.Receipt) {
	now := time.Now()
	for i := range receipts {
		if receipts[i].CreatedAt.IsZero() {
			receipts[i].CreatedAt = now
		}
	}
}
