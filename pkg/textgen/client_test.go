package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestClient points a configured client at a local test server and
// replaces the sleeper so backoff is recorded instead of waited out.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, zap.NewNop())
	require.True(t, c.Enabled())

	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func textResponse(text string) []byte {
	body := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(body)
	return b
}

func TestUnconfiguredClientUsesFallbacks(t *testing.T) {
	c := NewClient(Config{}, zap.NewNop())
	assert.False(t, c.Enabled())

	ctx := context.Background()
	assert.Equal(t, "dead", c.ExpandIssueText(ctx, "dead"))

	est := c.EstimateCost(ctx, "Mobile Phone", "dead")
	assert.Equal(t, 0, est.CostEstimate)
	assert.Equal(t, CertaintyLow, est.Certainty)
	assert.Contains(t, est.Notes, `"dead"`)

	msg := c.DraftFollowUp(ctx, "Asha", "Laptop", decimal.NewFromInt(1500))
	assert.Contains(t, msg, "Asha")
	assert.Contains(t, msg, "Laptop")
	assert.Contains(t, msg, "₹1,500.00")
}

func TestRateLimitRetriesThenFallsBack(t *testing.T) {
	var requests int
	c, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	})

	got := c.ExpandIssueText(context.Background(), "screen cracked")

	assert.Equal(t, "screen cracked", got, "fallback must embed the original input")
	assert.Equal(t, 3, requests, "exactly three attempts")
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *slept)
}

func TestRateLimitRecoversOnLaterAttempt(t *testing.T) {
	var requests int
	c, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(textResponse("The device screen is cracked and requires replacement."))
	})

	got := c.ExpandIssueText(context.Background(), "screen cracked")

	assert.Equal(t, "The device screen is cracked and requires replacement.", got)
	assert.Equal(t, 2, requests)
	assert.Equal(t, []time.Duration{1 * time.Second}, *slept)
}

func TestNonRateLimitFailureIsNotRetried(t *testing.T) {
	var requests int
	c, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	})

	got := c.ExpandIssueText(context.Background(), "no power")

	assert.Equal(t, "no power", got)
	assert.Equal(t, 1, requests, "server errors are not retried")
	assert.Empty(t, *slept)
}

func TestEstimateCostParsesStructuredResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(textResponse(`{"cost_estimate": 2500, "certainty": "Medium", "notes": "Display assembly swap."}`))
	})

	est := c.EstimateCost(context.Background(), "Mobile Phone", "screen cracked")

	assert.Equal(t, 2500, est.CostEstimate)
	assert.Equal(t, CertaintyMedium, est.Certainty)
	assert.Equal(t, "Display assembly swap.", est.Notes)
}

func TestEstimateCostDefaultsMissingFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(textResponse(`{"cost_estimate": 1800, "certainty": "very sure"}`))
	})

	est := c.EstimateCost(context.Background(), "Tablet", "battery drain")

	assert.Equal(t, 1800, est.CostEstimate)
	assert.Equal(t, CertaintyLow, est.Certainty, "unknown certainty defaults to Low")
	assert.Equal(t, defaultNotes, est.Notes)
}

func TestEstimateCostMalformedPayloadFallsBack(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(textResponse("not json at all"))
	})

	est := c.EstimateCost(context.Background(), "Laptop", "keyboard dead")

	assert.Equal(t, 0, est.CostEstimate)
	assert.Equal(t, CertaintyLow, est.Certainty)
	assert.Contains(t, est.Notes, `"keyboard dead"`)
}

func TestSleepAbortsWhenContextCancelled(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The cancelled context stops the backoff; the caller still gets its
	// fallback text rather than an error.
	got := c.ExpandIssueText(ctx, "wet damage")
	assert.Equal(t, "wet damage", got)
	assert.LessOrEqual(t, requests, 1)
}
