package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ipremium/repairdesk-api/pkg/format"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 20 * time.Second

	// maxAttempts bounds every operation; only rate-limit responses are
	// retried, with 2^attempt seconds of delay in between.
	maxAttempts = 3

	// defaultNotes is the placeholder used when the service response carries
	// no notes field.
	defaultNotes = "No additional notes."
)

var (
	errRateLimited = errors.New("textgen: rate limited")
	errEmptyResult = errors.New("textgen: empty response")
)

// Certainty grades a cost estimate.
type Certainty string

const (
	CertaintyHigh   Certainty = "High"
	CertaintyMedium Certainty = "Medium"
	CertaintyLow    Certainty = "Low"
)

// Estimate is the structured result of EstimateCost.
type Estimate struct {
	CostEstimate int       `json:"cost_estimate"`
	Certainty    Certainty `json:"certainty"`
	Notes        string    `json:"notes"`
}

// Config holds the client configuration. The credential is supplied here,
// never read from ambient process state.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client wraps the remote text-generation endpoint. Every operation resolves
// to usable text: when the service is unconfigured, rate-limited past the
// retry budget, or failing, a per-operation fallback embedding the original
// input is returned instead of an error.
type Client struct {
	http    *resty.Client
	model   string
	logger  *zap.Logger
	enabled bool

	// sleep is swapped out in tests to avoid real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a text-generation client. An empty API key disables the
// client; operations then return their fallbacks without dialing.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	logger = logger.Named("textgen")

	apiKey := strings.TrimSpace(cfg.APIKey)
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		model:   model,
		logger:  logger,
		enabled: apiKey != "",
		sleep:   sleepContext,
	}

	if !c.enabled {
		logger.Warn("no API key configured; text generation is disabled and fallbacks will be used")
		return c
	}

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey).
		SetTimeout(timeout)
	return c
}

// Enabled reports whether the client has a credential and will attempt
// network calls.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// ExpandIssueText turns a terse fault description into a polished sentence.
// Fallback: the input text unchanged.
func (c *Client) ExpandIssueText(ctx context.Context, shortText string) string {
	if !c.Enabled() {
		c.logger.Warn("expand issue skipped, client disabled", zap.String("issue", shortText))
		return shortText
	}

	prompt := fmt.Sprintf(
		"Rewrite this repair-shop fault description as one polished, professional sentence. Reply with the sentence only.\n\nFault: %s",
		shortText,
	)
	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		c.logger.Warn("expand issue failed, using original text", zap.String("issue", shortText), zap.Error(err))
		return shortText
	}
	return strings.TrimSpace(text)
}

// estimateSchema asks the service for a structured JSON payload.
var estimateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"cost_estimate": map[string]any{"type": "integer"},
		"certainty":     map[string]any{"type": "string", "enum": []string{"High", "Medium", "Low"}},
		"notes":         map[string]any{"type": "string"},
	},
	"required": []string{"cost_estimate"},
}

// EstimateCost asks the service for a repair cost estimate in whole rupees.
// Fallback: a zero estimate with Low certainty whose notes embed the issue.
func (c *Client) EstimateCost(ctx context.Context, deviceCategory, issueText string) Estimate {
	fallback := Estimate{
		CostEstimate: 0,
		Certainty:    CertaintyLow,
		Notes:        fmt.Sprintf("Estimate unavailable for %q. Please assess manually.", issueText),
	}

	if !c.Enabled() {
		c.logger.Warn("estimate skipped, client disabled", zap.String("issue", issueText))
		return fallback
	}

	prompt := fmt.Sprintf(
		"Estimate the repair cost in whole Indian rupees for a %s with this issue: %s. Respond with JSON fields cost_estimate, certainty (High/Medium/Low) and notes.",
		deviceCategory, issueText,
	)
	text, err := c.generate(ctx, prompt, estimateSchema)
	if err != nil {
		c.logger.Warn("estimate failed, using fallback", zap.String("issue", issueText), zap.Error(err))
		return fallback
	}

	// Parsed defensively: missing or malformed fields get documented
	// defaults rather than failing the call.
	var est Estimate
	if err := json.Unmarshal([]byte(text), &est); err != nil {
		c.logger.Warn("estimate response malformed, using fallback", zap.Error(err))
		return fallback
	}
	if est.CostEstimate < 0 {
		est.CostEstimate = 0
	}
	switch est.Certainty {
	case CertaintyHigh, CertaintyMedium, CertaintyLow:
	default:
		est.Certainty = CertaintyLow
	}
	if strings.TrimSpace(est.Notes) == "" {
		est.Notes = defaultNotes
	}
	return est
}

// DraftFollowUp composes a short follow-up message for the customer.
// Fallback: a fixed template embedding the name, category and amount.
func (c *Client) DraftFollowUp(ctx context.Context, customerName, deviceCategory string, amount decimal.Decimal) string {
	fallback := fmt.Sprintf(
		"Dear %s, your %s has been serviced. Total amount due: %s. Thank you for choosing iPremium Repairs.",
		customerName, deviceCategory, format.Currency(amount),
	)

	if !c.Enabled() {
		c.logger.Warn("follow-up draft skipped, client disabled", zap.String("customer", customerName))
		return fallback
	}

	prompt := fmt.Sprintf(
		"Write a short, warm follow-up message (2 sentences, no subject line) to %s whose %s repair is complete, mentioning the total of %s.",
		customerName, deviceCategory, format.Currency(amount),
	)
	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		c.logger.Warn("follow-up draft failed, using fallback", zap.String("customer", customerName), zap.Error(err))
		return fallback
	}
	return strings.TrimSpace(text)
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// generate runs the bounded retry loop. Rate-limit responses are retried
// with 2^attempt seconds of delay; any other failure stops the pass
// immediately. The error is only ever seen by the operation wrappers, which
// translate it into their fallback values.
func (c *Client) generate(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	body := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}
	if schema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var out generateResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(&out).
			Post("/v1beta/models/" + c.model + ":generateContent")
		if err != nil {
			lastErr = err
			break
		}

		if resp.StatusCode() == http.StatusTooManyRequests {
			lastErr = errRateLimited
			if attempt < maxAttempts-1 {
				if err := c.sleep(ctx, time.Duration(1<<attempt)*time.Second); err != nil {
					// Caller abandoned the workflow; do not resurrect the retry.
					return "", err
				}
			}
			continue
		}
		if resp.IsError() {
			lastErr = fmt.Errorf("textgen: service returned %s", resp.Status())
			break
		}

		if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
			lastErr = errEmptyResult
			break
		}
		return out.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
