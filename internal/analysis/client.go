// Package analysis validates analysis requests and performs the round trip
// to the external analysis service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/neurosafe/neurosafe/internal/domain"
	"github.com/neurosafe/neurosafe/internal/history"
)

// analyzePath is the fixed path on the external service.
const analyzePath = "/analyze"

// Client performs analysis round trips against the external service and
// commits a history entry for every confirmed success. Each call is
// independent; the client does not retry, queue, or deduplicate.
type Client struct {
	baseURL string
	http    *http.Client
	history *history.Store
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock overrides the time source used for history entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient constructs a client for the external service at base. No
// request timeout is set here; the transport's default behavior applies.
func NewClient(base string, hist *history.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{},
		history: hist,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireResponse mirrors the external response with pointer fields so that
// missing keys are distinguishable from zero values.
type wireResponse struct {
	RiskLevel *domain.RiskLevel `json:"riskLevel"`
	Risks     *[]string         `json:"risks"`
	Warning   *string           `json:"warning"`
}

// Analyze submits req to the external service and returns its risk
// assessment. The request is re-validated defensively before any network
// I/O. On success the response shape is checked against the expected
// schema and a history entry is appended before the response is returned.
func (c *Client) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call analysis service: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = "analysis request failed"
		}
		return nil, &RemoteError{StatusCode: httpResp.StatusCode, Message: msg}
	}

	resp, err := decodeResponse(raw)
	if err != nil {
		return nil, err
	}

	entry := domain.NewHistoryEntry(*resp, req.Text, c.now())
	if err := c.history.Append(ctx, entry); err != nil {
		// The assessment itself is sound; failing to persist it is fatal
		// to the history write only, not to the analysis.
		slog.Error("Failed to persist history entry", "entry_id", entry.ID, "error", err)
	}

	return resp, nil
}

// decodeResponse parses and shape-checks a success body. Any deviation
// from the expected schema is reported as ErrInvalidResponse.
func decodeResponse(raw []byte) (*domain.AnalysisResponse, error) {
	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if wire.RiskLevel == nil || wire.Risks == nil || wire.Warning == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidResponse)
	}
	if !wire.RiskLevel.Valid() {
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrInvalidResponse, *wire.RiskLevel)
	}

	return &domain.AnalysisResponse{
		RiskLevel: *wire.RiskLevel,
		Risks:     *wire.Risks,
		Warning:   *wire.Warning,
	}, nil
}
