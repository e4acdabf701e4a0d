// Package client submits wizard records to the lead-intake API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spurtek/spurtek-leads/internal/validation"
	"github.com/spurtek/spurtek-leads/internal/wizard"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultUserAgent = "spurtek-leadform/1.0"
	contactPath      = "/api/leads/contact"
	maxResponseBytes = 1 << 20
)

// Config controls how the client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	UserAgent  string
}

// Client posts contact submissions. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}
}

// APIError is a non-2xx answer from the intake API.
type APIError struct {
	Status  int
	Message string
	Details []validation.FieldIssue
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("intake api: status %d", e.Status)
	}
	return fmt.Sprintf("intake api: status %d: %s", e.Status, e.Message)
}

// RateLimited reports a 429.
func (e *APIError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

// Steps groups field issues by the wizard step that owns each field. Issues
// no step owns are keyed by 0.
func (e *APIError) Steps() map[wizard.Step][]validation.FieldIssue {
	if len(e.Details) == 0 {
		return nil
	}
	out := make(map[wizard.Step][]validation.FieldIssue)
	for _, issue := range e.Details {
		step := wizard.StepFor(issue.Field)
		out[step] = append(out[step], issue)
	}
	return out
}

// EarliestStep returns the first step holding a rejected field, or 0.
func (e *APIError) EarliestStep() wizard.Step {
	var earliest wizard.Step
	for step := range e.Steps() {
		if step != 0 && (earliest == 0 || step < earliest) {
			earliest = step
		}
	}
	return earliest
}

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldIssue `json:"details"`
}

// SubmitContact posts the record and returns the server's confirmation.
func (c *Client) SubmitContact(ctx context.Context, in validation.ContactInput) (wizard.Confirmation, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return wizard.Confirmation{}, fmt.Errorf("client: marshal contact: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+contactPath, bytes.NewReader(body))
	if err != nil {
		return wizard.Confirmation{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wizard.Confirmation{}, fmt.Errorf("client: post contact: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return wizard.Confirmation{}, fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload errorResponse
		if err := json.Unmarshal(data, &payload); err == nil {
			apiErr.Message = payload.Error
			apiErr.Details = payload.Details
		}
		if apiErr.Message == "" {
			apiErr.Message = "Failed to submit form"
		}
		c.logger.Warn("contact submission rejected", "status", resp.StatusCode, "error", apiErr.Message)
		return wizard.Confirmation{}, apiErr
	}

	var ok submitResponse
	if err := json.Unmarshal(data, &ok); err != nil {
		return wizard.Confirmation{}, fmt.Errorf("client: decode response: %w", err)
	}
	if !ok.Success {
		return wizard.Confirmation{}, errors.New("client: server did not confirm submission")
	}
	return wizard.Confirmation{ID: ok.ID, Message: ok.Message}, nil
}

var _ wizard.Submitter = (*Client)(nil)
