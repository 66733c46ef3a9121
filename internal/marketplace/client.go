// Package marketplace is the HTTP client for the collaborator-owned
// marketplace API: job search, interview request reads and interview
// response mutations.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"teachmatch-dashboard/internal/config"
	"teachmatch-dashboard/internal/interview"
	"teachmatch-dashboard/internal/logging"
	"teachmatch-dashboard/pkg/models"
)

// APIError is a non-2xx answer from the marketplace, carrying the
// server-provided message when the error body had one
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("marketplace returned status %d", e.StatusCode)
}

// Client calls the marketplace API. Every call waits on a client-side rate
// limiter before going out.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logging.Logger
}

// NewClient creates a marketplace client from configuration. A missing rate
// limit disables client-side throttling rather than blocking every call.
func NewClient(cfg *config.Config, logger logging.Logger) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.Marketplace.RateLimit > 0 {
		limit = rate.Limit(cfg.Marketplace.RateLimit)
		burst = cfg.Marketplace.RateBurst
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.Marketplace.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Marketplace.RequestTimeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// SearchJobs runs GET /jobs/search with the encoded filter query
func (c *Client) SearchJobs(ctx context.Context, query url.Values) (*models.SearchResults, error) {
	endpoint := c.baseURL + "/jobs/search"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var out models.SearchResults
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	if out.Jobs == nil {
		out.Jobs = []models.Job{}
	}
	return &out, nil
}

// GetInterviewRequest runs GET /applications/{id}/interview-request and
// returns the raw, loosely-typed payload for the normalizer. A null payload
// means the application has no interview request.
func (c *Client) GetInterviewRequest(ctx context.Context, applicationID string) (interface{}, error) {
	endpoint := fmt.Sprintf("%s/applications/%s/interview-request", c.baseURL, url.PathEscape(applicationID))

	var out struct {
		InterviewRequest interface{} `json:"interviewRequest"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out.InterviewRequest, nil
}

// RespondToInterview runs PATCH /applications/{id}/interview-response with
// the teacher's answer (selected slot or alternative slot)
func (c *Client) RespondToInterview(ctx context.Context, applicationID string, payload interview.ResponsePayload) error {
	endpoint := fmt.Sprintf("%s/applications/%s/interview-response", c.baseURL, url.PathEscape(applicationID))
	return c.doJSON(ctx, http.MethodPatch, endpoint, payload, nil)
}

// GetApplication runs GET /applications/{id} for the display summary
func (c *Client) GetApplication(ctx context.Context, applicationID string) (*models.Application, error) {
	endpoint := fmt.Sprintf("%s/applications/%s", c.baseURL, url.PathEscape(applicationID))

	var out models.Application
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs one rate-limited JSON request/response round trip
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build marketplace request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode marketplace response: %w", err)
		}
	}
	return nil
}

// errorFromResponse extracts the {error} body of a failed call when present
func (c *Client) errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
		}
	}

	c.logger.Warn("Marketplace call failed", map[string]interface{}{
		"status":  resp.StatusCode,
		"url":     resp.Request.URL.String(),
		"message": apiErr.Message,
	})
	return apiErr
}
