// Package backend is the HTTP client for the DreamOps analysis backend.
// Responses are cached in-process so repeated CLI invocations inside one
// demo run do not hammer the service, and transient failures are retried
// with exponential backoff.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"

	"github.com/dreamops/dreamops/pkg/cache"
)

const (
	// maxBodySize limits how much of a response body is read.
	maxBodySize = 1 << 20

	healthCacheTTL   = 5 * time.Second
	analysisCacheTTL = 5 * time.Minute

	healthNamespace   = "health"
	analysisNamespace = "analysis"
)

// Client talks to the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	apiKey     string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache replaces the response cache.
func WithCache(cc cache.Cache) ClientOption {
	return func(c *Client) { c.cache = cc }
}

// WithAPIKey sets the bearer token sent on every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache.NewLRU(64),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HealthStatus is the backend's health report.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Healthy reports whether the backend considers itself serving.
func (h HealthStatus) Healthy() bool { return h.Status == "ok" }

// AnalysisRequest asks the backend to analyze an incident.
type AnalysisRequest struct {
	IncidentID string `json:"incident_id"`
	Service    string `json:"service"`
	Summary    string `json:"summary,omitempty"`
}

// AnalysisResult is the backend's root-cause verdict.
type AnalysisResult struct {
	IncidentID  string   `json:"incident_id"`
	RootCause   string   `json:"root_cause"`
	Confidence  float64  `json:"confidence"`
	Remediation []string `json:"remediation,omitempty"`
}

// StatusError is a non-2xx backend response. 4xx responses are not retried.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Body)
}

// ErrorCode implements models.RecoverableError.
func (e *StatusError) ErrorCode() string { return "BACKEND_STATUS" }

// Context implements models.RecoverableError.
func (e *StatusError) Context() map[string]string {
	return map[string]string{"status": fmt.Sprintf("%d", e.Code)}
}

// SuggestedAction implements models.RecoverableError.
func (e *StatusError) SuggestedAction() string { return "dreamops backend health" }

// Health checks the backend's /healthz endpoint. Results are cached briefly
// so bursts of commands share one probe.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	if entry, ok := c.cache.Get(healthNamespace, c.baseURL); ok {
		var cached HealthStatus
		if err := json.Unmarshal([]byte(entry.Value), &cached); err == nil {
			return &cached, nil
		}
	}

	var status HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/healthz", nil, &status); err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(status); err == nil {
		_ = c.cache.Set(healthNamespace, c.baseURL, string(raw), cache.WithTTL(healthCacheTTL))
	}
	return &status, nil
}

// Analyze submits an incident for root-cause analysis. Verdicts are cached
// per incident; the backend's answer for a given incident does not change
// within a demo session.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	if req.IncidentID == "" {
		return nil, fmt.Errorf("incident_id is required")
	}

	if entry, ok := c.cache.Get(analysisNamespace, req.IncidentID); ok {
		var cached AnalysisResult
		if err := json.Unmarshal([]byte(entry.Value), &cached); err == nil {
			return &cached, nil
		}
	}

	var result AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/analyze", req, &result); err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		_ = c.cache.Set(analysisNamespace, req.IncidentID, string(raw), cache.WithTTL(analysisCacheTTL))
	}
	return &result, nil
}

// doJSON performs one JSON request with retry. Network errors and 5xx
// responses are retried with exponential backoff; 4xx responses fail
// immediately.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = raw
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second

	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("backend request failed", "method", method, "path", path, "error", err)
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			c.logger.Warn("backend server error", "method", method, "path", path, "status", resp.StatusCode)
			return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(&StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))})
		}

		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode response: %w", err))
			}
		}
		return nil
	}, backoff.WithContext(b, ctx))
}
